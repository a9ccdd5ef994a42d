package identity

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// emailPattern accepts a local part of [A-Z0-9._%+-], a domain of
// [A-Z0-9.-], and a final alphabetic segment of 2 to 6 characters,
// case-insensitive.
var emailPattern = regexp.MustCompile(`^(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`)

// ValidEmailFormat reports whether the address has an acceptable shape. It
// is pure and runs before any store lookup or hashing work.
func ValidEmailFormat(email string) bool {
	err := validation.Validate(email,
		validation.Required,
		validation.Match(emailPattern),
	)
	return err == nil
}
