package identity

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRole is the user's role. It travels as a token claim and is not
// enforced by this core.
type UserRole = string

const (
	// RoleUser is the default role for registered accounts
	RoleUser UserRole = "USER"
	// RoleAdmin marks administrative accounts
	RoleAdmin UserRole = "ADMIN"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureRole defaults the role tag for records created without one.
func (u *User) EnsureRole() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}
