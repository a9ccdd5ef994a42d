package identity_test

import (
	"testing"

	"github.com/emsuite/go-identity"
	"github.com/stretchr/testify/assert"
)

func TestValidEmailFormat(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple address", "a@b.com", true},
		{"mixed case", "First.Last@Example.COM", true},
		{"plus tag", "user+tag@example.org", true},
		{"digits and punctuation", "u.ser_99%x-y@sub.domain-1.net", true},
		{"long tld", "someone@example.museum", true},
		{"empty", "", false},
		{"missing at", "userexample.com", false},
		{"missing domain dot", "user@example", false},
		{"tld too short", "user@example.c", false},
		{"tld too long", "user@example.toolongg", false},
		{"numeric tld", "user@example.123", false},
		{"empty local part", "@example.com", false},
		{"space in local part", "us er@example.com", false},
		{"two at signs", "a@b@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.ValidEmailFormat(tt.email))
		})
	}
}
