package identity_test

import (
	"testing"

	"github.com/emsuite/go-identity"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := identity.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			err = identity.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHash_Mismatch(t *testing.T) {
	hash, err := identity.HashPassword("correct horse battery staple")
	assert.NoError(t, err)

	err = identity.ComparePasswordAndHash("not the password", hash)
	assert.ErrorIs(t, err, identity.ErrMismatchedHashAndPassword)
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := identity.HashPassword("same plaintext")
	assert.NoError(t, err)

	second, err := identity.HashPassword("same plaintext")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, identity.ComparePasswordAndHash("same plaintext", first))
	assert.NoError(t, identity.ComparePasswordAndHash("same plaintext", second))
}
