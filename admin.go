package identity

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
)

// UpdateUserRequest is the patch shape for updating a record. Email, name,
// and role overwrite unconditionally; the password is re-hashed and stored
// only when non-empty.
type UpdateUserRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	Password string   `json:"password,omitempty"`
}

// Admin provides administrative CRUD over user records. Like Accounts, it
// is stateless and reports every outcome through an Envelope.
type Admin struct {
	store     UserStore
	passwords PasswordAuthenticator
	logger    Logger
}

func NewAdmin(store UserStore) *Admin {
	return &Admin{
		store:     store,
		passwords: BcryptAuthenticator{},
		logger:    defLogger{},
	}
}

func (a *Admin) WithLogger(logger Logger) *Admin {
	if logger != nil {
		a.logger = logger
	}
	return a
}

func (a *Admin) WithPasswordAuthenticator(passwords PasswordAuthenticator) *Admin {
	if passwords != nil {
		a.passwords = passwords
	}
	return a
}

// ListAll returns every record, or 404 when the store is empty.
func (a *Admin) ListAll(ctx context.Context) *Envelope {
	users, err := a.store.FindAll(ctx)
	if err != nil {
		a.logger.Error("list users failed", "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	if len(users) == 0 {
		return notFound("No users found")
	}

	env := ok("Successfully fetched all users")
	env.Users = users
	return env
}

// GetByID fetches a single record. A missing id reports as an internal
// failure here, not 404.
func (a *Admin) GetByID(ctx context.Context, id int64) *Envelope {
	user, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return internalError("Error occurred: User not found")
		}
		a.logger.Error("get user failed", "id", id, "error", err)
		return internalError("Error occurred: " + errMessage(err))
	}

	env := ok(fmt.Sprintf("User with ID '%d' found successfully", id))
	env.User = user
	return env
}

// DeleteByID removes a record. The existence check and the delete are two
// separate store calls; an absent id returns 404 without a delete call.
func (a *Admin) DeleteByID(ctx context.Context, id int64) *Envelope {
	_, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return notFound("User not found for deletion")
		}
		a.logger.Error("delete lookup failed", "id", id, "error", err)
		return internalError("Error occurred while deleting user: " + errMessage(err))
	}

	if err := a.store.DeleteByID(ctx, id); err != nil {
		a.logger.Error("delete failed", "id", id, "error", err)
		return internalError("Error occurred while deleting user: " + errMessage(err))
	}

	return ok("User deleted successfully")
}

// UpdateByID overwrites email, name, and role, re-hashing the password only
// when the patch carries a non-empty one.
func (a *Admin) UpdateByID(ctx context.Context, id int64, patch UpdateUserRequest) *Envelope {
	existing, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return notFound("User not found for update")
		}
		a.logger.Error("update lookup failed", "id", id, "error", err)
		return internalError("Error occurred while updating user: " + errMessage(err))
	}

	existing.Email = patch.Email
	existing.Name = patch.Name
	existing.Role = patch.Role

	if patch.Password != "" {
		hash, err := a.passwords.HashPassword(patch.Password)
		if err != nil {
			a.logger.Error("update hashing failed", "id", id, "error", err)
			return internalError("Error occurred while updating user: " + errMessage(err))
		}
		existing.PasswordHash = hash
	}

	saved, err := a.store.Save(ctx, existing)
	if err != nil {
		a.logger.Error("update save failed", "id", id, "error", err)
		return internalError("Error occurred while updating user: " + errMessage(err))
	}

	env := ok("User updated successfully")
	env.User = saved
	return env
}

// GetMyInfo returns the record matching the authenticated subject's email.
func (a *Admin) GetMyInfo(ctx context.Context, email string) *Envelope {
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return notFound("User not found")
		}
		a.logger.Error("get profile failed", "email", email, "error", err)
		return internalError("Error occurred while getting user info: " + errMessage(err))
	}

	env := ok("User information retrieved successfully")
	env.User = user
	return env
}
