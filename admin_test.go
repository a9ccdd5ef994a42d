package identity_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/emsuite/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdmin_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every record", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindAll", mock.Anything).Return([]*identity.User{
			{ID: 1, Email: "a@b.com"},
			{ID: 2, Email: "c@d.com"},
		}, nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).ListAll(ctx)

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "Successfully fetched all users", env.Message)
		assert.Len(t, env.Users, 2)
	})

	t.Run("empty store is 404", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindAll", mock.Anything).Return([]*identity.User{}, nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).ListAll(ctx)

		assert.Equal(t, http.StatusNotFound, env.StatusCode)
		assert.Equal(t, "No users found", env.Message)
	})
}

func TestAdmin_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(7)).
			Return(&identity.User{ID: 7, Email: "a@b.com", Role: identity.RoleUser}, nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).GetByID(ctx, 7)

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "User with ID '7' found successfully", env.Message)
		assert.Equal(t, identity.RoleUser, env.User.Role)
	})

	t.Run("missing id funnels to 500, not 404", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(404)).Return(nil, notFoundErr())

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).GetByID(ctx, 404)

		assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
		assert.Equal(t, "Error occurred: User not found", env.Message)
	})
}

func TestAdmin_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing record", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(1)).
			Return(&identity.User{ID: 1, Email: "a@b.com"}, nil)
		store.On("DeleteByID", mock.Anything, int64(1)).Return(nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).DeleteByID(ctx, 1)

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "User deleted successfully", env.Message)
		store.AssertCalled(t, "DeleteByID", mock.Anything, int64(1))
	})

	t.Run("absent id performs no delete call", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(2)).Return(nil, notFoundErr())

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).DeleteByID(ctx, 2)

		assert.Equal(t, http.StatusNotFound, env.StatusCode)
		assert.Equal(t, "User not found for deletion", env.Message)
		store.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}

func TestAdmin_UpdateByID(t *testing.T) {
	ctx := context.Background()

	existing := func() *identity.User {
		return &identity.User{
			ID:           1,
			Email:        "old@b.com",
			Name:         "Old",
			Role:         identity.RoleUser,
			PasswordHash: "$2a$oldhash",
		}
	}

	t.Run("missing record is 404", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(9)).Return(nil, notFoundErr())

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).UpdateByID(ctx, 9, identity.UpdateUserRequest{})

		assert.Equal(t, http.StatusNotFound, env.StatusCode)
		assert.Equal(t, "User not found for update", env.Message)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("empty password leaves the hash unchanged", func(t *testing.T) {
		record := existing()
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(1)).Return(record, nil)
		store.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(record, nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).UpdateByID(ctx, 1, identity.UpdateUserRequest{
			Email: "new@b.com",
			Name:  "New",
			Role:  identity.RoleAdmin,
		})

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "User updated successfully", env.Message)
		assert.Equal(t, "new@b.com", record.Email)
		assert.Equal(t, "New", record.Name)
		assert.Equal(t, identity.RoleAdmin, record.Role)
		assert.Equal(t, "$2a$oldhash", record.PasswordHash)
	})

	t.Run("non-empty password is re-hashed and verifies", func(t *testing.T) {
		record := existing()
		store := &MockUserStore{}
		store.On("FindByID", mock.Anything, int64(1)).Return(record, nil)
		store.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(record, nil)

		admin := identity.NewAdmin(store).WithLogger(&MockLogger{})
		env := admin.UpdateByID(ctx, 1, identity.UpdateUserRequest{
			Email:    "new@b.com",
			Name:     "New",
			Role:     identity.RoleUser,
			Password: "fresh-password",
		})

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.NotEqual(t, "$2a$oldhash", record.PasswordHash)
		assert.NoError(t, identity.ComparePasswordAndHash("fresh-password", record.PasswordHash))
	})
}

func TestAdmin_GetMyInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByEmail", mock.Anything, "a@b.com").
			Return(&identity.User{ID: 1, Email: "a@b.com"}, nil)

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).GetMyInfo(ctx, "a@b.com")

		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "User information retrieved successfully", env.Message)
		assert.NotNil(t, env.User)
	})

	t.Run("missing", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("FindByEmail", mock.Anything, "nobody@b.com").Return(nil, notFoundErr())

		env := identity.NewAdmin(store).WithLogger(&MockLogger{}).GetMyInfo(ctx, "nobody@b.com")

		assert.Equal(t, http.StatusNotFound, env.StatusCode)
		assert.Equal(t, "User not found", env.Message)
	})
}
