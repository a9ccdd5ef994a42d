package identity

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type usersRepository struct {
	db *bun.DB
}

// NewUsersRepository returns a bun backed UserStore. Email lookups are
// case-insensitive; the schema enforces email uniqueness so a duplicate
// registration race resolves at the store.
func NewUsersRepository(db *bun.DB) UserStore {
	return &usersRepository{db: db}
}

var _ UserStore = (*usersRepository)(nil)

func (r *usersRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("lower(?TableAlias.email) = lower(?)", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("User not found", errors.CategoryNotFound).
				WithMetadata(map[string]any{"email": email})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by email")
	}

	return user, nil
}

func (r *usersRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("User not found", errors.CategoryNotFound).
				WithMetadata(map[string]any{"id": id})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by id")
	}

	return user, nil
}

func (r *usersRepository) Save(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, errors.New("user must not be nil", errors.CategoryBadInput)
	}

	if user.ID == 0 {
		if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
		}
		return user, nil
	}

	if _, err := r.db.NewUpdate().Model(user).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}

	return user, nil
}

func (r *usersRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	return nil
}

func (r *usersRepository) FindAll(ctx context.Context) ([]*User, error) {
	var users []*User
	err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}

	return users, nil
}

// CreateUsersSchema creates the users table when it does not exist yet.
// Useful for the sqlite example and tests; production deployments manage
// the schema externally.
func CreateUsersSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
