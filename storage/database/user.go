package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	query := `SELECT COUNT(*) FROM users WHERE email = $1`
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]int, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		var err error
		query, args, err = sqlx.In(`SELECT COUNT(*) FROM users WHERE email = ? AND id NOT IN (?)`, email, ids)
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		query = repo.db.Rebind(query)
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
INSERT INTO users (name, email, password, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowxContext(
		ctx, query,
		usr.Name, usr.Email, usr.PasswordHash, usr.Role, usr.IsActive, usr.CreatedAt, usr.UpdatedAt,
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	query := `SELECT id, name, email, password, role, is_active, created_at, updated_at, last_login FROM users WHERE is_active = true`
	if err := repo.db.SelectContext(ctx, &users, query); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	query := `SELECT id, name, email, password, role, is_active, created_at, updated_at, last_login FROM users WHERE id = $1 AND is_active = true`
	if err := repo.db.GetContext(ctx, &usr, query, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	query := `SELECT id, name, email, password, role, is_active, created_at, updated_at, last_login FROM users WHERE email = $1`
	if err := repo.db.GetContext(ctx, &usr, query, email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return usr, nil
}

func (repo *userRepository) FilterUsersByRole(ctx context.Context, role string) ([]user.User, error) {
	var users []user.User
	query := `SELECT id, name, email, password, role, is_active, created_at, updated_at, last_login FROM users WHERE role = $1 AND is_active = true`
	if err := repo.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, errors.Wrap(err, "filtering users by role")
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, id int, usr user.User) (user.User, error) {
	query := `
UPDATE users
SET name       = COALESCE(NULLIF($1, ''), name),
    email      = COALESCE(NULLIF($2, ''), email),
    password   = COALESCE($3, password),
    role       = COALESCE(NULLIF($4, ''), role),
    updated_at = $5
WHERE id = $6 AND is_active = true
RETURNING id, name, email, password, role, is_active, created_at, updated_at, last_login`
	var updated user.User
	err := repo.db.GetContext(ctx, &updated, query, usr.Name, usr.Email, usr.PasswordHash, usr.Role, usr.UpdatedAt, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return updated, nil
}

func (repo *userRepository) SetLastLogin(ctx context.Context, id int, t time.Time) error {
	query := `UPDATE users SET last_login = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, query, t, id); err != nil {
		return errors.Wrap(err, "setting last login")
	}
	return nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id int) error {
	query := `UPDATE users SET is_active = false, deleted_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return nil
}
