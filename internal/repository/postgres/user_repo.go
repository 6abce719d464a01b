package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// GetByLogin selects a user by display name or email.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const q = `
SELECT id, email, name, pwd_hash, salt, avatar, color, created_at
FROM users WHERE name=$1 OR email=$1`
	row := r.db.Pool.QueryRow(ctx, q, login)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PwdHash, &u.Salt, &u.Avatar, &u.Color, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SeedUsers inserts fixed accounts, skipping rows that already exist.
func (r *UserRepo) SeedUsers(ctx context.Context, users []model.User) error {
	const q = `
INSERT INTO users (id, email, name, pwd_hash, salt, avatar, color)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`
	for _, u := range users {
		if _, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.Name, u.PwdHash, u.Salt, u.Avatar, u.Color); err != nil {
			return err
		}
	}
	return nil
}
