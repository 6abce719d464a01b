// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/clipy/internal/model"
)

// UserRepository provides credential lookups and bootstrap seeding.
type UserRepository interface {
	// GetByLogin loads a user whose name or email matches login.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// SeedUsers inserts the fixed accounts if they are not present yet.
	SeedUsers(ctx context.Context, users []model.User) error
}

// CategoryRepository provides read access to the fixed category set.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
	// SeedCategories inserts the fixed categories if they are not present yet.
	SeedCategories(ctx context.Context, cats []model.Category) error
}
