package postgres

import (
	"context"

	"github.com/and161185/clipy/internal/model"
)

// CategoryRepo implements CategoryRepository using PostgreSQL.
type CategoryRepo struct{ db *DB }

// NewCategoryRepo constructs a category repository.
func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns all categories ordered by display name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name, icon, color FROM categories ORDER BY name`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SeedCategories inserts the fixed category set, skipping existing rows.
func (r *CategoryRepo) SeedCategories(ctx context.Context, cats []model.Category) error {
	const q = `
INSERT INTO categories (id, name, icon, color)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`
	for _, c := range cats {
		if _, err := r.db.Pool.Exec(ctx, q, c.ID, c.Name, c.Icon, c.Color); err != nil {
			return err
		}
	}
	return nil
}
