package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

// ItemRepo implements ItemRepository using PostgreSQL.
type ItemRepo struct{ db *DB }

// NewItemRepo constructs an item repository.
func NewItemRepo(db *DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `id, title, content, category, user_id, favorite, completed, completed_at, order_index, created_at, updated_at`

func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	err := row.Scan(
		&it.ID, &it.Title, &it.Content, &it.Category, &it.UserID,
		&it.Favorite, &it.Completed, &it.CompletedAt, &it.OrderIndex,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// List returns all items ordered favorites first, then manual order
// index ascending, then newest first.
func (r *ItemRepo) List(ctx context.Context) ([]model.Item, error) {
	const q = `
SELECT ` + itemCols + `
FROM items
ORDER BY favorite DESC, order_index ASC, created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// Get returns a single item by id.
func (r *ItemRepo) Get(ctx context.Context, id string) (*model.Item, error) {
	const q = `SELECT ` + itemCols + ` FROM items WHERE id=$1`
	return scanItem(r.db.Pool.QueryRow(ctx, q, id))
}

// Create inserts a new item row with zeroed flags and returns it.
func (r *ItemRepo) Create(ctx context.Context, id string, d model.ItemDraft) (*model.Item, error) {
	const q = `
INSERT INTO items (id, title, content, category, user_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + itemCols
	return scanItem(r.db.Pool.QueryRow(ctx, q, id, d.Title, d.Content, d.Category, d.UserID))
}

// Update replaces the editable fields and refreshes updated_at.
func (r *ItemRepo) Update(ctx context.Context, id string, d model.ItemDraft) (*model.Item, error) {
	const q = `
UPDATE items
SET title=$2, content=$3, category=$4, updated_at=now()
WHERE id=$1
RETURNING ` + itemCols
	return scanItem(r.db.Pool.QueryRow(ctx, q, id, d.Title, d.Content, d.Category))
}

// Delete removes the row; reports false when nothing matched.
func (r *ItemRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ToggleFavorite flips the favorite flag in a single statement.
func (r *ItemRepo) ToggleFavorite(ctx context.Context, id string) (*model.Item, error) {
	const q = `
UPDATE items
SET favorite = NOT favorite, updated_at=now()
WHERE id=$1
RETURNING ` + itemCols
	return scanItem(r.db.Pool.QueryRow(ctx, q, id))
}

// ToggleCompleted flips the completed flag; completed_at follows the
// transition (set on completion, cleared on un-completion).
func (r *ItemRepo) ToggleCompleted(ctx context.Context, id string) (*model.Item, error) {
	const q = `
UPDATE items
SET completed = NOT completed,
    completed_at = CASE WHEN NOT completed THEN now() ELSE NULL END,
    updated_at = now()
WHERE id=$1
RETURNING ` + itemCols
	return scanItem(r.db.Pool.QueryRow(ctx, q, id))
}
