package repository

import (
	"context"

	"github.com/and161185/clipy/internal/model"
)

// ItemRepository provides CRUD and toggle access to items.
//
// List order is fixed for both backends: favorites first, then manual
// order index ascending, then creation time descending.
type ItemRepository interface {
	// List returns all items in display order.
	List(ctx context.Context) ([]model.Item, error)

	// Get returns a single item by ID.
	Get(ctx context.Context, id string) (*model.Item, error)

	// Create persists a new item under the given ID with zeroed flags
	// and fresh timestamps.
	Create(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error)

	// Update merges draft fields over an existing record and refreshes
	// updated_at.
	Update(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error)

	// Delete removes the record; reports false if it was absent.
	Delete(ctx context.Context, id string) (bool, error)

	// ToggleFavorite flips the favorite flag and refreshes updated_at.
	ToggleFavorite(ctx context.Context, id string) (*model.Item, error)

	// ToggleCompleted flips the completed flag, sets or clears
	// completed_at accordingly, and refreshes updated_at.
	ToggleCompleted(ctx context.Context, id string) (*model.Item, error)
}
