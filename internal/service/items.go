package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
	"github.com/and161185/clipy/internal/repository"
)

// defaultUserID is attributed to items created without an explicit owner.
const defaultUserID = "user1"

// AssetManager persists inline images embedded in item content and
// garbage-collects assets a content replacement orphaned.
type AssetManager interface {
	// ExtractAndPersist rewrites inline base64 images to stored-file references.
	ExtractAndPersist(content, itemID string) string
	// Cleanup deletes every asset file referenced from oldContent (best-effort).
	Cleanup(oldContent string)
}

// ItemService defines item lifecycle operations.
type ItemService interface {
	// List returns all items in display order.
	List(ctx context.Context) ([]model.Item, error)
	// Get returns a single item by ID.
	Get(ctx context.Context, id string) (*model.Item, error)
	// Create validates the draft, extracts embedded images and persists a new item.
	Create(ctx context.Context, draft model.ItemDraft) (*model.Item, error)
	// Update validates the draft, extracts embedded images, persists and
	// cleans up assets orphaned by the content replacement.
	Update(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error)
	// Delete removes an item and its referenced assets.
	Delete(ctx context.Context, id string) error
	// ToggleFavorite flips the favorite flag.
	ToggleFavorite(ctx context.Context, id string) (*model.Item, error)
	// ToggleCompleted flips the completed flag with completed_at bookkeeping.
	ToggleCompleted(ctx context.Context, id string) (*model.Item, error)
}

type ItemServiceImpl struct {
	repo   repository.ItemRepository
	assets AssetManager
}

// NewItemService constructs ItemService with its storage and asset dependencies.
func NewItemService(repo repository.ItemRepository, assets AssetManager) *ItemServiceImpl {
	return &ItemServiceImpl{repo: repo, assets: assets}
}

// validateDraft enforces the required-field contract shared by create
// and update: title and category must both be present.
func validateDraft(d model.ItemDraft) error {
	if d.Title == "" {
		return fmt.Errorf("%w: empty title", errs.ErrValidation)
	}
	if d.Category == "" {
		return fmt.Errorf("%w: empty category", errs.ErrValidation)
	}
	return nil
}

// List returns all items in display order.
func (s *ItemServiceImpl) List(ctx context.Context) ([]model.Item, error) {
	return s.repo.List(ctx)
}

// Get fetches a single item by id.
func (s *ItemServiceImpl) Get(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", errs.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create assigns an ID, extracts embedded images from content and persists.
func (s *ItemServiceImpl) Create(ctx context.Context, draft model.ItemDraft) (*model.Item, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	if draft.UserID == "" {
		draft.UserID = defaultUserID
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	itemID := id.String()
	draft.Content = s.assets.ExtractAndPersist(draft.Content, itemID)
	return s.repo.Create(ctx, itemID, draft)
}

// Update captures the previous content, extracts images from the new
// content, persists, then garbage-collects assets the old content
// referenced. Cleanup is best-effort and never fails the update.
func (s *ItemServiceImpl) Update(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", errs.ErrValidation)
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Content = s.assets.ExtractAndPersist(draft.Content, id)
	updated, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	if existing.Content != updated.Content {
		s.assets.Cleanup(existing.Content)
	}
	return updated, nil
}

// Delete removes the item and its assets; absent items report ErrNotFound.
func (s *ItemServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", errs.ErrValidation)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	s.assets.Cleanup(existing.Content)

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag.
func (s *ItemServiceImpl) ToggleFavorite(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", errs.ErrValidation)
	}
	return s.repo.ToggleFavorite(ctx, id)
}

// ToggleCompleted flips the completed flag with timestamp bookkeeping.
func (s *ItemServiceImpl) ToggleCompleted(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", errs.ErrValidation)
	}
	return s.repo.ToggleCompleted(ctx, id)
}
