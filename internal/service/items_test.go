package service

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
	"github.com/and161185/clipy/internal/repository"
)

type fakeItemRepo struct {
	listOut []model.Item
	listErr error

	getOut *model.Item
	getErr error

	createInID    string
	createInDraft model.ItemDraft
	createOut     *model.Item
	createErr     error

	updateInID    string
	updateInDraft model.ItemDraft
	updateOut     *model.Item
	updateErr     error

	deleteInID string
	deleteOut  bool
	deleteErr  error

	favOut *model.Item
	favErr error

	compOut *model.Item
	compErr error
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (f *fakeItemRepo) List(_ context.Context) ([]model.Item, error) {
	return append([]model.Item(nil), f.listOut...), f.listErr
}
func (f *fakeItemRepo) Get(_ context.Context, id string) (*model.Item, error) {
	return f.getOut, f.getErr
}
func (f *fakeItemRepo) Create(_ context.Context, id string, d model.ItemDraft) (*model.Item, error) {
	f.createInID, f.createInDraft = id, d
	if f.createOut == nil && f.createErr == nil {
		it := model.Item{ID: id, Title: d.Title, Content: d.Content, Category: d.Category, UserID: d.UserID}
		return &it, nil
	}
	return f.createOut, f.createErr
}
func (f *fakeItemRepo) Update(_ context.Context, id string, d model.ItemDraft) (*model.Item, error) {
	f.updateInID, f.updateInDraft = id, d
	if f.updateOut == nil && f.updateErr == nil {
		it := model.Item{ID: id, Title: d.Title, Content: d.Content, Category: d.Category}
		return &it, nil
	}
	return f.updateOut, f.updateErr
}
func (f *fakeItemRepo) Delete(_ context.Context, id string) (bool, error) {
	f.deleteInID = id
	return f.deleteOut, f.deleteErr
}
func (f *fakeItemRepo) ToggleFavorite(_ context.Context, id string) (*model.Item, error) {
	return f.favOut, f.favErr
}
func (f *fakeItemRepo) ToggleCompleted(_ context.Context, id string) (*model.Item, error) {
	return f.compOut, f.compErr
}

type fakeAssets struct {
	extractIn     []string // content values passed in
	extractItemID string
	extractOut    string // if set, returned instead of the input
	cleanupIn     []string
}

func (f *fakeAssets) ExtractAndPersist(content, itemID string) string {
	f.extractIn = append(f.extractIn, content)
	f.extractItemID = itemID
	if f.extractOut != "" {
		return f.extractOut
	}
	return content
}
func (f *fakeAssets) Cleanup(oldContent string) {
	f.cleanupIn = append(f.cleanupIn, oldContent)
}

func TestItemService_Create_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeItemRepo{}
	s := NewItemService(repo, &fakeAssets{})

	if _, err := s.Create(ctx, model.ItemDraft{Category: "home"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty title, got %v", err)
	}
	if _, err := s.Create(ctx, model.ItemDraft{Title: "t"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty category, got %v", err)
	}
	if repo.createInID != "" {
		t.Fatalf("repo should not be called on validation failure")
	}
}

func TestItemService_Create_ExtractsAndDefaultsOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeItemRepo{}
	fa := &fakeAssets{extractOut: `<img src="/api/uploads/x_1.png">`}
	s := NewItemService(repo, fa)

	it, err := s.Create(ctx, model.ItemDraft{Title: "t", Category: "home", Content: `<img src="data:...">`})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if it.ID == "" || repo.createInID != it.ID {
		t.Fatalf("id not assigned/forwarded: %q vs %q", it.ID, repo.createInID)
	}
	if fa.extractItemID != it.ID {
		t.Fatalf("extraction must use the new item id")
	}
	if repo.createInDraft.Content != fa.extractOut {
		t.Fatalf("persisted content must be the rewritten one, got %q", repo.createInDraft.Content)
	}
	if repo.createInDraft.UserID != defaultUserID {
		t.Fatalf("empty owner must default to %q, got %q", defaultUserID, repo.createInDraft.UserID)
	}
}

func TestItemService_Update_CleansUpPreviousContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	old := `<img src="/api/uploads/old.png">`
	repo := &fakeItemRepo{getOut: &model.Item{ID: "u1", Content: old}}
	fa := &fakeAssets{}
	s := NewItemService(repo, fa)

	_, err := s.Update(ctx, "u1", model.ItemDraft{Title: "t", Category: "home", Content: "<p>new</p>"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(fa.cleanupIn) != 1 || fa.cleanupIn[0] != old {
		t.Fatalf("cleanup must run against the previous content, got %v", fa.cleanupIn)
	}
	if repo.updateInID != "u1" {
		t.Fatalf("repo update id mismatch: %q", repo.updateInID)
	}
}

func TestItemService_Update_NoCleanupWhenContentUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	same := "<p>same</p>"
	repo := &fakeItemRepo{getOut: &model.Item{ID: "u1", Content: same}}
	fa := &fakeAssets{}
	s := NewItemService(repo, fa)

	_, err := s.Update(ctx, "u1", model.ItemDraft{Title: "t", Category: "home", Content: same})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(fa.cleanupIn) != 0 {
		t.Fatalf("cleanup must not run when content is unchanged")
	}
}

func TestItemService_Update_NotFoundBeforeMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeItemRepo{getErr: errs.ErrNotFound}
	fa := &fakeAssets{}
	s := NewItemService(repo, fa)

	_, err := s.Update(ctx, "zzz", model.ItemDraft{Title: "t", Category: "home"})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
	if repo.updateInID != "" || len(fa.extractIn) != 0 {
		t.Fatalf("no mutation or extraction on missing item")
	}
}

func TestItemService_Update_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewItemService(&fakeItemRepo{}, &fakeAssets{})

	if _, err := s.Update(ctx, "id", model.ItemDraft{Category: "home"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty title, got %v", err)
	}
	if _, err := s.Update(ctx, "", model.ItemDraft{Title: "t", Category: "home"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty id, got %v", err)
	}
}

func TestItemService_Delete_CleansUpAssets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	content := `<img src="/api/uploads/gone.png">`
	repo := &fakeItemRepo{getOut: &model.Item{ID: "d1", Content: content}, deleteOut: true}
	fa := &fakeAssets{}
	s := NewItemService(repo, fa)

	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(fa.cleanupIn) != 1 || fa.cleanupIn[0] != content {
		t.Fatalf("cleanup must run against the deleted item's content")
	}
	if repo.deleteInID != "d1" {
		t.Fatalf("repo delete id mismatch")
	}
}

func TestItemService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeItemRepo{getErr: errs.ErrNotFound}
	s := NewItemService(repo, &fakeAssets{})

	if err := s.Delete(ctx, "zzz"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestItemService_Toggles_Delegate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &fakeItemRepo{
		favOut:  &model.Item{ID: "x", Favorite: true},
		compOut: &model.Item{ID: "x", Completed: true},
	}
	s := NewItemService(repo, &fakeAssets{})

	fav, err := s.ToggleFavorite(ctx, "x")
	if err != nil || !fav.Favorite {
		t.Fatalf("ToggleFavorite: %+v %v", fav, err)
	}
	comp, err := s.ToggleCompleted(ctx, "x")
	if err != nil || !comp.Completed {
		t.Fatalf("ToggleCompleted: %+v %v", comp, err)
	}

	if _, err := s.ToggleFavorite(ctx, ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on empty id")
	}
}

func TestItemService_RepoErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")
	repo := &fakeItemRepo{listErr: boom, getErr: boom, createErr: boom, createOut: &model.Item{}}
	s := NewItemService(repo, &fakeAssets{})

	if _, err := s.List(ctx); !errors.Is(err, boom) {
		t.Fatalf("want repo error propagate (list)")
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("want repo error propagate (get)")
	}
	if _, err := s.Create(ctx, model.ItemDraft{Title: "t", Category: "c"}); !errors.Is(err, boom) {
		t.Fatalf("want repo error propagate (create)")
	}
}
