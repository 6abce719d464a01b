package file

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

// itemRecord is the stored JSON shape of an item.
type itemRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	UserID      string     `json:"userId"`
	Favorite    bool       `json:"favorite"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	OrderIndex  int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type itemsDoc struct {
	Items []itemRecord `json:"items"`
}

// ItemStore implements ItemRepository over a single items.json document.
type ItemStore struct {
	mu  sync.Mutex
	doc doc
	now func() time.Time
}

// NewItemStore constructs an item store rooted at dir.
func NewItemStore(dir string) *ItemStore {
	return &ItemStore{doc: newDoc(dir, "items.json"), now: func() time.Time { return time.Now().UTC() }}
}

func (s *ItemStore) read() (itemsDoc, error) {
	var d itemsDoc
	if err := s.doc.load(&d); err != nil {
		if notExist(err) {
			return itemsDoc{}, nil
		}
		return itemsDoc{}, err
	}
	return d, nil
}

func toModel(rec itemRecord) model.Item {
	return model.Item{
		ID: rec.ID, Title: rec.Title, Content: rec.Content,
		Category: rec.Category, UserID: rec.UserID,
		Favorite: rec.Favorite, Completed: rec.Completed,
		CompletedAt: rec.CompletedAt, OrderIndex: rec.OrderIndex,
		CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
	}
}

// List returns all items ordered favorites first, then manual order
// index ascending, then newest first.
func (s *ItemStore) List(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	recs := append([]itemRecord(nil), d.Items...)
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	out := make([]model.Item, 0, len(recs))
	for _, r := range recs {
		out = append(out, toModel(r))
	}
	return out, nil
}

// Get returns a single item by id.
func (s *ItemStore) Get(ctx context.Context, id string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, r := range d.Items {
		if r.ID == id {
			it := toModel(r)
			return &it, nil
		}
	}
	return nil, errs.ErrNotFound
}

// Create appends a new record with zeroed flags and fresh timestamps.
// The order index continues from the end of the collection.
func (s *ItemStore) Create(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec := itemRecord{
		ID: id, Title: draft.Title, Content: draft.Content,
		Category: draft.Category, UserID: draft.UserID,
		OrderIndex: len(d.Items), CreatedAt: now, UpdatedAt: now,
	}
	d.Items = append(d.Items, rec)
	if err := s.doc.save(d); err != nil {
		return nil, err
	}
	it := toModel(rec)
	return &it, nil
}

// Update replaces the editable fields of an existing record.
func (s *ItemStore) Update(ctx context.Context, id string, draft model.ItemDraft) (*model.Item, error) {
	return s.mutate(id, func(rec *itemRecord) {
		rec.Title = draft.Title
		rec.Content = draft.Content
		rec.Category = draft.Category
	})
}

// Delete removes the record; reports false when it was absent.
func (s *ItemStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return false, err
	}
	kept := d.Items[:0]
	for _, r := range d.Items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(d.Items) {
		return false, nil
	}
	d.Items = kept
	if err := s.doc.save(d); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFavorite flips the favorite flag.
func (s *ItemStore) ToggleFavorite(ctx context.Context, id string) (*model.Item, error) {
	return s.mutate(id, func(rec *itemRecord) {
		rec.Favorite = !rec.Favorite
	})
}

// ToggleCompleted flips the completed flag and keeps completed_at in
// step with the transition.
func (s *ItemStore) ToggleCompleted(ctx context.Context, id string) (*model.Item, error) {
	return s.mutate(id, func(rec *itemRecord) {
		rec.Completed = !rec.Completed
		if rec.Completed {
			ts := s.now()
			rec.CompletedAt = &ts
		} else {
			rec.CompletedAt = nil
		}
	})
}

// mutate applies fn to the matching record, refreshes updated_at and
// rewrites the document.
func (s *ItemStore) mutate(id string, fn func(*itemRecord)) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range d.Items {
		if d.Items[i].ID != id {
			continue
		}
		fn(&d.Items[i])
		d.Items[i].UpdatedAt = s.now()
		if err := s.doc.save(d); err != nil {
			return nil, err
		}
		it := toModel(d.Items[i])
		return &it, nil
	}
	return nil, errs.ErrNotFound
}
