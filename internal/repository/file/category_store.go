package file

import (
	"context"
	"sort"
	"sync"

	"github.com/and161185/clipy/internal/model"
)

type categoryRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type categoriesDoc struct {
	Categories []categoryRecord `json:"categories"`
}

// CategoryStore implements CategoryRepository over a categories.json document.
type CategoryStore struct {
	mu  sync.Mutex
	doc doc
}

// NewCategoryStore constructs a category store rooted at dir.
func NewCategoryStore(dir string) *CategoryStore {
	return &CategoryStore{doc: newDoc(dir, "categories.json")}
}

func (s *CategoryStore) read() (categoriesDoc, error) {
	var d categoriesDoc
	if err := s.doc.load(&d); err != nil {
		if notExist(err) {
			return categoriesDoc{}, nil
		}
		return categoriesDoc{}, err
	}
	return d, nil
}

// List returns all categories ordered by display name.
func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	recs := append([]categoryRecord(nil), d.Categories...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })

	out := make([]model.Category, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.Category{ID: r.ID, Name: r.Name, Icon: r.Icon, Color: r.Color})
	}
	return out, nil
}

// SeedCategories inserts fixed categories that are not present yet.
func (s *CategoryStore) SeedCategories(ctx context.Context, cats []model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(d.Categories))
	for _, r := range d.Categories {
		existing[r.ID] = true
	}
	added := false
	for _, c := range cats {
		if existing[c.ID] {
			continue
		}
		d.Categories = append(d.Categories, categoryRecord{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color})
		added = true
	}
	if !added {
		return nil
	}
	return s.doc.save(d)
}
