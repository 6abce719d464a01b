package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/clipy/internal/model"
)

func TestCategoryStore_ListSortedByName(t *testing.T) {
	s := NewCategoryStore(t.TempDir())
	ctx := context.Background()

	err := s.SeedCategories(ctx, []model.Category{
		{ID: "travel", Name: "Viaggi", Icon: "flight", Color: "#2196f3"},
		{ID: "home", Name: "Casa", Icon: "home", Color: "#ff9800"},
		{ID: "shopping", Name: "Spesa", Icon: "shopping_cart", Color: "#4caf50"},
	})
	require.NoError(t, err)

	cats, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Casa", "Spesa", "Viaggi"}, names(cats))
}

func TestCategoryStore_Seed_Idempotent(t *testing.T) {
	s := NewCategoryStore(t.TempDir())
	ctx := context.Background()

	cats := []model.Category{{ID: "home", Name: "Casa", Icon: "home", Color: "#ff9800"}}
	require.NoError(t, s.SeedCategories(ctx, cats))
	require.NoError(t, s.SeedCategories(ctx, cats))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func names(cats []model.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}
