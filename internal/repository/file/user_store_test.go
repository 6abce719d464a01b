package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

func seedTwo(t *testing.T, s *UserStore) {
	t.Helper()
	err := s.SeedUsers(context.Background(), []model.User{
		{ID: "user1", Email: "a@example.com", Name: "Mimmo", PwdHash: []byte{1}, Salt: []byte{2}},
		{ID: "user2", Email: "b@example.com", Name: "Mimmi", PwdHash: []byte{3}, Salt: []byte{4}},
	})
	require.NoError(t, err)
}

func TestUserStore_GetByLogin_NameOrEmail(t *testing.T) {
	s := NewUserStore(t.TempDir())
	seedTwo(t, s)
	ctx := context.Background()

	byName, err := s.GetByLogin(ctx, "Mimmo")
	require.NoError(t, err)
	require.Equal(t, "user1", byName.ID)
	require.Equal(t, []byte{1}, byName.PwdHash)

	byEmail, err := s.GetByLogin(ctx, "b@example.com")
	require.NoError(t, err)
	require.Equal(t, "user2", byEmail.ID)

	_, err = s.GetByLogin(ctx, "nobody")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserStore_Seed_Idempotent(t *testing.T) {
	s := NewUserStore(t.TempDir())
	seedTwo(t, s)
	seedTwo(t, s)

	d, err := s.read()
	require.NoError(t, err)
	require.Len(t, d.Users, 2)
}
