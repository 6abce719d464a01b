// Package seed installs the fixed users and categories at startup.
package seed

import (
	"context"
	"fmt"

	pkgcrypto "github.com/and161185/clipy/internal/crypto"
	"github.com/and161185/clipy/internal/model"
	"github.com/and161185/clipy/internal/repository"
)

// account pairs a user with the plaintext password hashed at seed time.
type account struct {
	user     model.User
	password string
}

var accounts = []account{
	{user: model.User{ID: "user1", Email: "gab.verdini@gmail.com", Name: "Mimmo", Avatar: "👤", Color: "#0ea5e9"}, password: "123456789"},
	{user: model.User{ID: "user2", Email: "elisa.dadduzio@gmail.com", Name: "Mimmi", Avatar: "💕", Color: "#ec4899"}, password: "123456789"},
}

// Categories is the fixed category set items reference by ID.
var Categories = []model.Category{
	{ID: "shopping", Name: "Spesa", Icon: "shopping_cart", Color: "#4caf50"},
	{ID: "travel", Name: "Viaggi", Icon: "flight", Color: "#2196f3"},
	{ID: "home", Name: "Casa", Icon: "home", Color: "#ff9800"},
	{ID: "gifts", Name: "Regali", Icon: "card_giftcard", Color: "#e91e63"},
	{ID: "entertainment", Name: "Intrattenimento", Icon: "movie", Color: "#9c27b0"},
	{ID: "food", Name: "Ristoranti", Icon: "restaurant", Color: "#f44336"},
	{ID: "sports", Name: "Sport", Icon: "sports_esports", Color: "#00bcd4"},
	{ID: "books", Name: "Libri", Icon: "menu_book", Color: "#795548"},
	{ID: "health", Name: "Salute", Icon: "local_hospital", Color: "#4caf50"},
	{ID: "fitness", Name: "Fitness", Icon: "fitness_center", Color: "#ff5722"},
	{ID: "work", Name: "Lavoro", Icon: "work", Color: "#607d8b"},
	{ID: "ideas", Name: "Idee", Icon: "lightbulb", Color: "#ffeb3b"},
}

// Users returns the fixed accounts with passwords hashed under fresh salts.
func Users() ([]model.User, error) {
	out := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		salt, err := pkgcrypto.RandBytes(16)
		if err != nil {
			return nil, err
		}
		u := a.user
		u.Salt = salt
		u.PwdHash = pkgcrypto.HashPassword([]byte(a.password), salt)
		out = append(out, u)
	}
	return out, nil
}

// Run seeds users and categories into the chosen backend, skipping
// whatever is already present.
func Run(ctx context.Context, users repository.UserRepository, cats repository.CategoryRepository) error {
	us, err := Users()
	if err != nil {
		return err
	}
	if err := users.SeedUsers(ctx, us); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := cats.SeedCategories(ctx, Categories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
