package file

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

type userRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PwdHash   []byte    `json:"pwdHash"`
	Salt      []byte    `json:"salt"`
	Avatar    string    `json:"avatar"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type usersDoc struct {
	Users []userRecord `json:"users"`
}

// UserStore implements UserRepository over a users.json document.
type UserStore struct {
	mu  sync.Mutex
	doc doc
}

// NewUserStore constructs a user store rooted at dir.
func NewUserStore(dir string) *UserStore {
	return &UserStore{doc: newDoc(dir, "users.json")}
}

func (s *UserStore) read() (usersDoc, error) {
	var d usersDoc
	if err := s.doc.load(&d); err != nil {
		if notExist(err) {
			return usersDoc{}, nil
		}
		return usersDoc{}, err
	}
	return d, nil
}

// GetByLogin finds a user whose name or email matches login.
func (s *UserStore) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, r := range d.Users {
		if r.Name == login || r.Email == login {
			return &model.User{
				ID: r.ID, Email: r.Email, Name: r.Name,
				PwdHash: r.PwdHash, Salt: r.Salt,
				Avatar: r.Avatar, Color: r.Color, CreatedAt: r.CreatedAt,
			}, nil
		}
	}
	return nil, errs.ErrNotFound
}

// SeedUsers inserts fixed accounts that are not present yet.
func (s *UserStore) SeedUsers(ctx context.Context, users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.read()
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(d.Users))
	for _, r := range d.Users {
		existing[r.ID] = true
	}
	added := false
	for _, u := range users {
		if existing[u.ID] {
			continue
		}
		created := u.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		d.Users = append(d.Users, userRecord{
			ID: u.ID, Email: u.Email, Name: u.Name,
			PwdHash: u.PwdHash, Salt: u.Salt,
			Avatar: u.Avatar, Color: u.Color, CreatedAt: created,
		})
		added = true
	}
	if !added {
		return nil
	}
	return s.doc.save(d)
}
