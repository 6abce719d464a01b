// Package model defines domain entities used by services and repositories.
package model

import "time"

// User is one of the fixed accounts seeded at startup. Passwords are
// stored as Argon2id hashes with per-user salts, never in plaintext.
type User struct {
	ID        string
	Email     string // unique
	Name      string // display name, also accepted as login
	PwdHash   []byte // Argon2id(password, Salt)
	Salt      []byte // per-user salt
	Avatar    string // emoji marker shown next to the name
	Color     string // accent color (hex)
	CreatedAt time.Time
}

// Category is one of the fixed seeded categories items reference by ID.
type Category struct {
	ID    string
	Name  string
	Icon  string // material icon token
	Color string // hex
}

// Item is a single content entry: rich-text body, category, status flags.
type Item struct {
	ID          string     // opaque unique token, immutable
	Title       string     // non-empty
	Content     string     // rich-text markup, may be empty
	Category    string     // FK -> categories.id
	UserID      string     // FK -> users.id
	Favorite    bool
	Completed   bool
	CompletedAt *time.Time // set on completion, cleared when un-completed
	OrderIndex  int        // manual ordering hint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemDraft carries the client-supplied fields of a create or update.
// ID, flags and timestamps are owned by the repository.
type ItemDraft struct {
	Title    string
	Content  string
	Category string
	UserID   string
}
