package book

import (
	"errors"
)

// ErrNotFound is returned when no book matches the requested id.
var ErrNotFound = errors.New("book not found")

// Rating bounds, enforced at the HTTP boundary. Storage keeps a plain
// nullable integer.
const (
	MinRating = 1
	MaxRating = 5
)

// Book represents a tracked book. CoverURL is derived from the cover
// lookup on every read and is never persisted.
type Book struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Rating   *int    `json:"rating,omitempty"`
	Notes    string  `json:"notes"`
	CoverURL *string `json:"cover_url,omitempty"`
}

// NewBook carries the client-supplied fields for create and update. Updates
// replace all four fields wholesale.
type NewBook struct {
	Title  string
	Author string
	Rating *int
	Notes  string
}
