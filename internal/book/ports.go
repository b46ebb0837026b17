package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	ListPage(ctx context.Context, limit, offset int) ([]Book, error)
	ListSorted(ctx context.Context, sortBy string) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, nb NewBook) (Book, error)
	Update(ctx context.Context, id int64, nb NewBook) (Book, error)
	Delete(ctx context.Context, id int64) (Book, error)
}

// CoverFetcher resolves a cover image URL for a title. An empty URL with a
// nil error means the lookup ran but found no cover.
type CoverFetcher interface {
	CoverByTitle(ctx context.Context, title string) (string, error)
}
