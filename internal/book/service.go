package book

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the cover lookup fan-out per response.
const maxConcurrentLookups = 8

// Service wraps the repository and decorates every record it returns with a
// cover URL from the lookup client. A failed lookup leaves the record's
// CoverURL nil and never fails the request.
type Service struct {
	repo   Repository
	covers CoverFetcher
}

func NewService(repo Repository, covers CoverFetcher) *Service {
	return &Service{repo: repo, covers: covers}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, books)
	return books, nil
}

func (s *Service) ListPage(ctx context.Context, limit, offset int) ([]Book, error) {
	books, err := s.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, books)
	return books, nil
}

func (s *Service) ListSorted(ctx context.Context, sortBy string) ([]Book, error) {
	books, err := s.repo.ListSorted(ctx, sortBy)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, books)
	return books, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	s.enrichOne(ctx, &b)
	return b, nil
}

func (s *Service) Create(ctx context.Context, nb NewBook) (Book, error) {
	b, err := s.repo.Create(ctx, nb)
	if err != nil {
		return Book{}, err
	}
	s.enrichOne(ctx, &b)
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, nb NewBook) (Book, error) {
	b, err := s.repo.Update(ctx, id, nb)
	if err != nil {
		return Book{}, err
	}
	s.enrichOne(ctx, &b)
	return b, nil
}

// Delete removes the book and returns its prior state, enriched, so the
// caller gets a last look at what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Book{}, err
	}
	s.enrichOne(ctx, &b)
	return b, nil
}

// enrich attaches cover URLs to all records in place. Lookups are
// independent and I/O-bound, so they run concurrently; each goroutine
// writes only its own index, which keeps the repository's ordering intact.
func (s *Service) enrich(ctx context.Context, books []Book) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i := range books {
		g.Go(func() error {
			s.enrichOne(ctx, &books[i])
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) enrichOne(ctx context.Context, b *Book) {
	coverURL, err := s.covers.CoverByTitle(ctx, b.Title)
	if err != nil {
		log.Printf("book service: cover lookup for %q: %v", b.Title, err)
		return
	}
	if coverURL != "" {
		b.CoverURL = &coverURL
	}
}
