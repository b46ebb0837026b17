package book

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, rating, notes"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	books, err := r.queryBooks(ctx, "SELECT "+bookColumns+" FROM books")
	if err != nil {
		log.Printf("book repo: list: %v", err)
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) ListPage(ctx context.Context, limit, offset int) ([]Book, error) {
	books, err := r.queryBooks(ctx, "SELECT "+bookColumns+" FROM books LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		log.Printf("book repo: list page: %v", err)
		return nil, err
	}
	return books, nil
}

// ListSorted orders by the given criterion: "rating" descending, "recency"
// descending by id. Any other value falls back to the unconditioned list.
func (r *PostgresRepo) ListSorted(ctx context.Context, sortBy string) ([]Book, error) {
	query := "SELECT " + bookColumns + " FROM books"
	switch sortBy {
	case "rating":
		query += " ORDER BY rating DESC NULLS LAST"
	case "recency":
		query += " ORDER BY id DESC"
	}

	books, err := r.queryBooks(ctx, query)
	if err != nil {
		log.Printf("book repo: list sorted by %q: %v", sortBy, err)
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = "SELECT " + bookColumns + " FROM books WHERE id = $1"
	return r.queryBookRow(ctx, "get", query, id)
}

func (r *PostgresRepo) Create(ctx context.Context, nb NewBook) (Book, error) {
	const query = `
		INSERT INTO books (title, author, rating, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookColumns
	return r.queryBookRow(ctx, "create", query, nb.Title, nb.Author, nb.Rating, nb.Notes)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, nb NewBook) (Book, error) {
	const query = `
		UPDATE books
		SET title = $2, author = $3, rating = $4, notes = $5
		WHERE id = $1
		RETURNING ` + bookColumns
	return r.queryBookRow(ctx, "update", query, id, nb.Title, nb.Author, nb.Rating, nb.Notes)
}

// Delete removes the row and returns its prior state.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) (Book, error) {
	const query = "DELETE FROM books WHERE id = $1 RETURNING " + bookColumns
	return r.queryBookRow(ctx, "delete", query, id)
}

func (r *PostgresRepo) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Rating, &b.Notes); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) queryBookRow(ctx context.Context, op, query string, args ...any) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&b.ID, &b.Title, &b.Author, &b.Rating, &b.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		log.Printf("book repo: %s: %v", op, err)
		return Book{}, err
	}
	return b, nil
}
