package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/internal/genre"
	"github.com/lib/pq"
)

// bookGenres selects a book's genre names in attachment order. It expects
// the books table to be aliased as b.
const bookGenres = `
	ARRAY(
		SELECT g.name
		FROM books_genres bg
		INNER JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = b.id
		ORDER BY bg.position, g.id
	)`

type books interface {
	GetBook(ctx context.Context, ID int64) (*data.Book, error)
}

// getOrCreateBook inserts book on tx unless a book with the same name exists.
// On return book holds the stored record; the boolean reports whether it was
// created. Concurrent callers with the same name all observe one record.
func getOrCreateBook(ctx context.Context, tx *sql.Tx, book *data.Book) (bool, error) {
	query := `
		INSERT INTO books (name, author, overview)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`
	err := tx.QueryRowContext(ctx, query, book.Name, book.Author, book.Overview).Scan(&book.ID)
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}
	query = `
		SELECT id, author, overview
		FROM books
		WHERE name = $1`
	err = tx.QueryRowContext(ctx, query, book.Name).Scan(&book.ID, &book.Author, &book.Overview)
	if err != nil {
		return false, fmt.Errorf("get book %q: %w", book.Name, err)
	}
	return false, nil
}

// GetBook retrieves a book record and its genres by ID.
func (r *repository) GetBook(ctx context.Context, ID int64) (*data.Book, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT b.id, b.name, b.author, b.overview, ` + bookGenres + `
		FROM books b
		WHERE b.id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&book.ID,
		&book.Name,
		&book.Author,
		&book.Overview,
		pq.Array(&book.Genres),
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.Genres = genre.OrUnknown(book.Genres)
	return &book, nil
}
