package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emzola/bookswap/data"
)

type genres interface {
	GetAllGenres(ctx context.Context) ([]*data.Genre, error)
}

// attachGenres gets or creates each named genre on tx and associates it with
// the book. Genres already attached are left in place, so the call is
// idempotent. New associations are appended after existing ones.
func attachGenres(ctx context.Context, tx *sql.Tx, bookID int64, names []string) error {
	upsertGenre := `
		INSERT INTO genres (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`
	attach := `
		INSERT INTO books_genres (book_id, genre_id, position)
		SELECT $1, $2, COALESCE(MAX(position), -1) + 1
		FROM books_genres
		WHERE book_id = $1
		ON CONFLICT (book_id, genre_id) DO NOTHING`
	for _, name := range names {
		var genreID int64
		if err := tx.QueryRowContext(ctx, upsertGenre, name).Scan(&genreID); err != nil {
			return fmt.Errorf("attach genre %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, attach, bookID, genreID); err != nil {
			return fmt.Errorf("attach genre %q: %w", name, err)
		}
	}
	return nil
}

// GetAllGenres retrieves every genre with the number of books filed under it.
func (r *repository) GetAllGenres(ctx context.Context) ([]*data.Genre, error) {
	query := `
		SELECT genres.id, genres.name, count(books_genres.book_id)
		FROM genres
		LEFT JOIN books_genres ON books_genres.genre_id = genres.id
		GROUP BY genres.id
		ORDER BY genres.name ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := []*data.Genre{}
	for rows.Next() {
		var g data.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.BooksCount); err != nil {
			return nil, err
		}
		genres = append(genres, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
