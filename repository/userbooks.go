package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/internal/genre"
	"github.com/lib/pq"
)

const userBookColumns = `
	ub.id, ub.user_id, ub.condition, ub.location, ub.status, ub.created_at, ub.version,
	b.id, b.name, b.author, b.overview, ` + bookGenres

type userBooks interface {
	CreateUserBook(ctx context.Context, userBook *data.UserBook) error
	GetUserBook(ctx context.Context, ID int64) (*data.UserBook, error)
	GetAllUserBooksForUser(ctx context.Context, userID int64, status string) ([]*data.UserBook, error)
	SearchUserBooks(ctx context.Context, title, author string, genres []string) ([]*data.UserBook, error)
	UpdateUserBook(ctx context.Context, userBook *data.UserBook) error
	DeleteUserBook(ctx context.Context, ID int64) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserBook(row rowScanner) (*data.UserBook, error) {
	userBook := data.UserBook{Book: &data.Book{}}
	err := row.Scan(
		&userBook.ID,
		&userBook.UserID,
		&userBook.Condition,
		&userBook.Location,
		&userBook.Status,
		&userBook.CreatedAt,
		&userBook.Version,
		&userBook.Book.ID,
		&userBook.Book.Name,
		&userBook.Book.Author,
		&userBook.Book.Overview,
		pq.Array(&userBook.Book.Genres),
	)
	if err != nil {
		return nil, err
	}
	userBook.Book.Genres = genre.OrUnknown(userBook.Book.Genres)
	return &userBook, nil
}

func (r *repository) queryUserBooks(ctx context.Context, query string, args ...any) ([]*data.UserBook, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	userBooks := []*data.UserBook{}
	for rows.Next() {
		userBook, err := scanUserBook(rows)
		if err != nil {
			return nil, err
		}
		userBooks = append(userBooks, userBook)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return userBooks, nil
}

// CreateUserBook stores userBook.Book, reusing the book with the same name if
// one exists, and creates the ownership record for it. Genres are attached
// only when the book is new. All three steps share one transaction so a
// failure leaves nothing behind.
func (r *repository) CreateUserBook(ctx context.Context, userBook *data.UserBook) error {
	query := `
		INSERT INTO user_books (user_id, book_id, condition, location, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version`
	return r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		created, err := getOrCreateBook(ctx, tx, userBook.Book)
		if err != nil {
			return err
		}
		if created {
			if err := attachGenres(ctx, tx, userBook.Book.ID, userBook.Book.Genres); err != nil {
				return err
			}
		}
		args := []any{userBook.UserID, userBook.Book.ID, userBook.Condition, userBook.Location, userBook.Status}
		err = tx.QueryRowContext(ctx, query, args...).Scan(&userBook.ID, &userBook.CreatedAt, &userBook.Version)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrRecordNotFound
			}
			return err
		}
		return nil
	})
}

// GetUserBook retrieves an ownership record together with its book.
func (r *repository) GetUserBook(ctx context.Context, ID int64) (*data.UserBook, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT ` + userBookColumns + `
		FROM user_books ub
		INNER JOIN books b ON b.id = ub.book_id
		WHERE ub.id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	userBook, err := scanUserBook(r.db.QueryRowContext(ctx, query, ID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return userBook, nil
}

// GetAllUserBooksForUser retrieves a user's ownership records, newest first.
// A non-empty status restricts the result to records in that status.
func (r *repository) GetAllUserBooksForUser(ctx context.Context, userID int64, status string) ([]*data.UserBook, error) {
	query := `
		SELECT ` + userBookColumns + `
		FROM user_books ub
		INNER JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1
		AND (ub.status = $2 OR $2 = '')
		ORDER BY ub.created_at DESC, ub.id DESC`
	return r.queryUserBooks(ctx, query, userID, status)
}

// SearchUserBooks retrieves available ownership records whose book name and
// author contain title and author (case-insensitive) and whose book carries
// every one of genres. Empty criteria match everything.
func (r *repository) SearchUserBooks(ctx context.Context, title, author string, genres []string) ([]*data.UserBook, error) {
	wanted := make([]string, 0, len(genres))
	for _, g := range genres {
		wanted = append(wanted, strings.ToLower(g))
	}
	query := `
		SELECT ` + userBookColumns + `
		FROM user_books ub
		INNER JOIN books b ON b.id = ub.book_id
		WHERE ub.status = $1
		AND (b.name ILIKE '%' || $2 || '%' OR $2 = '')
		AND (b.author ILIKE '%' || $3 || '%' OR $3 = '')
		AND (
			cardinality($4::text[]) = 0 OR (
				SELECT count(DISTINCT lower(g.name))
				FROM books_genres bg
				INNER JOIN genres g ON g.id = bg.genre_id
				WHERE bg.book_id = b.id AND lower(g.name) = ANY($4::text[])
			) = cardinality($4::text[])
		)
		ORDER BY ub.created_at DESC, ub.id DESC`
	return r.queryUserBooks(ctx, query, data.StatusAvailable, escapeLike(title), escapeLike(author), pq.Array(dedupe(wanted)))
}

// UpdateUserBook updates the condition and location of an ownership record.
// The status is owned by the exchange transitions and is never written here.
func (r *repository) UpdateUserBook(ctx context.Context, userBook *data.UserBook) error {
	query := `
		UPDATE user_books
		SET condition = $1, location = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`
	args := []any{userBook.Condition, userBook.Location, userBook.ID, userBook.Version}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&userBook.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteUserBook deletes an ownership record. Its photos and exchange
// requests are removed by the foreign key cascade.
func (r *repository) DeleteUserBook(ctx context.Context, ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM user_books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// escapeLike escapes the ILIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
