package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/bookswap/data"
)

type photos interface {
	CreatePhoto(ctx context.Context, photo *data.Photo) error
	GetPhoto(ctx context.Context, ID int64) (*data.Photo, error)
	GetAllPhotosForUserBook(ctx context.Context, userBookID int64) ([]*data.Photo, error)
	UpdatePhoto(ctx context.Context, photo *data.Photo) error
	DeletePhoto(ctx context.Context, ID int64) error
}

// CreatePhoto creates a photo record for an ownership record.
func (r *repository) CreatePhoto(ctx context.Context, photo *data.Photo) error {
	query := `
		INSERT INTO photos (user_book_id, url, blurhash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, photo.UserBookID, photo.URL, photo.BlurHash).Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// GetPhoto retrieves a photo record by its ID.
func (r *repository) GetPhoto(ctx context.Context, ID int64) (*data.Photo, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, user_book_id, url, blurhash, created_at
		FROM photos
		WHERE id = $1`
	var photo data.Photo
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&photo.ID,
		&photo.UserBookID,
		&photo.URL,
		&photo.BlurHash,
		&photo.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &photo, nil
}

// GetAllPhotosForUserBook retrieves the photos of an ownership record in upload order.
func (r *repository) GetAllPhotosForUserBook(ctx context.Context, userBookID int64) ([]*data.Photo, error) {
	query := `
		SELECT id, user_book_id, url, blurhash, created_at
		FROM photos
		WHERE user_book_id = $1
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, userBookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	photos := []*data.Photo{}
	for rows.Next() {
		var photo data.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.UserBookID,
			&photo.URL,
			&photo.BlurHash,
			&photo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, &photo)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// UpdatePhoto replaces the URL and blurhash of a photo record.
func (r *repository) UpdatePhoto(ctx context.Context, photo *data.Photo) error {
	query := `
		UPDATE photos
		SET url = $1, blurhash = $2
		WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, photo.URL, photo.BlurHash, photo.ID)
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

// DeletePhoto deletes a photo record.
func (r *repository) DeletePhoto(ctx context.Context, ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM photos
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
