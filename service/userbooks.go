package service

import (
	"context"
	"errors"
	"strings"

	"github.com/emzola/bookswap/clients"
	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/genre"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/repository"
)

type userBooks interface {
	CreateUserBook(ctx context.Context, user *data.User, requestBody dto.CreateUserBookRequestBody) (*data.UserBook, error)
	GetUserBook(ctx context.Context, user *data.User, userBookID int64) (*data.UserBook, error)
	ListUserBooks(ctx context.Context, user *data.User, qs dto.QsListUserBooks) ([]*data.UserBook, error)
	SearchUserBooks(ctx context.Context, qs dto.QsSearchUserBooks) ([]*data.UserBook, error)
	UpdateUserBook(ctx context.Context, user *data.User, userBookID int64, requestBody dto.UpdateUserBookRequestBody) (*data.UserBook, error)
	DeleteUserBook(ctx context.Context, user *data.User, userBookID int64) error
}

// CreateUserBook service records that user owns a copy of a book. The book is
// taken from the external catalog when a volume id is given and from the
// request body otherwise. A new record is always available.
func (s *service) CreateUserBook(ctx context.Context, user *data.User, requestBody dto.CreateUserBookRequestBody) (*data.UserBook, error) {
	v := validator.New()
	var book *data.Book
	if requestBody.VolumeID != "" {
		volume, err := s.catalog.Volume(ctx, requestBody.VolumeID)
		switch {
		case errors.Is(err, clients.ErrVolumeNotFound):
			v.AddError("volume_id", "invalid volume id")
			book = &data.Book{}
		case err != nil:
			return nil, upstreamError("get catalog volume", err)
		default:
			book = bookFromVolume(*volume)
			v.Check(book.Name != "", "volume_id", "catalog volume has no title")
		}
	} else {
		book = &data.Book{
			Name:     strings.TrimSpace(requestBody.Name),
			Author:   strings.TrimSpace(requestBody.Author),
			Overview: requestBody.Overview,
			Genres:   genre.Normalize(requestBody.Genres),
		}
		data.ValidateBook(v, book)
		data.ValidateGenres(v, book.Genres)
	}
	userBook := &data.UserBook{
		UserID:    user.ID,
		Book:      book,
		Condition: requestBody.Condition,
		Location:  requestBody.Location,
		Status:    data.StatusAvailable,
	}
	if data.ValidateUserBook(v, userBook); !v.Valid() {
		return nil, failedValidation(v)
	}
	// An existing book keeps the genres it was created with.
	err := s.repo.CreateUserBook(ctx, userBook)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.GetUserBook(ctx, user, userBook.ID)
}

// GetUserBook service retrieves an ownership record with its book. Records
// that are not available are only shown to their owner and superusers.
func (s *service) GetUserBook(ctx context.Context, user *data.User, userBookID int64) (*data.UserBook, error) {
	return s.visibleUserBook(ctx, user, userBookID)
}

// ListUserBooks service lists the ownership records of a user, the
// requesting user by default. Other users only see available records.
func (s *service) ListUserBooks(ctx context.Context, user *data.User, qs dto.QsListUserBooks) ([]*data.UserBook, error) {
	userID := qs.UserID
	if userID == 0 {
		userID = user.ID
	}
	status := ""
	if !user.CanModify(userID) {
		status = data.StatusAvailable
	}
	return s.repo.GetAllUserBooksForUser(ctx, userID, status)
}

// SearchUserBooks service searches available ownership records by title,
// author and genres.
func (s *service) SearchUserBooks(ctx context.Context, qs dto.QsSearchUserBooks) ([]*data.UserBook, error) {
	v := validator.New()
	v.Check(len(qs.Query) <= 255, "query", "must not be more than 255 bytes long")
	v.Check(len(qs.Author) <= 255, "author", "must not be more than 255 bytes long")
	if !v.Valid() {
		return nil, failedValidation(v)
	}
	return s.repo.SearchUserBooks(ctx, strings.TrimSpace(qs.Query), strings.TrimSpace(qs.Author), genre.Normalize(qs.Genres))
}

// UpdateUserBook service updates the condition and location of an ownership
// record.
func (s *service) UpdateUserBook(ctx context.Context, user *data.User, userBookID int64, requestBody dto.UpdateUserBookRequestBody) (*data.UserBook, error) {
	userBook, err := s.userBookForUpdate(ctx, user, userBookID)
	if err != nil {
		return nil, err
	}
	if requestBody.Condition != nil {
		userBook.Condition = *requestBody.Condition
	}
	if requestBody.Location != nil {
		userBook.Location = *requestBody.Location
	}
	v := validator.New()
	if data.ValidateUserBook(v, userBook); !v.Valid() {
		return nil, failedValidation(v)
	}
	err = s.repo.UpdateUserBook(ctx, userBook)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return userBook, nil
}

// DeleteUserBook service deletes an ownership record with its photos and
// exchange requests. Photo files are removed from the asset host afterwards.
func (s *service) DeleteUserBook(ctx context.Context, user *data.User, userBookID int64) error {
	if _, err := s.userBookForUpdate(ctx, user, userBookID); err != nil {
		return err
	}
	photos, err := s.repo.GetAllPhotosForUserBook(ctx, userBookID)
	if err != nil {
		return err
	}
	err = s.repo.DeleteUserBook(ctx, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	for _, photo := range photos {
		s.deleteAsset(ctx, photo.URL)
	}
	return nil
}
