package service

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/repository"
	"github.com/google/uuid"
)

type photos interface {
	UploadPhoto(ctx context.Context, user *data.User, userBookID int64, file io.Reader) (*data.Photo, error)
	AttachPhoto(ctx context.Context, user *data.User, userBookID int64, requestBody dto.AttachPhotoRequestBody) (*data.Photo, error)
	ListPhotos(ctx context.Context, user *data.User, userBookID int64) ([]*data.Photo, error)
	UpdatePhoto(ctx context.Context, user *data.User, photoID int64, requestBody dto.UpdatePhotoRequestBody) (*data.Photo, error)
	DeletePhoto(ctx context.Context, user *data.User, photoID int64) (bool, error)
}

// UploadPhoto service stores an uploaded image on the asset host and attaches
// it to an ownership record.
func (s *service) UploadPhoto(ctx context.Context, user *data.User, userBookID int64, file io.Reader) (*data.Photo, error) {
	userBook, err := s.userBookForUpdate(ctx, user, userBookID)
	if err != nil {
		return nil, err
	}
	buffer, mtype, err := readPhoto(file)
	if err != nil {
		return nil, err
	}
	blurHash, err := computeBlurHash(buffer)
	if err != nil {
		return nil, fieldError("photo", "could not be decoded as an image")
	}
	if s.assets == nil {
		return nil, &UpstreamError{Op: "upload photo", Err: errors.New("asset host not configured")}
	}
	key := "photos/" + strconv.FormatInt(userBook.ID, 10) + "/" + uuid.NewString() + mtype.Extension()
	url, err := s.assets.Upload(ctx, key, buffer, mtype.String())
	if err != nil {
		return nil, upstreamError("upload photo", err)
	}
	photo := &data.Photo{
		UserBookID: userBook.ID,
		URL:        url,
		BlurHash:   blurHash,
	}
	err = s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		s.deleteAsset(ctx, url)
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return photo, nil
}

// AttachPhoto service attaches a photo already stored on the asset host to an
// ownership record.
func (s *service) AttachPhoto(ctx context.Context, user *data.User, userBookID int64, requestBody dto.AttachPhotoRequestBody) (*data.Photo, error) {
	v := validator.New()
	if s.validatePhotoURL(v, requestBody.URL); !v.Valid() {
		return nil, failedValidation(v)
	}
	userBook, err := s.userBookForUpdate(ctx, user, userBookID)
	if err != nil {
		return nil, err
	}
	photo := &data.Photo{
		UserBookID: userBook.ID,
		URL:        requestBody.URL,
	}
	err = s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return photo, nil
}

// ListPhotos service lists the photos of an ownership record visible to user.
func (s *service) ListPhotos(ctx context.Context, user *data.User, userBookID int64) ([]*data.Photo, error) {
	userBook, err := s.visibleUserBook(ctx, user, userBookID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAllPhotosForUserBook(ctx, userBook.ID)
}

// UpdatePhoto service replaces the URL of a photo. The previous file is
// removed from the asset host on a best-effort basis.
func (s *service) UpdatePhoto(ctx context.Context, user *data.User, photoID int64, requestBody dto.UpdatePhotoRequestBody) (*data.Photo, error) {
	photo, err := s.photoForUpdate(ctx, user, photoID)
	if err != nil {
		return nil, err
	}
	if requestBody.URL == nil || *requestBody.URL == photo.URL {
		return photo, nil
	}
	v := validator.New()
	if s.validatePhotoURL(v, *requestBody.URL); !v.Valid() {
		return nil, failedValidation(v)
	}
	previous := photo.URL
	photo.URL = *requestBody.URL
	photo.BlurHash = ""
	err = s.repo.UpdatePhoto(ctx, photo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	s.deleteAsset(ctx, previous)
	return photo, nil
}

// DeletePhoto service detaches a photo from its ownership record and then
// removes the file from the asset host. The boolean reports whether the file
// was removed; a failure there never undoes the detach.
func (s *service) DeletePhoto(ctx context.Context, user *data.User, photoID int64) (bool, error) {
	photo, err := s.photoForUpdate(ctx, user, photoID)
	if err != nil {
		return false, err
	}
	err = s.repo.DeletePhoto(ctx, photo.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return false, ErrRecordNotFound
		default:
			return false, err
		}
	}
	return s.deleteAsset(ctx, photo.URL), nil
}

func (s *service) photoForUpdate(ctx context.Context, user *data.User, photoID int64) (*data.Photo, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if _, err := s.userBookForUpdate(ctx, user, photo.UserBookID); err != nil {
		return nil, err
	}
	return photo, nil
}

// validatePhotoURL accepts absolute URLs served by the asset host.
func (s *service) validatePhotoURL(v *validator.Validator, url string) {
	data.ValidatePhotoURL(v, url)
	v.Check(s.assets != nil && s.assets.Owns(url), "url", "must reference the trusted asset host")
}
