package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/bbrks/go-blurhash"
	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/repository"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// blurHashSize bounds the longer side of the thumbnail the blurhash is
// computed from.
const blurHashSize = 64

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}

// readPhoto reads an uploaded photo and detects its content type. Files over
// data.MaxPhotoSize and types outside data.SupportedPhotoTypes fail
// validation.
func readPhoto(file io.Reader) ([]byte, *mimetype.MIME, error) {
	buffer, err := io.ReadAll(io.LimitReader(file, data.MaxPhotoSize+1))
	if err != nil {
		return nil, nil, err
	}
	v := validator.New()
	v.Check(len(buffer) > 0, "photo", "must be provided")
	v.Check(len(buffer) <= data.MaxPhotoSize, "photo", "must not be larger than 5MB")
	if !v.Valid() {
		return nil, nil, failedValidation(v)
	}
	mtype := mimetype.Detect(buffer)
	if !validator.Mime(mtype, data.SupportedPhotoTypes...) {
		return nil, nil, fieldError("photo", "must be a JPEG, PNG or WebP image")
	}
	return buffer, mtype, nil
}

// computeBlurHash decodes an image and encodes a 4x3 component blurhash of a
// small thumbnail of it.
func computeBlurHash(buffer []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

func thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= blurHashSize && height <= blurHashSize {
		return img
	}
	if width > height {
		width, height = blurHashSize, max(1, height*blurHashSize/width)
	} else {
		width, height = max(1, width*blurHashSize/height), blurHashSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// deleteAsset removes a stored photo file. Failures are logged and reported
// but never returned, so a local detach is never blocked by the asset host.
func (s *service) deleteAsset(ctx context.Context, url string) bool {
	if s.assets == nil || !s.assets.Owns(url) {
		return false
	}
	if err := s.assets.Delete(ctx, url); err != nil {
		s.logger.PrintError(err, map[string]string{"asset_url": url})
		return false
	}
	return true
}

// userBookForUpdate retrieves an ownership record the user may modify.
func (s *service) userBookForUpdate(ctx context.Context, user *data.User, userBookID int64) (*data.UserBook, error) {
	userBook, err := s.repo.GetUserBook(ctx, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if !user.CanModify(userBook.UserID) {
		return nil, ErrNotPermitted
	}
	return userBook, nil
}

// visibleUserBook retrieves an ownership record the user may read. Records
// the user may not read are reported as not found.
func (s *service) visibleUserBook(ctx context.Context, user *data.User, userBookID int64) (*data.UserBook, error) {
	userBook, err := s.repo.GetUserBook(ctx, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if userBook.Status != data.StatusAvailable && !user.CanModify(userBook.UserID) {
		return nil, ErrRecordNotFound
	}
	return userBook, nil
}
