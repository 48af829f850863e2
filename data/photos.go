package data

import (
	"time"

	"github.com/emzola/bookswap/internal/validator"
)

// MaxPhotoSize is the largest photo accepted for upload.
const MaxPhotoSize = 5 << 20

// SupportedPhotoTypes lists the mime types accepted for upload.
var SupportedPhotoTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

// Photo defines an image attached to an ownership record. URL points at the
// asset host.
type Photo struct {
	ID         int64     `json:"photo_id"`
	UserBookID int64     `json:"user_book_id"`
	URL        string    `json:"url"`
	BlurHash   string    `json:"blurhash,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidatePhotoURL(v *validator.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	v.Check(validator.AbsoluteURL(url), "url", "must be an absolute http(s) URL")
}
