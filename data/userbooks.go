package data

import (
	"time"

	"github.com/emzola/bookswap/internal/validator"
)

// Ownership record statuses.
const (
	StatusAvailable = "available"
	StatusRequested = "requested"
	StatusExchanged = "exchanged"
)

// LocationFormatMessage is reported for a malformed location.
const LocationFormatMessage = "must be 'lat,lon' (e.g., '55.7558,37.6173')"

// UserBook defines a user's physical copy of a catalog book.
type UserBook struct {
	ID        int64     `json:"user_book_id"`
	UserID    int64     `json:"user_id"`
	Book      *Book     `json:"book"`
	Condition string    `json:"condition"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Version   int32     `json:"-"`
}

func ValidateCondition(v *validator.Validator, condition string) {
	v.Check(condition != "", "condition", "must be provided")
	v.Check(len(condition) <= 255, "condition", "must not be more than 255 bytes long")
}

func ValidateLocation(v *validator.Validator, location string) {
	v.Check(location != "", "location", "must be provided")
	v.Check(validator.Coordinates(location), "location", LocationFormatMessage)
}

func ValidateUserBook(v *validator.Validator, userBook *UserBook) {
	ValidateCondition(v, userBook.Condition)
	ValidateLocation(v, userBook.Location)
	v.Check(validator.PermittedValue(userBook.Status, StatusAvailable, StatusRequested, StatusExchanged), "status", "is not a known status")
}
