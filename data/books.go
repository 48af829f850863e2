package data

import (
	"github.com/emzola/bookswap/internal/validator"
)

// Book defines a catalog book shared by every user who owns a copy of it.
// Name is unique across the catalog.
type Book struct {
	ID       int64    `json:"book_id"`
	Name     string   `json:"name"`
	Author   string   `json:"author"`
	Overview string   `json:"overview"`
	Genres   []string `json:"genres"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Name != "", "name", "must be provided")
	v.Check(len(book.Name) <= 255, "name", "must not be more than 255 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 255, "author", "must not be more than 255 bytes long")
	v.Check(book.Overview != "", "overview", "must be provided")
}

// ValidateGenres checks genres typed by a user.
func ValidateGenres(v *validator.Validator, genres []string) {
	v.Check(len(genres) > 0, "genres", "must contain at least one genre")
	for _, g := range genres {
		v.Check(len(g) <= 255, "genres", "must not contain genres longer than 255 bytes")
	}
}
