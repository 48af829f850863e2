package data

import "github.com/emzola/bookswap/internal/validator"

// BookSuggestion defines a candidate book returned by the external catalog.
// ID is the catalog volume id to pass back when creating an ownership record.
type BookSuggestion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author"`
	Overview string `json:"overview"`
	Genres   string `json:"genres"`
}

func ValidateSuggestionQuery(v *validator.Validator, query string) {
	v.Check(query != "", "query", "must be provided")
	v.Check(len(query) <= 255, "query", "must not be more than 255 bytes long")
}
