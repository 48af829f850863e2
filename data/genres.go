package data

// Genre defines a genre together with the number of catalog books filed under it.
type Genre struct {
	ID         int64  `json:"id"`
	Name       string `json:"genre"`
	BooksCount int64  `json:"books_count"`
}
