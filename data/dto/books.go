package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

// GenreList holds user supplied genres, accepted either as a JSON list of
// strings or as a single comma-separated string. List entries are kept whole,
// so a genre may itself contain a comma.
type GenreList []string

// UnmarshalJSON implements json.Unmarshaler.
func (g *GenreList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*g = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("genres must be a list of strings or a comma-separated string")
	}
	genres := GenreList{}
	for _, entry := range strings.Split(s, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			genres = append(genres, entry)
		}
	}
	*g = genres
	return nil
}

// CreateUserBookRequestBody defines the request body for CreateUserBook service.
// Either VolumeID or the direct book fields are provided.
type CreateUserBookRequestBody struct {
	VolumeID  string    `json:"volume_id"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	Overview  string    `json:"overview"`
	Genres    GenreList `json:"genres"`
	Condition string    `json:"condition"`
	Location  string    `json:"location"`
}

// UpdateUserBookRequestBody defines the request body for UpdateUserBook service. The fields are
// pointers to allow partial updates.
type UpdateUserBookRequestBody struct {
	Condition *string `json:"condition"`
	Location  *string `json:"location"`
}

// QsSearchUserBooks defines the query strings used for searching available books.
type QsSearchUserBooks struct {
	Query  string
	Author string
	Genres []string
}

// QsListUserBooks defines query strings for ListUserBooks service. A zero
// UserID lists the requesting user's own records.
type QsListUserBooks struct {
	UserID int64
}
