package service

import (
	"context"
	"strings"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/genre"
	"github.com/emzola/bookswap/internal/validator"
)

// unknownAuthor stands in for a catalog volume without authors.
const unknownAuthor = "Unknown"

type books interface {
	SuggestBooks(ctx context.Context, query string) ([]*data.BookSuggestion, error)
}

// SuggestBooks service searches the external catalog for books matching
// query. Results are cached per query; the cache is advisory and its failures
// only get logged.
func (s *service) SuggestBooks(ctx context.Context, query string) ([]*data.BookSuggestion, error) {
	v := validator.New()
	if data.ValidateSuggestionQuery(v, query); !v.Valid() {
		return nil, failedValidation(v)
	}
	key := "suggestion_" + query
	var suggestions []*data.BookSuggestion
	found, err := s.cache.Get(ctx, key, &suggestions)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"cache_key": key})
	}
	if found {
		return suggestions, nil
	}
	volumes, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, upstreamError("search catalog", err)
	}
	suggestions = make([]*data.BookSuggestion, 0, len(volumes))
	for _, volume := range volumes {
		suggestions = append(suggestions, suggestionFromVolume(volume))
	}
	err = s.cache.Set(ctx, key, suggestions, s.suggestionTTL)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"cache_key": key})
	}
	return suggestions, nil
}

func suggestionFromVolume(volume dto.Volume) *data.BookSuggestion {
	book := bookFromVolume(volume)
	return &data.BookSuggestion{
		ID:       volume.ID,
		Name:     book.Name,
		Author:   book.Author,
		Overview: book.Overview,
		Genres:   genre.Join(book.Genres),
	}
}

// bookFromVolume maps a catalog volume onto a book. Missing authors read as
// Unknown; categories are normalized into genres.
func bookFromVolume(volume dto.Volume) *data.Book {
	author := unknownAuthor
	if len(volume.VolumeInfo.Authors) > 0 {
		author = strings.Join(volume.VolumeInfo.Authors, ", ")
	}
	return &data.Book{
		Name:     strings.TrimSpace(volume.VolumeInfo.Title),
		Author:   author,
		Overview: volume.VolumeInfo.Description,
		Genres:   genre.Normalize(volume.VolumeInfo.Categories),
	}
}
