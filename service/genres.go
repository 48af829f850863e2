package service

import (
	"context"

	"github.com/emzola/bookswap/data"
)

type genres interface {
	ListGenres(ctx context.Context) ([]*data.Genre, error)
}

// ListGenres service retrieves every genre with its number of books.
func (s *service) ListGenres(ctx context.Context) ([]*data.Genre, error) {
	return s.repo.GetAllGenres(ctx)
}
