package service

import (
	"context"
	"sync"
	"time"

	"github.com/emzola/bookswap/config"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/cache"
	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/emzola/bookswap/repository"
)

type Service interface {
	books
	genres
	userBooks
	photos
	exchanges
	users
}

// Catalog looks up books in the external catalog.
type Catalog interface {
	Search(ctx context.Context, query string) ([]dto.Volume, error)
	Volume(ctx context.Context, id string) (*dto.Volume, error)
}

// AssetHost stores photo files and serves them under public URLs.
type AssetHost interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}

// Mailer sends a templated email.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Clients groups the external collaborators of the service layer. Cache
// defaults to a no-op cache and a nil Mailer disables notifications.
type Clients struct {
	Catalog Catalog
	Assets  AssetHost
	Cache   cache.Cache
	Mailer  Mailer
	Tokens  TokenVerifier
}

// service implements Service.
type service struct {
	config        config.Config
	wg            *sync.WaitGroup
	logger        *jsonlog.Logger
	repo          repository.Repository
	catalog       Catalog
	assets        AssetHost
	cache         cache.Cache
	mailer        Mailer
	tokens        TokenVerifier
	suggestionTTL time.Duration
}

// New creates a new instance of Service. Background work is tracked on wg so
// the caller can wait for it during shutdown.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, clients Clients) *service {
	c := clients.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &service{
		config:        cfg,
		wg:            wg,
		logger:        logger,
		repo:          repo,
		catalog:       clients.Catalog,
		assets:        clients.Assets,
		cache:         c,
		mailer:        clients.Mailer,
		tokens:        clients.Tokens,
		suggestionTTL: config.Duration(cfg.Cache.SuggestionTTL, time.Hour),
	}
}
