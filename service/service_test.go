package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emzola/bookswap/clients"
	"github.com/emzola/bookswap/config"
	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/cache"
	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/emzola/bookswap/repository/repositorytest"
	"github.com/stretchr/testify/require"
)

const assetBase = "https://assets.example.com/bookswap"

type fakeCatalog struct {
	mu      sync.Mutex
	volumes map[string]dto.Volume
	results []dto.Volume
	err     error
	calls   int
}

func (c *fakeCatalog) Search(_ context.Context, _ string) ([]dto.Volume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

func (c *fakeCatalog) Volume(_ context.Context, id string) (*dto.Volume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	volume, ok := c.volumes[id]
	if !ok {
		return nil, fmt.Errorf("get volume %s: %w", id, clients.ErrVolumeNotFound)
	}
	return &volume, nil
}

type fakeAssets struct {
	mu        sync.Mutex
	objects   map[string]string
	deleteErr error
}

func (a *fakeAssets) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	url := assetBase + "/" + key
	a.objects[url] = contentType
	return url, nil
}

func (a *fakeAssets) Delete(_ context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.deleteErr != nil {
		return a.deleteErr
	}
	delete(a.objects, url)
	return nil
}

func (a *fakeAssets) Owns(url string) bool {
	return strings.HasPrefix(url, assetBase+"/")
}

type sentMail struct {
	recipient string
	template  string
	data      map[string]any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{recipient: recipient, template: templateFile, data: data.(map[string]any)})
	return nil
}

type fakeTokens map[string]int64

func (t fakeTokens) Verify(token string) (int64, error) {
	userID, ok := t[token]
	if !ok {
		return 0, errors.New("unknown token")
	}
	return userID, nil
}

type testService struct {
	*service
	repo    *repositorytest.Memory
	catalog *fakeCatalog
	assets  *fakeAssets
	mailer  *fakeMailer
	wg      *sync.WaitGroup
}

func newTestService(t *testing.T) *testService {
	t.Helper()
	ts := &testService{
		repo:    repositorytest.New(),
		catalog: &fakeCatalog{volumes: map[string]dto.Volume{}},
		assets:  &fakeAssets{objects: map[string]string{}},
		mailer:  &fakeMailer{},
		wg:      &sync.WaitGroup{},
	}
	suggestions := cache.NewMemory(time.Hour)
	t.Cleanup(func() { suggestions.Close() })
	ts.service = New(config.Config{}, ts.wg, jsonlog.New(io.Discard, jsonlog.LevelError), ts.repo, Clients{
		Catalog: ts.catalog,
		Assets:  ts.assets,
		Cache:   suggestions,
		Mailer:  ts.mailer,
		Tokens:  fakeTokens{"alice-token": 1},
	})
	return ts
}

func (ts *testService) newUser(t *testing.T, username string, superuser bool) *data.User {
	t.Helper()
	user := &data.User{
		Username:    username,
		Email:       username + "@example.com",
		IsSuperuser: superuser,
	}
	user.Password.Hash = []byte("not-a-real-hash")
	require.NoError(t, ts.repo.RegisterUser(context.Background(), user))
	return user
}

func (ts *testService) listBook(t *testing.T, owner *data.User, name string) *data.UserBook {
	t.Helper()
	userBook, err := ts.CreateUserBook(context.Background(), owner, dto.CreateUserBookRequestBody{
		Name:      name,
		Author:    "Frank Herbert",
		Overview:  "Desert planet.",
		Genres:    dto.GenreList{"Fiction / Science Fiction"},
		Condition: "good",
		Location:  "55.75,37.61",
	})
	require.NoError(t, err)
	return userBook
}

func validationErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.ErrorIs(t, err, ErrFailedValidation)
	return validationErr.Errors
}
