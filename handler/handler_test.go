package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/emzola/bookswap/clients"
	"github.com/emzola/bookswap/config"
	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/emzola/bookswap/repository/repositorytest"
	"github.com/emzola/bookswap/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetBase = "https://assets.example.com/bookswap"

type stubCatalog struct {
	volumes map[string]dto.Volume
	err     error
}

func (c *stubCatalog) Search(context.Context, string) ([]dto.Volume, error) {
	if c.err != nil {
		return nil, c.err
	}
	volumes := make([]dto.Volume, 0, len(c.volumes))
	for _, v := range c.volumes {
		volumes = append(volumes, v)
	}
	return volumes, nil
}

func (c *stubCatalog) Volume(_ context.Context, id string) (*dto.Volume, error) {
	if c.err != nil {
		return nil, c.err
	}
	v, ok := c.volumes[id]
	if !ok {
		return nil, clients.ErrVolumeNotFound
	}
	return &v, nil
}

type stubAssets struct {
	mu      sync.Mutex
	objects map[string]bool
}

func (a *stubAssets) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	url := assetBase + "/" + key
	a.objects[url] = true
	return url, nil
}

func (a *stubAssets) Delete(_ context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.objects, url)
	return nil
}

func (a *stubAssets) Owns(url string) bool {
	return strings.HasPrefix(url, assetBase+"/")
}

type stubTokens map[string]int64

func (t stubTokens) Verify(token string) (int64, error) {
	id, ok := t[token]
	if !ok {
		return 0, errors.New("unknown token")
	}
	return id, nil
}

type testServer struct {
	repo    *repositorytest.Memory
	catalog *stubCatalog
	assets  *stubAssets
	tokens  stubTokens
	routes  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	var cfg config.Config
	cfg.Server.Env = "testing"
	cfg.BasicAuth.Username = "admin"
	cfg.BasicAuth.Password = "secret"
	cfg.Cors.TrustedOrigins = []string{"https://bookswap.example.com"}
	ts := &testServer{
		repo:    repositorytest.New(),
		catalog: &stubCatalog{volumes: map[string]dto.Volume{}},
		assets:  &stubAssets{objects: map[string]bool{}},
		tokens:  stubTokens{},
	}
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	svc := service.New(cfg, &sync.WaitGroup{}, logger, ts.repo, service.Clients{
		Catalog: ts.catalog,
		Assets:  ts.assets,
		Tokens:  ts.tokens,
	})
	ts.routes = New(cfg, logger, svc).Routes()
	return ts
}

// newUser stores a user and returns the bearer token that authenticates it.
func (ts *testServer) newUser(t *testing.T, username string) string {
	t.Helper()
	user := &data.User{Username: username, Email: username + "@example.com"}
	user.Password.Hash = []byte("not-a-real-hash")
	require.NoError(t, ts.repo.RegisterUser(context.Background(), user))
	token := username + "-token"
	ts.tokens[token] = user.ID
	return token
}

func (ts *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.routes.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func (ts *testServer) listBook(t *testing.T, token, name string) int64 {
	t.Helper()
	rr := ts.do(t, http.MethodPost, "/v1/books", token, map[string]any{
		"name":      name,
		"author":    "Frank Herbert",
		"overview":  "Desert planet.",
		"genres":    "Fiction / Science Fiction",
		"condition": "good",
		"location":  "55.75,37.61",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	userBook := decodeBody(t, rr)["user_book"].(map[string]any)
	return int64(userBook["user_book_id"].(float64))
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/v1/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, "testing", body["system_info"].(map[string]any)["environment"])
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", authorization: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authorization: "Token " + alice, wantStatus: http.StatusUnauthorized},
		{name: "valid token", authorization: "Bearer " + alice, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rr := httptest.NewRecorder()
			ts.routes.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouterFallbacks(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/nothing", "", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, ts.do(t, http.MethodPut, "/v1/healthcheck", "", nil).Code)
}

func TestEnableCORS(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/books", nil)
	req.Header.Set("Origin", "https://bookswap.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	ts.routes.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://bookswap.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestDebugVarsRequiresBasicAuth(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/debug/vars", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	ts.routes.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRegisterUserHandler(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"username": "alice", "email": "alice@example.com", "password": "pa55word!"}

	rr := ts.do(t, http.MethodPost, "/v1/users", "", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	user := decodeBody(t, rr)["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, rr.Body.String(), "pa55word!")

	body["email"] = "ALICE@example.com"
	rr = ts.do(t, http.MethodPost, "/v1/users", "", body)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.do(t, http.MethodPost, "/v1/users", "", map[string]any{"username": "", "email": "bad", "password": "pa55word!"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	fields := decodeBody(t, rr)["error"].(map[string]any)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")

	rr = ts.do(t, http.MethodPost, "/v1/users", "", map[string]any{"username": "bob", "email": "bob@example.com", "password": "x"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "password")

	rr = ts.do(t, http.MethodPost, "/v1/users", "", `{"username": "bob", "unknown": 1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown key")
}

func TestUserBookHandlers(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	id := ts.listBook(t, alice, "Dune")

	rr := ts.do(t, http.MethodGet, fmt.Sprintf("/v1/books/%d", id), bob, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	book := decodeBody(t, rr)["user_book"].(map[string]any)["book"].(map[string]any)
	assert.Equal(t, "Dune", book["name"])

	rr = ts.do(t, http.MethodGet, "/v1/books?query=dun&genres=fiction", bob, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["user_books"], 1)

	rr = ts.do(t, http.MethodPut, fmt.Sprintf("/v1/books/%d", id), bob, map[string]any{"condition": "new"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPut, fmt.Sprintf("/v1/books/%d", id), alice, map[string]any{"location": "north pole"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, data.LocationFormatMessage, decodeBody(t, rr)["error"].(map[string]any)["location"])

	rr = ts.do(t, http.MethodGet, "/v1/books/abc", alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(t, http.MethodGet, "/v1/users/books?user_id=-1", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodGet, "/v1/genres", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, decodeBody(t, rr)["genres"])

	rr = ts.do(t, http.MethodDelete, fmt.Sprintf("/v1/books/%d", id), alice, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = ts.do(t, http.MethodGet, fmt.Sprintf("/v1/books/%d", id), alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateUserBookFromCatalogUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")
	ts.catalog.err = &clients.StatusError{StatusCode: http.StatusServiceUnavailable}

	rr := ts.do(t, http.MethodPost, "/v1/books", alice, map[string]any{
		"volume_id": "abc", "condition": "good", "location": "55.75,37.61",
	})
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "503")

	rr = ts.do(t, http.MethodGet, "/v1/suggestions?query=dune", alice, nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestExchangeRequestHandlers(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	id := ts.listBook(t, alice, "Dune")

	rr := ts.do(t, http.MethodPost, "/v1/exchange-requests", alice, map[string]any{"user_book_id": id})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPost, "/v1/exchange-requests", bob, map[string]any{"user_book_id": id})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	request := decodeBody(t, rr)["exchange_request"].(map[string]any)
	requestID := int64(request["exchange_request_id"].(float64))
	assert.Equal(t, data.ExchangePending, request["status"])
	assert.Equal(t, fmt.Sprintf("/v1/exchange-requests/%d", requestID), rr.Header().Get("Location"))

	rr = ts.do(t, http.MethodPost, "/v1/exchange-requests", bob, map[string]any{"user_book_id": id})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	target := fmt.Sprintf("/v1/exchange-requests/%d", requestID)
	rr = ts.do(t, http.MethodPatch, target, bob, map[string]any{"action": "accept"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.do(t, http.MethodPatch, target, alice, map[string]any{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPatch, target, alice, map[string]any{"action": "accept"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, data.ExchangeAccepted, decodeBody(t, rr)["exchange_request"].(map[string]any)["status"])

	rr = ts.do(t, http.MethodPatch, target, alice, map[string]any{"action": "reject"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodGet, target, bob, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodGet, "/v1/exchange-requests", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["exchange_requests"], 1)

	rr = ts.do(t, http.MethodGet, "/v1/exchange-requests/999", bob, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecoverPanic(t *testing.T) {
	h := New(config.Config{}, jsonlog.New(io.Discard, jsonlog.LevelOff), nil)
	panicking := h.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	panicking.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}
