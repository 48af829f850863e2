package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emzola/bookswap/config"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/jsonlog"
	"golang.org/x/time/rate"
)

// ErrVolumeNotFound is returned when the catalog has no volume with the requested id.
var ErrVolumeNotFound = errors.New("catalog volume not found")

// StatusError reports a non-2xx catalog response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog responded with status %d: %s", e.StatusCode, e.Body)
}

// Catalog is a rate-limited client for a Google Books compatible volumes API.
type Catalog struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	logger  *jsonlog.Logger
}

// NewCatalog creates a catalog client from the catalog configuration.
func NewCatalog(cfg config.Config, logger *jsonlog.Logger) *Catalog {
	burst := cfg.Catalog.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.Catalog.RPS > 0 {
		limit = rate.Limit(cfg.Catalog.RPS)
	}
	return &Catalog{
		http:    NewHTTPClient(config.Duration(cfg.Catalog.Timeout, 10*time.Second)),
		baseURL: strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		apiKey:  cfg.Catalog.APIKey,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Search returns the volumes matching query in the catalog's relevance order.
func (c *Catalog) Search(ctx context.Context, query string) ([]dto.Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	body, err := c.get(ctx, "/volumes", params)
	if err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	var resp dto.VolumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("search volumes: parse response: %w", err)
	}
	return resp.Items, nil
}

// Volume fetches a single volume by id. An unknown id yields ErrVolumeNotFound.
func (c *Catalog) Volume(ctx context.Context, id string) (*dto.Volume, error) {
	body, err := c.get(ctx, "/volumes/"+url.PathEscape(id), url.Values{})
	if err != nil {
		return nil, fmt.Errorf("get volume %s: %w", id, err)
	}
	var volume dto.Volume
	if err := json.Unmarshal(body, &volume); err != nil {
		return nil, fmt.Errorf("get volume %s: parse response: %w", id, err)
	}
	return &volume, nil
}

func (c *Catalog) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.logger.PrintDebug("catalog request", map[string]string{"path": path})
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrVolumeNotFound
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
