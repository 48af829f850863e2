package clients

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// userAgent identifies outbound requests to third-party APIs.
const userAgent = "bookswap/1.0 (+https://github.com/emzola/bookswap)"

// maxRedirects is the number of redirects a catalog request may follow.
const maxRedirects = 2

// NewHTTPClient returns a client for third-party JSON APIs. timeout bounds a
// whole request including reading the body.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: transport},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects at %s", maxRedirects, req.URL.Host)
			}
			return nil
		},
	}
}

type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
	}
	return t.next.RoundTrip(req)
}
