package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"github.com/abelzeko/popo-bot/internal/apperr"
)

// Fetcher downloads a page body.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is a Fetcher over net/http. It does not retry.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher whose requests give up after timeout.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get returns the body of url decoded to UTF-8. Transport failures and
// non-2xx answers are Network errors.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperr.Network(err, "build request")
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	log.Debug().Str("url", url).Msg("Sending HTTP request")
	res, err := f.client.Do(req)
	if err != nil {
		return "", apperr.Network(err, "")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warn().Str("url", url).Int("status", res.StatusCode).Msg("Received unexpected status code")
		return "", apperr.Network(nil, fmt.Sprintf("unexpected status code: %s", res.Status))
	}

	body, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
	if err != nil {
		return "", apperr.Network(err, "decode body")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", apperr.Network(err, "read body")
	}
	log.Debug().Str("url", url).Int("status", res.StatusCode).Int("bytes", len(b)).Msg("Received HTTP response")
	return string(b), nil
}
