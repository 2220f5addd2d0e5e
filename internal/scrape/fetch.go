// Package scrape imports hymn lyrics from hymn websites into the
// corpus. It owns the polite-fetch plumbing and the HTML lyric
// extraction; it never touches the corpus files itself.
package scrape

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// defaultHeaders make requests look like a desktop browser; several
// hymn sites refuse bare Go user agents.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "zh-TW,zh;q=0.9,en;q=0.8",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

var retryableStatuses = map[int]bool{
	http.StatusForbidden:           true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Fetcher downloads hymn pages with bounded retries and exponential
// backoff with jitter.
type Fetcher struct {
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
}

func NewFetcher(maxRetries int, backoffBase time.Duration) *Fetcher {
	if maxRetries < 0 {
		maxRetries = 3
	}
	if backoffBase <= 0 {
		backoffBase = 500 * time.Millisecond
	}
	return &Fetcher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Fetch gets a URL, retrying retryable statuses and transport errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(f.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", rawURL, f.maxRetries+1, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, retryableStatuses[resp.StatusCode],
			fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return body, false, nil
}

func (f *Fetcher) backoff(attempt int) time.Duration {
	base := f.backoffBase * time.Duration(1<<uint(attempt))
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))
	return base + jitter
}
