// Package bibleapi is the client for the verse text store: given a
// resolved verse range it returns the literal verse text. The service
// only ever hands it well-formed ranges.
package bibleapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tzlin/deckgen/internal/bible"
)

// Client communicates with the verse text store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Verse is one verse of scripture text.
type Verse struct {
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Verses fetches the text of every verse in the range, in reading
// order. Transient upstream failures come back as *RetryableError.
func (c *Client) Verses(ctx context.Context, rng bible.VerseRange) ([]Verse, error) {
	q := url.Values{}
	q.Set("book", rng.Book)
	q.Set("start_chapter", strconv.Itoa(rng.StartChapter))
	q.Set("start_verse", strconv.Itoa(rng.StartVerse))
	q.Set("end_chapter", strconv.Itoa(rng.EndChapter))
	q.Set("end_verse", strconv.Itoa(rng.EndVerse))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verses?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get verses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get verses %s: status %d: %s", rng.Label(), resp.StatusCode, string(respBody))
	}

	var result struct {
		Verses []Verse `json:"verses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode verses: %w", err)
	}
	if len(result.Verses) == 0 {
		return nil, fmt.Errorf("no verse text for %s", rng.Label())
	}
	return result.Verses, nil
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
