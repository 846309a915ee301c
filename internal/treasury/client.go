package treasury

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bj-liang/data-ust/internal/domain"
	"github.com/bj-liang/data-ust/internal/util"
)

// retryBaseDelay is the initial backoff between transport-level retries.
// Variable so tests can shorten it.
var retryBaseDelay = 2 * time.Second

// Client fetches year documents from the Treasury XML feed.
type Client struct {
	baseURL    string // URL template, %d substituted with the year
	attempts   int    // transport-error retry budget
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given URL template. Requests carry an
// explicit timeout; the upstream has none of its own.
func NewClient(baseURL string, timeout time.Duration, attempts int) *Client {
	return &Client{
		baseURL:    baseURL,
		attempts:   attempts,
		httpClient: &http.Client{Timeout: timeout},
		log:        slog.Default().With("component", "treasury-client"),
	}
}

// URL returns the feed URL for a year.
func (c *Client) URL(year int) string {
	return fmt.Sprintf(c.baseURL, year)
}

// Fetch performs a single GET for a year's document and returns the
// response body as text. Transport failures and non-2xx statuses are
// returned as plain errors; the body is not inspected.
func (c *Client) Fetch(ctx context.Context, year int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(year), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching year %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching year %d: status %d", year, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body for year %d: %w", year, err)
	}
	return string(body), nil
}

// FetchSafe fetches a year's document, retrying transport-level failures
// with backoff. A body carrying the upstream error marker fails with
// domain.ErrFetch immediately and is never retried within the run; callers
// must re-invoke later.
func (c *Client) FetchSafe(ctx context.Context, year int) (string, error) {
	var content string
	err := util.Retry(ctx, c.attempts, retryBaseDelay, func() error {
		body, err := c.Fetch(ctx, year)
		if err != nil {
			c.log.Warn("fetch attempt failed", "year", year, "error", err)
			return err
		}
		if isErrorBody(body) {
			return fmt.Errorf("%w: year %d: %w", util.ErrPermanent, year, domain.ErrFetch)
		}
		content = body
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// isErrorBody detects the upstream's error pages, which come back with a
// 200 status and an HTML/text body containing the literal token "Error"
// (transient throttling, or a year the feed does not carry). A fragile
// heuristic inherited from the feed's observed behavior; kept isolated
// here so it can be revisited on its own.
func isErrorBody(body string) bool {
	return strings.Contains(body, "Error")
}
