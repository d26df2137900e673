package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrFetchFailed is returned when a remote payload cannot be retrieved.
var ErrFetchFailed = errors.New("failed to fetch track")

const (
	userAgent       = "lofi-player/1.0 (https://github.com/llehouerou/lofi)"
	maxPayloadBytes = 256 << 20
)

// Fetcher retrieves base64 encoded audio published as plain text.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a fetcher. A zero timeout leaves the client default.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewFetcherWithClient creates a fetcher around an existing client.
func NewFetcherWithClient(c *http.Client) *Fetcher {
	return &Fetcher{httpClient: c}
}

// Fetch downloads the body at rawURL and returns it trimmed of surrounding
// whitespace. Any non-200 response is reported as ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http request: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status: %s", ErrFetchFailed, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}

	return strings.TrimSpace(string(body)), nil
}
