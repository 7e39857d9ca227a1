// Package fetch retrieves externally stored template documents.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/batidesk/batidesk/internal/observability/tracing"
)

// Template bodies above this size are rejected.
const maxTemplateBytes = 1 << 20

var ErrInvalidURL = errors.New("invalid_template_url")

// Fetcher retrieves the raw text of a template document. A single
// attempt is made per call; callers treat any failure as "no template".
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a Fetcher over an instrumented HTTP client.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpFetcher{
		client: tracing.WrapHTTPClient(&http.Client{Timeout: timeout}),
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("template fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
