package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/source"
)

const (
	userAgent       = "NewsCurator/1.0"
	maxDocumentSize = 8 << 20
	fetchRetries    = 3
)

// HTTPLoader fetches a feed document over HTTP with bounded retries.
type HTTPLoader struct {
	client *http.Client
}

var _ source.Loader = (*HTTPLoader)(nil)

// NewHTTPLoader wires an HTTP client; a nil client gets a default with
// a 20s timeout.
func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTTPLoader{client: client}
}

// Kind identifies the strategy inside the registry.
func (l *HTTPLoader) Kind() string {
	return "http"
}

// Load fetches and decodes one feed document. Transient transport and
// 5xx failures are retried with fibonacci backoff before giving up.
func (l *HTTPLoader) Load(ctx context.Context, ref source.Ref) (*domain.FeedDocument, error) {
	if ref.URL == "" {
		return nil, fmt.Errorf("feed %s has no url", ref.Name)
	}

	var doc domain.FeedDocument
	backoff := retry.WithMaxRetries(fetchRetries, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, fetchErr := l.fetch(ctx, ref.URL)
		if fetchErr != nil {
			return fetchErr
		}
		if decodeErr := json.Unmarshal(body, &doc); decodeErr != nil {
			return fmt.Errorf("decode feed %s: %w", ref.Name, decodeErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load feed %s: %w", ref.Name, err)
	}
	return &doc, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("request document: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, retry.RetryableError(fmt.Errorf("feed returned %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("read document: %w", err))
	}
	return body, nil
}
