package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsCurator/internal/ports"
)

const maxReaderResponse = 1 << 20

// ReaderClient fetches article text through a remote reader endpoint
// (e.g. r.jina.ai), the fallback when local extraction yields nothing.
type ReaderClient struct {
	endpoint   string
	httpClient *http.Client
}

var _ ports.ArticleFetcher = (*ReaderClient)(nil)

// NewReaderClient builds a client for the given endpoint.
func NewReaderClient(endpoint string) *ReaderClient {
	return &ReaderClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// FetchText retrieves the reader-rendered plain text of an article URL.
func (c *ReaderClient) FetchText(ctx context.Context, articleURL string) (string, error) {
	if c == nil || c.endpoint == "" {
		return "", fmt.Errorf("reader client misconfigured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsCurator/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reader error %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReaderResponse))
	if err != nil {
		return "", fmt.Errorf("read article text: %w", err)
	}
	return string(body), nil
}
