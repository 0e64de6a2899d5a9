// Package imf talks to the IMF DataMapper API and shapes indicator
// series into the macro document used by the dashboard.
package imf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"NewsCurator/internal/config"
	"NewsCurator/internal/domain"
	"NewsCurator/internal/macro"
	"NewsCurator/internal/ports"
)

const (
	yearsBack    = 15
	yearsForward = 5
)

// Client fetches indicator series for one country.
type Client struct {
	baseURL string
	country string
	metrics []config.MetricConfig
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.MacroSource = (*Client)(nil)

// NewClient creates a reusable DataMapper client.
func NewClient(cfg config.MacroConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		country: cfg.Country,
		metrics: cfg.Metrics,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		now:     time.Now,
	}
}

type catalogResponse struct {
	Indicators map[string]struct {
		Label   string `json:"label"`
		Unit    string `json:"unit"`
		Dataset string `json:"dataset"`
	} `json:"indicators"`
}

type valuesResponse struct {
	Values map[string]map[string]map[string]any `json:"values"`
}

// Fetch pulls the catalog plus every configured indicator series and
// normalizes them. A single indicator's failure is logged and skipped.
func (c *Client) Fetch(ctx context.Context) (*domain.MacroDocument, error) {
	var catalog catalogResponse
	if err := c.get(ctx, c.baseURL+"/indicators", &catalog); err != nil {
		return nil, fmt.Errorf("fetch indicator catalog: %w", err)
	}

	periods := c.buildPeriods()
	doc := &domain.MacroDocument{
		Source:  "IMF DataMapper API",
		Country: c.country,
		AsOf:    c.now().UTC().Format(time.RFC3339),
	}

	for _, metric := range c.metrics {
		url := fmt.Sprintf("%s/%s/%s?periods=%s", c.baseURL, metric.Code, c.country, periods)
		var payload valuesResponse
		if err := c.get(ctx, url, &payload); err != nil {
			c.warn("indicator fetch failed", "code", metric.Code, "error", err)
			continue
		}

		raw := map[string]any{}
		if byCode, ok := payload.Values[metric.Code]; ok {
			if byCountry, ok := byCode[c.country]; ok {
				raw = byCountry
			}
		}

		label := metric.Label
		unit := ""
		dataset := ""
		if meta, ok := catalog.Indicators[metric.Code]; ok {
			if meta.Label != "" {
				label = meta.Label
			}
			unit = meta.Unit
			dataset = meta.Dataset
		}

		doc.Metrics = append(doc.Metrics, macro.BuildIndicator(metric.Code, label, unit, dataset, raw))
	}

	return doc, nil
}

// buildPeriods covers a window around the current year, matching the
// upstream fetch script.
func (c *Client) buildPeriods() string {
	current := c.now().UTC().Year()
	years := make([]string, 0, yearsBack+yearsForward+1)
	for year := current - yearsBack; year <= current+yearsForward; year++ {
		years = append(years, strconv.Itoa(year))
	}
	return strings.Join(years, ",")
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(time.Second))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "NewsCurator/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("do request: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("unexpected status %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
