package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

const maxArticleHTML = 4 << 20

// Enricher backfills missing previews before curation runs. Items stay
// immutable: enrichment produces a copied document, never edits the
// loaded one.
type Enricher struct {
	client    *http.Client
	reader    ports.ArticleFetcher
	maxPerRun int
	logger    *slog.Logger
}

// NewEnricher wires the direct HTML fetch path and the optional remote
// reader fallback.
func NewEnricher(client *http.Client, reader ports.ArticleFetcher, maxPerRun int, logger *slog.Logger) *Enricher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if maxPerRun <= 0 {
		maxPerRun = 8
	}
	return &Enricher{
		client:    client,
		reader:    reader,
		maxPerRun: maxPerRun,
		logger:    logger,
	}
}

// Backfill returns a copy of doc where items without a preview carry an
// extracted candidate. At most maxPerRun articles are fetched per run;
// any single fetch failure only leaves that item without a preview.
func (e *Enricher) Backfill(ctx context.Context, doc *domain.FeedDocument) *domain.FeedDocument {
	if doc == nil {
		return nil
	}

	enriched := *doc
	enriched.Sectors = make([]domain.Sector, len(doc.Sectors))
	fetched := 0
	for i, sector := range doc.Sectors {
		copied := sector
		copied.Items = make([]domain.ContentItem, len(sector.Items))
		copy(copied.Items, sector.Items)
		for j := range copied.Items {
			if copied.Items[j].Preview != "" || copied.Items[j].URL == "" {
				continue
			}
			if fetched >= e.maxPerRun {
				continue
			}
			fetched++
			if preview := e.previewFor(ctx, copied.Items[j].URL); preview != "" {
				copied.Items[j].Preview = preview
			}
		}
		enriched.Sectors[i] = copied
	}
	return &enriched
}

func (e *Enricher) previewFor(ctx context.Context, url string) string {
	html, err := e.fetchHTML(ctx, url)
	if err != nil {
		e.debug("article fetch failed", "url", url, "error", err)
	} else if preview := FromHTML(html); preview != "" {
		return preview
	}

	if e.reader == nil {
		return ""
	}
	text, err := e.reader.FetchText(ctx, url)
	if err != nil {
		e.debug("reader fetch failed", "url", url, "error", err)
		return ""
	}
	return FromText(text)
}

func (e *Enricher) fetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsCurator/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleHTML))
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}
	return string(body), nil
}

func (e *Enricher) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
