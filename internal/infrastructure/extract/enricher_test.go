package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"NewsCurator/internal/domain"
)

type stubReader struct {
	text string
}

func (r *stubReader) FetchText(_ context.Context, _ string) (string, error) {
	return r.text, nil
}

func feedWithMissingPreviews(urls ...string) *domain.FeedDocument {
	items := make([]domain.ContentItem, len(urls))
	for i, url := range urls {
		items[i] = domain.ContentItem{ID: url, Title: "Item", URL: url}
	}
	return &domain.FeedDocument{
		Sectors: []domain.Sector{{Name: "Energy", Items: items}},
	}
}

func TestBackfillFillsMissingPreviews(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	doc := feedWithMissingPreviews(server.URL + "/article-one")
	enricher := NewEnricher(server.Client(), nil, 0, nil)

	enriched := enricher.Backfill(context.Background(), doc)
	got := enriched.Sectors[0].Items[0].Preview
	if !strings.HasPrefix(got, "Venezuela's state oil company") {
		t.Fatalf("preview not backfilled: %q", got)
	}

	// The loaded document stays untouched.
	if doc.Sectors[0].Items[0].Preview != "" {
		t.Fatal("backfill must not mutate the original document")
	}
}

func TestBackfillHonorsPerRunCap(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	doc := feedWithMissingPreviews(server.URL+"/one", server.URL+"/two", server.URL+"/three")
	enricher := NewEnricher(server.Client(), nil, 1, nil)

	enriched := enricher.Backfill(context.Background(), doc)
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
	if enriched.Sectors[0].Items[1].Preview != "" || enriched.Sectors[0].Items[2].Preview != "" {
		t.Fatal("items beyond the cap should stay untouched")
	}
}

func TestBackfillFallsBackToReader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	reader := &stubReader{text: "Markdown Content:\n" + articleParagraph}
	doc := feedWithMissingPreviews(server.URL + "/blocked")
	enricher := NewEnricher(server.Client(), reader, 0, nil)

	enriched := enricher.Backfill(context.Background(), doc)
	got := enriched.Sectors[0].Items[0].Preview
	if !strings.HasPrefix(got, "Venezuela's state oil company") {
		t.Fatalf("reader fallback not used: %q", got)
	}
}

func TestBackfillKeepsExistingPreviews(t *testing.T) {
	t.Parallel()

	doc := &domain.FeedDocument{
		Sectors: []domain.Sector{{
			Name:  "Energy",
			Items: []domain.ContentItem{{ID: "a", URL: "https://example.org/a", Preview: "Already set."}},
		}},
	}

	enricher := NewEnricher(nil, nil, 0, nil)
	enriched := enricher.Backfill(context.Background(), doc)
	if enriched.Sectors[0].Items[0].Preview != "Already set." {
		t.Fatal("existing previews must be preserved")
	}
}
