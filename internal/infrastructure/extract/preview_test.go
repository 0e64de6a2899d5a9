package extract

import (
	"strings"
	"testing"
)

const articleParagraph = "Venezuela's state oil company said exports rose sharply last month as new licenses took effect. Shipments to Asia accounted for most of the increase, according to internal documents. Officials declined to comment on the figures. A formal report is expected next week."

const articleHTML = `<html><body>
<p>By John Smith</p>
<p>Subscribe to our newsletter for daily updates.</p>
<p>` + articleParagraph + `</p>
<p>Another paragraph of body text follows further down the page.</p>
</body></html>`

func TestFromHTMLSkipsBylinesAndNoise(t *testing.T) {
	t.Parallel()

	preview := FromHTML(articleHTML)
	if preview == "" {
		t.Fatal("expected a preview candidate")
	}
	if strings.Contains(preview, "John Smith") || strings.Contains(preview, "newsletter") {
		t.Fatalf("byline or noise leaked into the preview: %q", preview)
	}
	if !strings.HasPrefix(preview, "Venezuela's state oil company") {
		t.Fatalf("unexpected preview start: %q", preview)
	}
	if strings.Contains(preview, "formal report") {
		t.Fatalf("preview should cap at three sentences: %q", preview)
	}
}

func TestFromHTMLEmptyWhenNothingSubstantive(t *testing.T) {
	t.Parallel()

	if got := FromHTML(`<html><body><p>Too short.</p><p>Also short.</p></body></html>`); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
}

func TestFromTextSkipsReaderHeader(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Title: Venezuela oil exports rise",
		"URL Source: https://example.org/news/venezuela-oil",
		"Markdown Content:",
		articleParagraph,
	}, "\n")

	preview := FromText(text)
	if !strings.HasPrefix(preview, "Venezuela's state oil company") {
		t.Fatalf("reader header should be skipped: %q", preview)
	}
}

func TestFromTextSkipsDateline(t *testing.T) {
	t.Parallel()

	text := "CARACAS (Reuters) — Officials met on Monday to discuss the new framework in detail before the announcement.\n\n" + articleParagraph

	preview := FromText(text)
	if !strings.HasPrefix(preview, "Venezuela's state oil company") {
		t.Fatalf("dateline paragraph should be skipped: %q", preview)
	}
}
