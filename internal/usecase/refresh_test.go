package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"NewsCurator/internal/curation"
	"NewsCurator/internal/domain"
)

type stubFeeds struct {
	doc *domain.FeedDocument
	err error
}

func (s *stubFeeds) Load(context.Context) (*domain.FeedDocument, error) {
	return s.doc, s.err
}

type stubMacro struct {
	doc *domain.MacroDocument
}

func (s *stubMacro) Fetch(context.Context) (*domain.MacroDocument, error) {
	return s.doc, nil
}

type captureWriter struct {
	views []*domain.ViewModel
}

func (w *captureWriter) Write(vm *domain.ViewModel) error {
	w.views = append(w.views, vm)
	return nil
}

type captureAudit struct {
	runs   []domain.CurationRun
	counts map[domain.RejectionReason]int
}

func (a *captureAudit) SaveRun(_ context.Context, run domain.CurationRun) error {
	a.runs = append(a.runs, run)
	return nil
}

func (a *captureAudit) CountByReason(context.Context) (map[domain.RejectionReason]int, error) {
	return a.counts, nil
}

type captureNotifier struct {
	digest string
}

func (n *captureNotifier) PublishDigest(_ context.Context, digest string) error {
	n.digest = digest
	return nil
}

func testCurator() *curation.Curator {
	return curation.NewCurator(curation.Options{
		URLRules:        curation.DefaultURLRules(),
		PreviewRules:    curation.DefaultPreviewRules(),
		DefaultLanguage: domain.LangEN,
	})
}

func refreshFeed() *domain.FeedDocument {
	return &domain.FeedDocument{
		Sectors: []domain.Sector{{
			Name: "Energy",
			Items: []domain.ContentItem{{
				ID:       "en-1",
				Title:    "New licensing framework",
				URL:      "https://example.org/news/venezuela-oil-licensing-framework",
				Language: "en",
				Preview:  "Venezuela announced a new licensing framework for oil exports on Monday afternoon. Analysts said the measure could reshape crude flows across the region.",
			}},
		}},
	}
}

func TestRunWritesBothLanguageViews(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	audit := &captureAudit{counts: map[domain.RejectionReason]int{
		domain.ReasonWrongLanguage: 3,
		domain.ReasonURLNotArticle: 1,
	}}
	notifier := &captureNotifier{}
	macroDoc := &domain.MacroDocument{Country: "VEN"}

	refresh := NewRefresh(RefreshDeps{
		Feeds:    &stubFeeds{doc: refreshFeed()},
		Macro:    &stubMacro{doc: macroDoc},
		Curator:  testCurator(),
		Writer:   writer,
		Audit:    audit,
		Notifier: notifier,
	})

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	if err := refresh.Run(context.Background(), now); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(writer.views) != 2 {
		t.Fatalf("expected en and es views, got %d", len(writer.views))
	}
	for _, vm := range writer.views {
		if vm.GeneratedAt != "2026-08-30T12:00:00Z" {
			t.Fatalf("generatedAt not stamped: %q", vm.GeneratedAt)
		}
		if vm.Macro != macroDoc {
			t.Fatal("macro document should attach to every view")
		}
	}

	if len(writer.views[0].Sectors) != 1 || len(writer.views[0].Brief) != 1 {
		t.Fatalf("en view should carry the item and a brief bullet: %+v", writer.views[0])
	}
	if len(writer.views[1].Sectors) != 0 {
		t.Fatalf("es view should be empty for an en-only feed: %+v", writer.views[1])
	}

	if len(audit.runs) != 2 {
		t.Fatalf("expected 2 audit runs, got %d", len(audit.runs))
	}
	for _, run := range audit.runs {
		if run.ID == "" {
			t.Fatal("audit runs need an id")
		}
	}
	if audit.runs[0].Items != 1 || audit.runs[1].Items != 0 {
		t.Fatalf("unexpected item counts: %+v", audit.runs)
	}

	if !strings.Contains(notifier.digest, "en: 1 sectors, 1 items") {
		t.Fatalf("unexpected digest: %q", notifier.digest)
	}
	if !strings.Contains(notifier.digest, "All-time rejections: url_not_article=1 wrong_language=3") {
		t.Fatalf("stored totals missing from digest: %q", notifier.digest)
	}
}

func TestRunDegradesOnFeedFailure(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	refresh := NewRefresh(RefreshDeps{
		Feeds:   &stubFeeds{err: errors.New("upstream down")},
		Curator: testCurator(),
		Writer:  writer,
	})

	if err := refresh.Run(context.Background(), time.Now()); err != nil {
		t.Fatalf("feed failure should degrade, not abort: %v", err)
	}
	if len(writer.views) != 2 {
		t.Fatalf("empty views should still be written, got %d", len(writer.views))
	}
	for _, vm := range writer.views {
		if len(vm.Sectors) != 0 {
			t.Fatalf("degraded view should be empty: %+v", vm)
		}
	}
}

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	summary := map[domain.Language]*domain.ViewModel{
		domain.LangEN: {
			Sectors: []domain.CuratedSector{{
				Name:  "Energy",
				Items: []domain.CuratedItem{{ID: "a"}, {ID: "b"}},
			}},
			Rejected: []domain.RejectionRecord{{Reason: domain.ReasonWrongLanguage}},
		},
		domain.LangES: {},
	}

	digest := buildDigest(summary)
	if !strings.HasPrefix(digest, "Curation refresh") {
		t.Fatalf("unexpected digest header: %q", digest)
	}
	if !strings.Contains(digest, "en: 1 sectors, 2 items, 1 rejected") {
		t.Fatalf("unexpected en line: %q", digest)
	}
	if !strings.Contains(digest, "es: 0 sectors, 0 items, 0 rejected") {
		t.Fatalf("unexpected es line: %q", digest)
	}
}
