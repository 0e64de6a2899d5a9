package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"NewsCurator/internal/curation"
	"NewsCurator/internal/domain"
	"NewsCurator/internal/infrastructure/extract"
	"NewsCurator/internal/ports"
)

// RefreshDeps wires all driven adapters into the refresh use case.
type RefreshDeps struct {
	Feeds        ports.FeedSource
	Macro        ports.MacroSource
	Curator      *curation.Curator
	Enricher     *extract.Enricher
	Writer       ports.ViewWriter
	Audit        ports.AuditRepository
	Notifier     ports.Notifier
	BriefBullets int
	Logger       *slog.Logger
}

// Refresh implements the full curation workflow: load feeds and macro
// data, classify per language selector, render view models, persist the
// ledger, and publish a digest.
type Refresh struct {
	feeds        ports.FeedSource
	macro        ports.MacroSource
	curator      *curation.Curator
	enricher     *extract.Enricher
	writer       ports.ViewWriter
	audit        ports.AuditRepository
	notifier     ports.Notifier
	briefBullets int
	logger       *slog.Logger
}

// NewRefresh constructs the orchestration component.
func NewRefresh(deps RefreshDeps) *Refresh {
	return &Refresh{
		feeds:        deps.Feeds,
		macro:        deps.Macro,
		curator:      deps.Curator,
		enricher:     deps.Enricher,
		writer:       deps.Writer,
		audit:        deps.Audit,
		notifier:     deps.Notifier,
		briefBullets: deps.BriefBullets,
		logger:       deps.Logger,
	}
}

// Run executes one refresh. Feed and macro documents load in parallel;
// either one failing degrades to an empty contribution so the dashboard
// still renders its "no data" state.
func (r *Refresh) Run(ctx context.Context, now time.Time) error {
	if r.feeds == nil || r.curator == nil {
		return nil
	}

	var (
		feedDoc  *domain.FeedDocument
		macroDoc *domain.MacroDocument
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		doc, err := r.feeds.Load(groupCtx)
		if err != nil {
			r.warn("feed load failed", "error", err)
			return nil
		}
		feedDoc = doc
		return nil
	})
	if r.macro != nil {
		group.Go(func() error {
			doc, err := r.macro.Fetch(groupCtx)
			if err != nil {
				r.warn("macro fetch failed", "error", err)
				return nil
			}
			macroDoc = doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}

	if feedDoc == nil {
		feedDoc = &domain.FeedDocument{}
	}
	if r.enricher != nil {
		feedDoc = r.enricher.Backfill(ctx, feedDoc)
	}

	generatedAt := now.UTC().Format(time.RFC3339)
	summary := make(map[domain.Language]*domain.ViewModel, 2)
	for _, selector := range []domain.Language{domain.LangEN, domain.LangES} {
		vm, records := r.curator.Run(selector, feedDoc)
		vm.GeneratedAt = generatedAt
		vm.Macro = macroDoc
		vm.Rejected = records
		vm.Brief = curation.BuildBrief(vm.Sectors, r.briefBullets)
		summary[selector] = vm

		if r.writer != nil {
			if err := r.writer.Write(vm); err != nil {
				return fmt.Errorf("write %s view: %w", selector, err)
			}
		}

		if r.audit != nil {
			run := domain.CurationRun{
				ID:       ulid.Make().String(),
				Selector: selector,
				Sectors:  len(vm.Sectors),
				Items:    countItems(vm.Sectors),
				Rejected: records,
			}
			if err := r.audit.SaveRun(ctx, run); err != nil {
				r.warn("audit save failed", "selector", selector, "error", err)
			}
		}
	}

	r.info("refresh complete",
		"default", r.curator.DefaultSelector(feedDoc),
		"en_sectors", len(summary[domain.LangEN].Sectors),
		"es_sectors", len(summary[domain.LangES].Sectors))

	if r.notifier != nil {
		digest := buildDigest(summary)
		if r.audit != nil {
			if counts, err := r.audit.CountByReason(ctx); err != nil {
				r.warn("reason counts failed", "error", err)
			} else if len(counts) > 0 {
				digest += "\n" + formatReasonCounts(counts)
			}
		}
		if err := r.notifier.PublishDigest(ctx, digest); err != nil {
			r.warn("digest publish failed", "error", err)
		}
	}
	return nil
}

func countItems(sectors []domain.CuratedSector) int {
	total := 0
	for _, sector := range sectors {
		total += len(sector.Items)
	}
	return total
}

// formatReasonCounts renders the stored all-time rejection totals in a
// stable order.
func formatReasonCounts(counts map[domain.RejectionReason]int) string {
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	var b strings.Builder
	b.WriteString("All-time rejections:")
	for _, reason := range reasons {
		fmt.Fprintf(&b, " %s=%d", reason, counts[domain.RejectionReason(reason)])
	}
	return b.String()
}

// buildDigest renders a short run summary for notification channels.
func buildDigest(summary map[domain.Language]*domain.ViewModel) string {
	var b strings.Builder
	b.WriteString("Curation refresh\n")
	for _, selector := range []domain.Language{domain.LangEN, domain.LangES} {
		vm := summary[selector]
		if vm == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %d sectors, %d items, %d rejected\n",
			selector, len(vm.Sectors), countItems(vm.Sectors), len(vm.Rejected))
	}
	return strings.TrimSpace(b.String())
}

func (r *Refresh) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Refresh) info(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
