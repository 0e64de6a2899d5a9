package ports

import (
	"context"
	"time"

	"NewsCurator/internal/domain"
)

// FeedSource loads the pre-aggregated news feed documents.
type FeedSource interface {
	Load(ctx context.Context) (*domain.FeedDocument, error)
}

// MacroSource fetches the macro indicator snapshot.
type MacroSource interface {
	Fetch(ctx context.Context) (*domain.MacroDocument, error)
}

// ArticleFetcher retrieves article text for preview backfill.
type ArticleFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// AuditRepository persists curation runs and their rejection records.
type AuditRepository interface {
	SaveRun(ctx context.Context, run domain.CurationRun) error
	CountByReason(ctx context.Context) (map[domain.RejectionReason]int, error)
}

// ViewWriter publishes a display-ready view model.
type ViewWriter interface {
	Write(vm *domain.ViewModel) error
}

// Notifier streams run digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when refresh runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
