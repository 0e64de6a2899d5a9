package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"NewsCurator/internal/config"
	"NewsCurator/internal/curation"
	"NewsCurator/internal/domain"
	"NewsCurator/internal/infrastructure/extract"
	"NewsCurator/internal/infrastructure/feed"
	"NewsCurator/internal/infrastructure/imf"
	"NewsCurator/internal/infrastructure/render"
	"NewsCurator/internal/infrastructure/scheduler"
	"NewsCurator/internal/infrastructure/storage"
	"NewsCurator/internal/infrastructure/telegram"
	"NewsCurator/internal/logging"
	"NewsCurator/internal/ports"
	"NewsCurator/internal/source"
	"NewsCurator/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	refresh *usecase.Refresh
	driver  ports.Scheduler
	db      *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry := source.NewRegistry()
	registry.Register(feed.NewHTTPLoader(nil))
	registry.Register(feed.NewFileLoader())
	feeds := feed.NewMultiSource(registry, cfg.Feeds, baseLogger.With("component", "feeds"))

	curator := curation.NewCurator(curation.Options{
		LanguageMode: curation.ParseLanguageMode(cfg.Curation.LanguageMode),
		URLRules: curation.URLRules{
			DenyPaths:     cfg.Curation.URLDenyPaths,
			DenyPrefixes:  cfg.Curation.URLDenyPrefixes,
			AllowPrefixes: cfg.Curation.URLAllowPrefixes,
			MinSlugLength: cfg.Curation.URLMinSlugLength,
		},
		PreviewRules: curation.PreviewRules{
			Strict:        cfg.Curation.PreviewMode != "loose",
			MinChars:      cfg.Curation.PreviewMinChars,
			MaxChars:      cfg.Curation.PreviewMaxChars,
			LooseMaxChars: cfg.Curation.PreviewLooseMaxChars,
		},
		DefaultLanguage:   domain.Language(cfg.Curation.DefaultLanguage),
		FallbackWhenEmpty: cfg.Curation.FallbackWhenEmpty,
	})

	var macroSource ports.MacroSource
	if cfg.Macro.Enabled {
		macroSource = imf.NewClient(cfg.Macro, baseLogger.With("component", "imf"))
	}

	var enricher *extract.Enricher
	if cfg.Extraction.Enabled {
		var reader ports.ArticleFetcher
		if cfg.Extraction.ReaderEndpoint != "" {
			reader = extract.NewReaderClient(cfg.Extraction.ReaderEndpoint)
		}
		enricher = extract.NewEnricher(nil, reader, cfg.Extraction.MaxPerRun, baseLogger.With("component", "extract"))
	}

	var db *sql.DB
	var audit ports.AuditRepository
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open audit database: %w", err)
		}
		db = opened
		audit = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram)
	}

	refresh := usecase.NewRefresh(usecase.RefreshDeps{
		Feeds:        feeds,
		Macro:        macroSource,
		Curator:      curator,
		Enricher:     enricher,
		Writer:       render.NewWriter(cfg.Output.Dir, cfg.Curation.LedgerDisplayCap),
		Audit:        audit,
		Notifier:     notifier,
		BriefBullets: cfg.Curation.BriefBullets,
		Logger:       baseLogger.With("component", "refresh"),
	})

	application := &Application{cfg: cfg, refresh: refresh, db: db}
	if cfg.Scheduler.Enabled {
		application.driver = scheduler.NewIntervalScheduler(cfg.Scheduler.RefreshInterval())
	}
	return application, nil
}

// Run performs one refresh, or keeps refreshing on the configured
// interval until the context is canceled.
func (a *Application) Run(ctx context.Context) error {
	if a.refresh == nil {
		return nil
	}

	if a.driver == nil {
		return a.refresh.Run(ctx, time.Now())
	}

	runner := usecase.NewScheduler(a.driver, a.refresh)
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return runner.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
