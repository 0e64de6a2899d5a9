package feed

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"NewsCurator/internal/config"
	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
	"NewsCurator/internal/source"
)

// MultiSource implements FeedSource over the configured feed documents.
// Documents load in parallel; a single feed's failure degrades its
// contribution to empty instead of aborting the whole refresh.
type MultiSource struct {
	registry *source.Registry
	feeds    []config.FeedConfig
	logger   *slog.Logger
}

var _ ports.FeedSource = (*MultiSource)(nil)

// NewMultiSource wires the loader registry with config-defined feeds.
func NewMultiSource(registry *source.Registry, feeds []config.FeedConfig, logger *slog.Logger) *MultiSource {
	return &MultiSource{
		registry: registry,
		feeds:    feeds,
		logger:   logger,
	}
}

// Load fetches every configured feed and merges sectors and precomputed
// rejections preserving feed order.
func (s *MultiSource) Load(ctx context.Context) (*domain.FeedDocument, error) {
	docs := make([]*domain.FeedDocument, len(s.feeds))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, feedCfg := range s.feeds {
		i, feedCfg := i, feedCfg
		group.Go(func() error {
			loader, err := s.registry.Resolve(feedCfg.Kind)
			if err != nil {
				s.warn("feed loader missing", "feed", feedCfg.Name, "error", err)
				return nil
			}
			ref := source.Ref{Name: feedCfg.Name, Kind: feedCfg.Kind, URL: feedCfg.URL, Path: feedCfg.Path}
			doc, err := loader.Load(groupCtx, ref)
			if err != nil {
				s.warn("feed load failed", "feed", feedCfg.Name, "error", err)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := &domain.FeedDocument{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		merged.Sectors = append(merged.Sectors, doc.Sectors...)
		merged.Rejections = append(merged.Rejections, doc.Rejections...)
		if doc.AsOf > merged.AsOf {
			merged.AsOf = doc.AsOf
		}
	}

	s.debug("feeds loaded", "feeds", len(s.feeds), "sectors", len(merged.Sectors))
	return merged, nil
}

func (s *MultiSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *MultiSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
