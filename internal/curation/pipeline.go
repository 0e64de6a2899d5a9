package curation

import (
	"NewsCurator/internal/domain"
)

// Options configures the curation pipeline. The strict/loose and
// declared-only switches exist because both behaviors are valid
// operating modes of the dashboard, not implementation drift.
type Options struct {
	LanguageMode      LanguageMode
	URLRules          URLRules
	PreviewRules      PreviewRules
	DefaultLanguage   domain.Language
	FallbackWhenEmpty bool
}

// Curator applies language, URL, and preview gates to a feed batch and
// assembles the display-ready view model plus the rejection ledger.
type Curator struct {
	languages *LanguageClassifier
	urls      *URLClassifier
	previews  *PreviewNormalizer
	opts      Options
}

// NewCurator wires the classification stages from one options set.
func NewCurator(opts Options) *Curator {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = domain.LangEN
	}
	return &Curator{
		languages: NewLanguageClassifier(opts.LanguageMode),
		urls:      NewURLClassifier(opts.URLRules),
		previews:  NewPreviewNormalizer(opts.PreviewRules),
		opts:      opts,
	}
}

// Classification is the single per-item verdict.
type Classification struct {
	Outcome domain.Outcome
	Preview string
	Record  *domain.RejectionRecord
}

// ClassifyItem runs the gatekeepers in fixed order: language, then URL,
// then preview. The first failing stage determines the one rejection
// reason; an item is never double-counted.
func (c *Curator) ClassifyItem(selector domain.Language, item domain.ContentItem) Classification {
	if lang := c.languages.Classify(item.Language, item.Title, item.Preview); lang != selector {
		return Classification{
			Outcome: domain.OutcomeRejectedLanguage,
			Record: &domain.RejectionRecord{
				Reason: domain.ReasonWrongLanguage,
				Title:  item.Title,
				URL:    item.URL,
				Stage:  domain.StageLanguage,
			},
		}
	}

	if !c.urls.IsArticle(item.URL) {
		return Classification{
			Outcome: domain.OutcomeRejectedURL,
			Record: &domain.RejectionRecord{
				Reason: domain.ReasonURLNotArticle,
				Title:  item.Title,
				URL:    item.URL,
				Stage:  domain.StageURL,
			},
		}
	}

	preview, reason := c.previews.Normalize(item.Preview)
	if reason != "" {
		return Classification{
			Outcome: domain.OutcomeRejectedPreview,
			Record: &domain.RejectionRecord{
				Reason: reason,
				Title:  item.Title,
				URL:    item.URL,
				Stage:  domain.StagePreview,
			},
		}
	}

	return Classification{Outcome: domain.OutcomeAccepted, Preview: preview}
}

// Run curates the whole batch for one language selector. Surviving
// items keep their sector and item order; sectors with zero survivors
// are omitted entirely. Precomputed build-time rejections are merged
// ahead of the fresh runtime records.
func (c *Curator) Run(selector domain.Language, doc *domain.FeedDocument) (*domain.ViewModel, []domain.RejectionRecord) {
	vm := &domain.ViewModel{Language: selector, Sectors: []domain.CuratedSector{}}
	if doc == nil {
		return vm, nil
	}

	ledger := NewLedger(doc.Rejections)
	for _, sector := range doc.Sectors {
		curated := domain.CuratedSector{Name: sector.Name}
		if sector.Synth != nil {
			curated.Bullets = sector.Synth.Bullets
		}
		for _, item := range sector.Items {
			verdict := c.ClassifyItem(selector, item)
			if verdict.Record != nil {
				ledger.Append(verdict.Record.Reason, verdict.Record.Title, verdict.Record.URL, verdict.Record.Stage)
				continue
			}
			curated.Items = append(curated.Items, domain.CuratedItem{
				ID:          item.ID,
				Title:       item.Title,
				URL:         item.URL,
				Publisher:   item.Publisher,
				PublishedAt: item.PublishedAt,
				SourceTier:  item.SourceTier,
				Icons:       item.Icons,
				Preview:     verdict.Preview,
				Verified:    item.SourcePublishedAt != "",
			})
		}
		if len(curated.Items) > 0 {
			vm.Sectors = append(vm.Sectors, curated)
		}
	}

	return vm, ledger.Records()
}

// DefaultSelector picks the initial language. With FallbackWhenEmpty
// set, the configured default is swapped for the other language when it
// would yield an empty view.
func (c *Curator) DefaultSelector(doc *domain.FeedDocument) domain.Language {
	selector := c.opts.DefaultLanguage
	if !c.opts.FallbackWhenEmpty || doc == nil {
		return selector
	}

	vm, _ := c.Run(selector, doc)
	if len(vm.Sectors) > 0 {
		return selector
	}
	if selector == domain.LangEN {
		return domain.LangES
	}
	return domain.LangEN
}
