package domain

// Language is the tag assigned to a content item by classification.
type Language string

const (
	LangEN    Language = "en"
	LangES    Language = "es"
	LangOther Language = "other"
)

// ContentItem is a single feed entry as delivered by the upstream build.
// Items are immutable once loaded; curation derives new values alongside
// the originals instead of overwriting them.
type ContentItem struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	URL               string   `json:"url"`
	Publisher         string   `json:"publisher"`
	PublishedAt       string   `json:"publishedAt"`
	SourcePublishedAt string   `json:"sourcePublishedAt,omitempty"`
	Language          string   `json:"language,omitempty"`
	Preview           string   `json:"preview,omitempty"`
	SourceTier        string   `json:"sourceTier,omitempty"`
	Icons             []string `json:"icons,omitempty"`
}

// Synth carries pre-built synthesis bullets attached to a sector.
type Synth struct {
	Bullets []string `json:"bullets,omitempty"`
}

// Sector is a named topical grouping of content items.
type Sector struct {
	Name  string        `json:"name"`
	Items []ContentItem `json:"items"`
	Synth *Synth        `json:"synth,omitempty"`
}

// FeedDocument is the top-level pre-aggregated feed. Rejections holds
// optional precomputed records produced by the upstream build process.
type FeedDocument struct {
	AsOf       string            `json:"asOf,omitempty"`
	Sectors    []Sector          `json:"sectors"`
	Rejections []RejectionRecord `json:"rejected,omitempty"`
}

// RejectionReason is a stable tag explaining why an item was excluded.
type RejectionReason string

const (
	ReasonWrongLanguage         RejectionReason = "wrong_language"
	ReasonURLNotArticle         RejectionReason = "url_not_article"
	ReasonPreviewEmpty          RejectionReason = "preview_empty"
	ReasonPreviewTruncated      RejectionReason = "preview_truncated"
	ReasonPreviewSingleSentence RejectionReason = "preview_single_sentence"
	ReasonPreviewTooShort       RejectionReason = "preview_too_short"
	ReasonPreviewTooLong        RejectionReason = "preview_too_long"
)

// Classification stage names recorded on ledger entries.
const (
	StageLanguage = "language"
	StageURL      = "url"
	StagePreview  = "preview"
	StageBuild    = "build"
)

// RejectionRecord documents one exclusion decision for audit.
type RejectionRecord struct {
	Reason RejectionReason `json:"reason"`
	Title  string          `json:"title"`
	URL    string          `json:"url"`
	Stage  string          `json:"stage,omitempty"`
}

// Outcome is the single per-item classification verdict.
type Outcome string

const (
	OutcomeAccepted         Outcome = "accepted"
	OutcomeRejectedLanguage Outcome = "rejected_language"
	OutcomeRejectedURL      Outcome = "rejected_url"
	OutcomeRejectedPreview  Outcome = "rejected_preview"
)

// CuratedItem is a surviving item carrying derived display values.
type CuratedItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Publisher   string   `json:"publisher"`
	PublishedAt string   `json:"publishedAt"`
	SourceTier  string   `json:"sourceTier,omitempty"`
	Icons       []string `json:"icons,omitempty"`
	Preview     string   `json:"preview"`
	Verified    bool     `json:"verified"`
}

// CuratedSector groups surviving items under their originating sector.
type CuratedSector struct {
	Name    string        `json:"name"`
	Bullets []string      `json:"bullets,omitempty"`
	Items   []CuratedItem `json:"items"`
}

// ViewModel is the display-ready dataset for one language selector.
type ViewModel struct {
	Language    Language          `json:"language"`
	GeneratedAt string            `json:"generatedAt,omitempty"`
	Sectors     []CuratedSector   `json:"sectors"`
	Brief       []string          `json:"executiveBriefBullets,omitempty"`
	Macro       *MacroDocument    `json:"macro,omitempty"`
	Rejected    []RejectionRecord `json:"rejected,omitempty"`
}
