package curation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"NewsCurator/internal/domain"
)

// PreviewRules bounds what counts as a usable preview.
type PreviewRules struct {
	// Strict requires two sentences and rejects truncated source text;
	// loose accepts the whole cleaned text inside a broader window.
	Strict bool
	// MinChars is the minimum final length in either mode.
	MinChars int
	// MaxChars caps the joined two-sentence preview in strict mode.
	MaxChars int
	// LooseMaxChars caps the cleaned text in loose mode.
	LooseMaxChars int
}

// DefaultPreviewRules returns the strict-pipeline bounds.
func DefaultPreviewRules() PreviewRules {
	return PreviewRules{Strict: true, MinChars: 80, MaxChars: 350, LooseMaxChars: 380}
}

// PreviewNormalizer extracts a clean, length-bounded preview from raw
// text or rejects it with a specific reason.
type PreviewNormalizer struct {
	rules PreviewRules
}

// NewPreviewNormalizer builds a normalizer; zero bounds fall back to
// the defaults.
func NewPreviewNormalizer(rules PreviewRules) *PreviewNormalizer {
	defaults := DefaultPreviewRules()
	if rules.MinChars <= 0 {
		rules.MinChars = defaults.MinChars
	}
	if rules.MaxChars <= 0 {
		rules.MaxChars = defaults.MaxChars
	}
	if rules.LooseMaxChars <= 0 {
		rules.LooseMaxChars = defaults.LooseMaxChars
	}
	return &PreviewNormalizer{rules: rules}
}

// Normalize returns the normalized preview and an empty reason, or an
// empty string with the rejection reason. Idempotent on its own output.
func (n *PreviewNormalizer) Normalize(raw string) (string, domain.RejectionReason) {
	clean := CleanSpaces(raw)
	if clean == "" {
		return "", domain.ReasonPreviewEmpty
	}
	if n.rules.Strict && containsEllipsis(clean) {
		return "", domain.ReasonPreviewTruncated
	}

	if n.rules.Strict {
		sentences := SplitSentences(clean)
		if len(sentences) < 2 {
			return "", domain.ReasonPreviewSingleSentence
		}
		joined := strings.TrimSpace(sentences[0] + " " + sentences[1])
		if utf8.RuneCountInString(joined) > n.rules.MaxChars {
			return "", domain.ReasonPreviewTooLong
		}
		if utf8.RuneCountInString(joined) < n.rules.MinChars {
			return "", domain.ReasonPreviewTooShort
		}
		return joined, ""
	}

	length := utf8.RuneCountInString(clean)
	if length > n.rules.LooseMaxChars {
		return "", domain.ReasonPreviewTooLong
	}
	if length < n.rules.MinChars {
		return "", domain.ReasonPreviewTooShort
	}
	return clean, ""
}

func containsEllipsis(text string) bool {
	return strings.Contains(text, "…") || strings.Contains(text, "...")
}

// CleanSpaces collapses internal whitespace runs to single spaces and
// trims the result.
func CleanSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitSentences splits on sentence-ending punctuation followed by
// whitespace and an upper-case letter (accented Latin included), which
// avoids splitting on abbreviations in the common case.
func SplitSentences(text string) []string {
	normalized := CleanSpaces(text)
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
		default:
			continue
		}
		next := i + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next == i+1 || next >= len(runes) || !unicode.IsUpper(runes[next]) {
			continue
		}
		if part := strings.TrimSpace(string(runes[start : i+1])); part != "" {
			sentences = append(sentences, part)
		}
		start = next
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
