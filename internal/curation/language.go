package curation

import (
	"regexp"
	"strings"

	"NewsCurator/internal/domain"
)

// LanguageMode selects how much the classifier trusts item metadata.
type LanguageMode int

const (
	// LangModeHeuristic falls back to text scoring when no declared
	// en/es tag is present.
	LangModeHeuristic LanguageMode = iota
	// LangModeDeclaredOnly returns "other" for any item lacking a
	// declared en/es tag instead of guessing.
	LangModeDeclaredOnly
)

// ParseLanguageMode maps a config string to a LanguageMode.
func ParseLanguageMode(value string) LanguageMode {
	if strings.EqualFold(strings.TrimSpace(value), "declared-only") {
		return LangModeDeclaredOnly
	}
	return LangModeHeuristic
}

var spanishSigns = regexp.MustCompile(`[áéíóúñ¿¡]`)

// Marker words matched as whole-word substrings with surrounding spaces.
var (
	spanishMarkers = []string{
		" de ", " la ", " el ", " en ", " para ", " con ",
		" una ", " un ", " y ", " los ", " las ", " del ", " por ", " que ",
	}
	englishMarkers = []string{
		" the ", " and ", " of ", " to ", " in ", " for ",
		" with ", " that ", " from ", " on ", " by ", " as ", " is ", " has ",
	}
)

// LanguageClassifier assigns exactly one of en/es/other to an item.
type LanguageClassifier struct {
	mode LanguageMode
}

// NewLanguageClassifier builds a classifier for the given mode.
func NewLanguageClassifier(mode LanguageMode) *LanguageClassifier {
	return &LanguageClassifier{mode: mode}
}

// Classify returns the language tag for an item. A declared en/es tag
// always wins over the heuristic. Never fails: any input yields a tag.
func (c *LanguageClassifier) Classify(declared, title, preview string) domain.Language {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "en":
		return domain.LangEN
	case "es":
		return domain.LangES
	}

	if c.mode == LangModeDeclaredOnly {
		return domain.LangOther
	}

	text := " " + strings.ToLower(strings.TrimSpace(title+" "+preview)) + " "
	if spanishSigns.MatchString(text) {
		return domain.LangES
	}

	if countMarkers(text, spanishMarkers) > countMarkers(text, englishMarkers) {
		return domain.LangES
	}
	return domain.LangEN
}

// countMarkers counts how many distinct markers appear in text.
func countMarkers(text string, markers []string) int {
	hits := 0
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			hits++
		}
	}
	return hits
}
