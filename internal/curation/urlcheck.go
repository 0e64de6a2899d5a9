package curation

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// URLRules carries the tuned allow/deny lists for article detection.
// These are heuristic tuning parameters, supplied by configuration.
type URLRules struct {
	DenyPaths     []string
	DenyPrefixes  []string
	AllowPrefixes []string
	MinSlugLength int
}

// DefaultURLRules returns the lists tuned against the wire/IMF sources
// the dashboard aggregates.
func DefaultURLRules() URLRules {
	return URLRules{
		DenyPaths: []string{
			"", "/", "/en", "/es", "/news", "/rss", "/rss.xml",
			"/feed", "/feeds", "/home", "/en/news", "/en/news/",
		},
		DenyPrefixes: []string{
			"/rss", "/feed", "/feeds", "/topic/", "/topics/",
			"/category/", "/categories/", "/country/", "/countries/",
			"/about", "/search", "/sitemap",
		},
		AllowPrefixes: []string{
			"/publication", "/publications", "/report", "/reports",
			"/document", "/documents", "/press-release", "/press-releases",
			"/news/story", "/news/feature", "/resources", "/library",
		},
		MinSlugLength: 12,
	}
}

var (
	slashDate = regexp.MustCompile(`/(20\d{2})/(\d{1,2})/(\d{1,2})(?:/|$)`)
	dashDate  = regexp.MustCompile(`(20\d{2})-(\d{1,2})-(\d{1,2})`)
)

// URLClassifier decides whether a URL plausibly addresses a single
// article or document. Heuristic, not a guarantee: false positives and
// negatives are expected and surface through the rejection ledger.
type URLClassifier struct {
	rules URLRules
	deny  map[string]struct{}
}

// NewURLClassifier compiles the rules into a classifier.
func NewURLClassifier(rules URLRules) *URLClassifier {
	deny := make(map[string]struct{}, len(rules.DenyPaths))
	for _, p := range rules.DenyPaths {
		deny[p] = struct{}{}
	}
	if rules.MinSlugLength <= 0 {
		rules.MinSlugLength = DefaultURLRules().MinSlugLength
	}
	return &URLClassifier{rules: rules, deny: deny}
}

// IsArticle reports whether raw looks like a single article/document
// page. Unparsable URLs and bare listing/feed pages are rejected.
func (c *URLClassifier) IsArticle(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	path := strings.ToLower(parsed.Path)
	if _, denied := c.deny[path]; denied {
		return false
	}
	for _, prefix := range c.rules.DenyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	segments := splitSegments(path)
	if len(segments) < 2 {
		return false
	}

	if hasDatePattern(path) {
		return true
	}

	last := segments[len(segments)-1]
	if len(last) >= c.rules.MinSlugLength && !strings.HasSuffix(last, ".xml") {
		return true
	}

	for _, prefix := range c.rules.AllowPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// hasDatePattern detects YYYY/M/D or YYYY-MM-DD (with or without
// leading zeros) with year 2000-2099, month 1-12, day 1-31.
func hasDatePattern(path string) bool {
	if m := slashDate.FindStringSubmatch(path); m != nil && validDate(m[2], m[3]) {
		return true
	}
	if m := dashDate.FindStringSubmatch(path); m != nil && validDate(m[2], m[3]) {
		return true
	}
	return false
}

func validDate(month, day string) bool {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}
