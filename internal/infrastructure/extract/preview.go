// Package extract derives preview candidates from article pages for
// items whose feed entry carries none. It feeds the curation pipeline
// but makes no classification decisions itself.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"NewsCurator/internal/curation"
)

const minParagraphChars = 80

var boilerplate = []string{
	"Comprehensive up-to-date news coverage, aggregated from sources all over the world by Google News",
	"Comprehensive up-to-date news coverage, aggregated from sources all over the world by Google News.",
}

var bylinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*by\s+[a-z].{0,80}$`),
	regexp.MustCompile(`^\s*por\s+[a-záéíóúñ].{0,80}$`),
	regexp.MustCompile(`^\s*reuters\s*$`),
	regexp.MustCompile(`^\s*ap\s*$`),
	regexp.MustCompile(`^\s*afp\s*$`),
}

var datelinePattern = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][A-Za-zÁÉÍÓÚÑáéíóúñ\s.\-]{2,40}\s+\([^)]+\)\s+[-—]\s+`)

var noiseMarkers = []string{
	"cookies", "subscribe", "suscríb", "sign up", "iniciar sesión",
	"accept all", "privacy policy", "terms of use", "newsletter",
	"read more", "cookie policy", "all rights reserved",
	"reset password", "wrong login information",
	"security service to protect", "performing security verification",
	"just a moment", "skip to content",
}

// FromHTML extracts a preview candidate from an article HTML page, or
// an empty string when nothing substantive survives the filters.
func FromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) < 2 {
		return FromText(doc.Find("body").Text())
	}
	return buildPreview(paragraphs)
}

// FromText extracts a preview candidate from plain article text, the
// shape returned by remote reader endpoints.
func FromText(text string) string {
	paragraphs := splitParagraphs(text, "\n\n")
	if len(paragraphs) < 2 {
		paragraphs = splitParagraphs(text, "\n")
	}
	return buildPreview(paragraphs)
}

func splitParagraphs(text, separator string) []string {
	var paragraphs []string
	for _, part := range strings.Split(text, separator) {
		if clean := strings.TrimSpace(part); clean != "" {
			paragraphs = append(paragraphs, clean)
		}
	}
	return paragraphs
}

func buildPreview(paragraphs []string) string {
	paragraph := firstSubstantive(paragraphs)
	if paragraph == "" {
		return ""
	}

	sentences := curation.SplitSentences(paragraph)
	preview := paragraph
	if len(sentences) >= 3 {
		preview = strings.Join(sentences[:3], " ")
	} else if len(sentences) >= 2 {
		preview = strings.Join(sentences[:2], " ")
	}

	preview = curation.CleanSpaces(preview)
	for _, marker := range boilerplate {
		preview = strings.TrimSpace(strings.ReplaceAll(preview, marker, ""))
	}
	if looksLikeNoise(preview) {
		return ""
	}
	return preview
}

// firstSubstantive returns the first paragraph long enough to stand as
// a preview that is neither boilerplate, a byline, nor page noise.
func firstSubstantive(paragraphs []string) string {
	for _, paragraph := range paragraphs {
		clean := curation.CleanSpaces(paragraph)
		if clean == "" || utf8.RuneCountInString(clean) < minParagraphChars {
			continue
		}
		if isBoilerplate(clean) || isByline(clean) || looksLikeNoise(clean) {
			continue
		}
		if len(curation.SplitSentences(clean)) < 2 {
			continue
		}
		return clean
	}
	return ""
}

func isBoilerplate(text string) bool {
	for _, marker := range boilerplate {
		if text == marker {
			return true
		}
	}
	return false
}

func isByline(text string) bool {
	if datelinePattern.MatchString(text) {
		return true
	}
	low := strings.ToLower(text)
	for _, pattern := range bylinePatterns {
		if pattern.MatchString(low) {
			return true
		}
	}
	return false
}

func looksLikeNoise(text string) bool {
	low := strings.ToLower(text)
	if strings.Count(low, "http") >= 2 {
		return true
	}
	if strings.Count(low, " |") >= 3 || strings.Count(low, " - ") >= 6 {
		return true
	}
	if strings.Contains(low, "title:") || strings.Contains(low, "url source:") || strings.Contains(low, "markdown content:") {
		return true
	}
	for _, marker := range noiseMarkers {
		if strings.Contains(low, marker) {
			return true
		}
	}
	return false
}
