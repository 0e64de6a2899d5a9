package curation

import (
	"sort"
	"strings"
	"unicode/utf8"

	"NewsCurator/internal/domain"
)

const minBriefSentenceChars = 30

// BuildBrief derives executive-brief bullets from the curated batch:
// items are scored by source tier and preview presence, the top entries
// are capped to two sentences each.
func BuildBrief(sectors []domain.CuratedSector, max int) []string {
	if max <= 0 {
		max = 5
	}

	type scored struct {
		item   domain.CuratedItem
		points int
		order  int
	}
	var candidates []scored
	for _, sector := range sectors {
		for _, item := range sector.Items {
			candidates = append(candidates, scored{
				item:   item,
				points: scoreItem(item),
				order:  len(candidates),
			})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].points != candidates[j].points {
			return candidates[i].points > candidates[j].points
		}
		return candidates[i].order < candidates[j].order
	})

	var bullets []string
	for _, candidate := range candidates {
		if len(bullets) >= max {
			break
		}
		capped := capSentences(candidate.item.Preview, 2)
		if capped == "" {
			continue
		}
		bullets = append(bullets, strings.TrimSuffix(candidate.item.Title, ".")+". "+capped)
	}
	return bullets
}

func scoreItem(item domain.CuratedItem) int {
	points := 0
	tier := strings.ToUpper(item.SourceTier)
	switch {
	case strings.Contains(tier, "T1") || strings.Contains(tier, "TIER 1"):
		points += 6
	case strings.Contains(tier, "T2") || strings.Contains(tier, "TIER 2"):
		points += 4
	case strings.Contains(tier, "T3") || strings.Contains(tier, "TIER 3"):
		points += 2
	}
	if item.Preview != "" {
		points += 2
	}
	return points
}

// capSentences keeps the first maxSentences substantive sentences.
func capSentences(text string, maxSentences int) string {
	var kept []string
	for _, sentence := range SplitSentences(text) {
		if utf8.RuneCountInString(sentence) <= minBriefSentenceChars {
			continue
		}
		kept = append(kept, sentence)
		if len(kept) == maxSentences {
			break
		}
	}
	return strings.Join(kept, " ")
}
