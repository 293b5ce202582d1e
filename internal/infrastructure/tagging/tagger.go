// Package tagging derives representative tags from extracted text by
// word-frequency ranking.
package tagging

import (
	"sort"
	"strings"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

// minTokenLen filters stop-word-like noise without a stop-word list.
// Tokens of this length or shorter never become tags.
const minTokenLen = 3

type Tagger struct {
	maxTags int
}

func NewTagger() *Tagger {
	return &Tagger{maxTags: domain.MaxTags}
}

// Derive returns at most MaxTags distinct lowercased tokens ordered by
// descending frequency. Equal counts keep first-seen order: the sort is
// stable, so output is deterministic for identical input.
func (t *Tagger) Derive(text string) []string {
	type entry struct {
		token string
		count int
	}

	counts := make(map[string]int)
	order := make([]entry, 0, 32)

	for _, raw := range strings.Fields(text) {
		token := strings.ToLower(raw)
		if len(token) <= minTokenLen {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, entry{token: token})
		}
		counts[token]++
	}
	if len(order) == 0 {
		return []string{}
	}

	for i := range order {
		order[i].count = counts[order[i].token]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	limit := t.maxTags
	if len(order) < limit {
		limit = len(order)
	}
	tags := make([]string, 0, limit)
	for _, e := range order[:limit] {
		tags = append(tags, e.token)
	}
	return tags
}
