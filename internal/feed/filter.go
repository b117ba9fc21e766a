package feed

import (
	"strings"

	"oslobors-bot/internal/types"
)

// RelevanceFilter selects items relevant to the target market. An item
// passes when ANY keyword appears as a case-insensitive substring of its
// title and description; matching is deliberately substring, not
// whole-word, since compound Norwegian headlines ("børsfall") would never
// match whole words.
type RelevanceFilter struct {
	keywords []string
}

// NewRelevanceFilter builds a filter over the configured keyword list.
func NewRelevanceFilter(keywords []string) *RelevanceFilter {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &RelevanceFilter{keywords: lowered}
}

// Match reports whether the item is relevant.
func (f *RelevanceFilter) Match(item types.NewsItem) bool {
	text := strings.ToLower(item.Title + " " + item.Description)
	for _, k := range f.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
