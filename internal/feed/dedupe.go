package feed

import "oslobors-bot/internal/types"

// Dedupe removes items reporting the same story, keeping the first
// occurrence in order. Identity is the item key (link, falling back to
// title); two items with the same key but different source or description
// are the same story. Runs in linear time over a seen-set.
func Dedupe(items []types.NewsItem) []types.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]types.NewsItem, 0, len(items))
	for _, it := range items {
		key := it.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
