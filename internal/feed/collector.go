package feed

import (
	"context"
	"time"

	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

// Collector runs one fetch+filter+dedup pass and produces an immutable
// snapshot of the relevant news.
type Collector struct {
	fetcher *Fetcher
	filter  *RelevanceFilter
}

func NewCollector(fetcher *Fetcher, filter *RelevanceFilter) *Collector {
	return &Collector{fetcher: fetcher, filter: filter}
}

// Collect fetches all sources, keeps the relevant items and removes
// duplicate stories. The returned snapshot always satisfies
// Count == len(Items).
func (c *Collector) Collect(ctx context.Context) types.NewsSnapshot {
	fetched := c.fetcher.FetchAll(ctx)

	relevant := make([]types.NewsItem, 0, len(fetched))
	for _, it := range fetched {
		if c.filter.Match(it) {
			relevant = append(relevant, it)
		}
	}

	deduped := Dedupe(relevant)

	logger.Info(ctx, "News collected",
		"fetched", len(fetched),
		"relevant", len(relevant),
		"deduped", len(deduped),
	)

	return types.NewsSnapshot{
		FetchedAt: time.Now().Unix(),
		Count:     len(deduped),
		Items:     deduped,
	}
}
