package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"oslobors-bot/internal/types"
)

// ParseRSS parses a raw syndication document into normalized news items.
// Missing subfields default to empty strings; the published timestamp is
// kept in the source's own format. Malformed markup returns an error the
// caller treats as zero items from that source.
func ParseRSS(raw []byte, source string) ([]types.NewsItem, error) {
	fp := gofeed.NewParser()
	parsed, err := fp.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]types.NewsItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, types.NewsItem{
			Source:      source,
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Description: flattenHTML(it.Description),
			Published:   strings.TrimSpace(it.Published),
		})
	}
	return items, nil
}

// flattenHTML reduces an RSS description, which is often an HTML fragment,
// to plain text with collapsed whitespace.
func flattenHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
