package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

// scrapeSource extracts news items from an HTML page for sources that do
// not offer a usable feed. The source's CSS selectors locate the item
// container and its fields.
func (f *Fetcher) scrapeSource(ctx context.Context, src config.Source) ([]types.NewsItem, error) {
	var items []types.NewsItem

	c := colly.NewCollector(
		// Both forms so hosts with explicit ports stay in scope.
		colly.AllowedDomains(allowedHosts(src.URL)...),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	sel := src.Selectors
	c.OnHTML(sel.Item, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(sel.Title))
		if title == "" {
			return
		}

		link := e.ChildAttr(sel.Link, "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = baseOf(src.URL) + "/" + strings.TrimPrefix(link, "/")
		}

		items = append(items, types.NewsItem{
			Source:      src.Name,
			Title:       title,
			Link:        link,
			Description: strings.TrimSpace(e.ChildText(sel.Description)),
			Published:   strings.TrimSpace(e.ChildText(sel.Published)),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scrape error", err, "source", src.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", src.URL, err)
	}
	c.Wait()

	return items, nil
}

func allowedHosts(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	if u.Host == u.Hostname() {
		return []string{u.Hostname()}
	}
	return []string{u.Hostname(), u.Host}
}

func baseOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
