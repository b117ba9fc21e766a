package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) " +
	"Version/17.0 Safari/605.1.15"

// Fetcher retrieves news items from a fixed, ordered list of sources.
type Fetcher struct {
	sources []config.Source
	timeout time.Duration
	client  *http.Client
}

// NewFetcher creates a fetcher over the configured sources. The per-source
// timeout covers the whole request.
func NewFetcher(sources []config.Source, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		sources: sources,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchAll retrieves items from every source. Sources are fetched
// concurrently but results are merged in declared order, so downstream
// first-occurrence-wins dedup is reproducible regardless of completion
// order. A failing source is logged and contributes zero items; FetchAll
// never aborts the remaining sources.
func (f *Fetcher) FetchAll(ctx context.Context) []types.NewsItem {
	results := make([][]types.NewsItem, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src config.Source) {
			defer wg.Done()
			items, err := f.fetchSource(ctx, src)
			if err != nil {
				logger.ErrorWithErr(ctx, "Source fetch failed", err, "source", src.Name)
				return
			}
			results[i] = items
			logger.Info(ctx, "Source fetched", "source", src.Name, "items", len(items))
		}(i, src)
	}
	wg.Wait()

	var all []types.NewsItem
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

func (f *Fetcher) fetchSource(ctx context.Context, src config.Source) ([]types.NewsItem, error) {
	if src.Type == "scrape" {
		return f.scrapeSource(ctx, src)
	}

	raw, err := f.get(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return ParseRSS(raw, src.Name)
}

// get issues a GET with a browser User-Agent; some feed endpoints reject
// the Go default.
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	safe, err := safeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("malformed url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, safe, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// safeURL percent-encodes the path and query of a feed URL so upstream
// addresses with non-ASCII characters (ø, å) survive the request. Query
// separators and commas stay literal.
func safeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.RawPath = ""
	u.RawQuery = percentEncode(u.RawQuery, "=&,")
	return u.String(), nil
}

func percentEncode(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
