package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"oslobors-bot/internal/api"
	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
)

const chartBaseURL = "https://query1.finance.yahoo.com"

// YahooFeed reads daily closes from Yahoo's public chart endpoint.
type YahooFeed struct {
	client *api.Client
}

var _ interfaces.PriceFeed = (*YahooFeed)(nil)

func NewYahooFeed() *YahooFeed {
	return &YahooFeed{
		client: api.NewClient(
			api.WithBaseURL(chartBaseURL),
			api.WithTimeout(10*time.Second),
			api.WithHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15"),
		),
	}
}

// newYahooFeedWithBase is used by tests to point at a stub server.
func newYahooFeedWithBase(base string) *YahooFeed {
	return &YahooFeed{
		client: api.NewClient(api.WithBaseURL(base), api.WithTimeout(10*time.Second)),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// LastTwoCloses returns the two most recent daily closes for a symbol,
// oldest first. Trailing null closes (half-finished sessions) are skipped.
func (y *YahooFeed) LastTwoCloses(ctx context.Context, symbol string) (prev, last float64, err error) {
	path := fmt.Sprintf("/v8/finance/chart/%s?range=5d&interval=1d", url.PathEscape(symbol))

	var out chartResponse
	if err := y.client.GetJSON(ctx, path, &out); err != nil {
		return 0, 0, err
	}
	if out.Chart.Error != nil {
		return 0, 0, fmt.Errorf("chart error for %s: %s", symbol, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, 0, fmt.Errorf("no chart data for %s", symbol)
	}

	var closes []float64
	for _, c := range out.Chart.Result[0].Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) < 2 {
		return 0, 0, fmt.Errorf("not enough close data for %s", symbol)
	}
	return closes[len(closes)-2], closes[len(closes)-1], nil
}

// ChangePct is the percent change between two closes.
func ChangePct(prev, last float64) float64 {
	return (last - prev) / prev * 100
}

// FirstAvailable tries each proxy symbol in order until one yields a
// change, mirroring how index proxies are listed by preference.
func FirstAvailable(ctx context.Context, feed interfaces.PriceFeed, symbols []string) (float64, error) {
	var lastErr error
	for _, sym := range symbols {
		prev, last, err := feed.LastTwoCloses(ctx, sym)
		if err != nil {
			logger.Warn(ctx, "Price proxy unavailable", "symbol", sym, "error", err)
			lastErr = err
			continue
		}
		return ChangePct(prev, last), nil
	}
	if lastErr == nil {
		lastErr = errors.New("no proxy symbols configured")
	}
	return 0, fmt.Errorf("all price proxies failed: %w", lastErr)
}
