package signal

import (
	"fmt"
	"strings"

	"oslobors-bot/internal/types"
)

// FormatSummary renders the human-readable run summary sent to the
// notifier: overall score to three decimals, the signal, and the most
// extreme headlines.
func FormatSummary(res types.AggregateResult) string {
	var lines []string
	lines = append(lines, "📰 *OsloBot sentiment*")
	lines = append(lines, fmt.Sprintf("• Overall sentiment score: `%.3f`", res.OverallScore))
	lines = append(lines, fmt.Sprintf("• Trade signal: *`%s`*", res.Signal))
	lines = append(lines, "")
	lines = append(lines, "_Top headlines:_")

	for _, a := range res.TopArticles {
		lines = append(lines, fmt.Sprintf("- (%s) `%+.3f` – %s", a.Item.Source, a.Score, strings.TrimSpace(a.Item.Title)))
	}
	return strings.Join(lines, "\n")
}

// FormatNoData is the explicit notice for a run with nothing to score.
func FormatNoData() string {
	return "📉 *OsloBot*: No relevant news items found. Signal: `FLAT` (no trade)."
}

// FormatMorning renders the morning price-proxy summary.
func FormatMorning(asiaPct, usPct float64, dir Direction, raw float64) string {
	var b strings.Builder
	b.WriteString("📊 *Morning Signal*\n")
	fmt.Fprintf(&b, "Nikkei proxy: %.2f%%\n", asiaPct)
	fmt.Fprintf(&b, "S&P 500 proxy: %.2f%%\n", usPct)
	fmt.Fprintf(&b, "➡️ Signal: *%s* (raw=%.4f)", dir, raw)
	return b.String()
}
