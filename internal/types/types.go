package types

// Signal is the discrete trading signal derived from aggregated news sentiment.
type Signal string

const (
	SignalBull Signal = "BULL"
	SignalBear Signal = "BEAR"
	SignalFlat Signal = "FLAT"
)

// NewsItem is one normalized news item from a configured source.
// Published keeps the raw source-format timestamp.
type NewsItem struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Published   string `json:"published"`
}

// Key returns the dedup identity of the item: link when present, else title.
func (n NewsItem) Key() string {
	if n.Link != "" {
		return n.Link
	}
	return n.Title
}

// NewsSnapshot is the immutable result of one fetch+filter+dedup run.
// Invariant: Count == len(Items) and Items carry no duplicate keys.
type NewsSnapshot struct {
	FetchedAt int64      `json:"fetched_at"`
	Count     int        `json:"count"`
	Items     []NewsItem `json:"items"`
}

// ScoredArticle pairs a news item with its weighted sentiment score in [-1, 1].
type ScoredArticle struct {
	Item  NewsItem `json:"item"`
	Score float64  `json:"score"`
}

// AggregateResult is the outcome of one scoring run.
type AggregateResult struct {
	OverallScore float64         `json:"overall_score"`
	Signal       Signal          `json:"signal"`
	TopArticles  []ScoredArticle `json:"top_articles"`
}

// Polarity is the normalized label of a text classification.
type Polarity int

const (
	PolarityOther Polarity = iota
	PolarityPositive
	PolarityNegative
)

func (p Polarity) String() string {
	switch p {
	case PolarityPositive:
		return "POSITIVE"
	case PolarityNegative:
		return "NEGATIVE"
	default:
		return "OTHER"
	}
}

// Judgment is the tagged result of scoring one text. The raw model label is
// normalized into Polarity exactly once, at the scorer adapter boundary.
type Judgment struct {
	Polarity   Polarity
	Confidence float64 // in [0, 1]
}

// Signed maps the judgment to a signed magnitude: negative labels score
// -confidence, positive labels +confidence, anything else 0.
func (j Judgment) Signed() float64 {
	switch j.Polarity {
	case PolarityPositive:
		return j.Confidence
	case PolarityNegative:
		return -j.Confidence
	default:
		return 0.0
	}
}

// DeliveryStatus reports the outcome of a notification attempt. Notifier
// failures are carried here for logging, never raised to the caller.
type DeliveryStatus struct {
	Delivered bool
	Err       error
}
