package signal

import (
	"sort"

	"oslobors-bot/internal/types"
)

// topArticles is how many headlines the report shows.
const topArticles = 3

// Thresholds classify an overall score into a signal. Boundaries are
// inclusive: a score exactly at a threshold produces BULL/BEAR, not FLAT.
type Thresholds struct {
	Bull float64
	Bear float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Bull: 0.2, Bear: -0.2}
}

// Aggregate reduces per-article scores to one overall score: the
// arithmetic mean, or 0.0 for an empty run. Empty input is the defined
// "no signal" state, not an error.
func Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// Classify maps an overall score to a discrete signal.
func Classify(overall float64, th Thresholds) types.Signal {
	if overall >= th.Bull {
		return types.SignalBull
	}
	if overall <= th.Bear {
		return types.SignalBear
	}
	return types.SignalFlat
}

// Rank orders articles by descending absolute score and keeps the first n.
// The sort is stable so equal magnitudes keep their original order. The
// input is not modified.
func Rank(scored []types.ScoredArticle, n int) []types.ScoredArticle {
	ranked := make([]types.ScoredArticle, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return abs(ranked[i].Score) > abs(ranked[j].Score)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Build runs aggregation, classification and ranking over one scored set.
func Build(scored []types.ScoredArticle, th Thresholds) types.AggregateResult {
	scores := make([]float64, len(scored))
	for i, s := range scored {
		scores[i] = s.Score
	}
	overall := Aggregate(scores)
	return types.AggregateResult{
		OverallScore: overall,
		Signal:       Classify(overall, th),
		TopArticles:  Rank(scored, topArticles),
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
