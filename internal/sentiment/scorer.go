package sentiment

import (
	"context"
	"fmt"
	"strings"

	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

// Weights controls how much each article field contributes to the score.
type Weights struct {
	Title       float64
	Description float64
}

// DefaultWeights weight the title twice as heavily as the description.
func DefaultWeights() Weights {
	return Weights{Title: 2.0, Description: 1.0}
}

// ArticleScorer computes one weighted sentiment score per news item. The
// underlying TextScorer is acquired once and shared read-only across all
// scoring calls of a run.
type ArticleScorer struct {
	scorer  interfaces.TextScorer
	weights Weights
}

func NewArticleScorer(scorer interfaces.TextScorer, weights Weights) *ArticleScorer {
	return &ArticleScorer{scorer: scorer, weights: weights}
}

// Score returns the weighted sentiment of one item in [-1, 1]. An empty
// field contributes weight zero and is never sent to the scorer; when both
// fields are empty the score is exactly 0.
func (a *ArticleScorer) Score(ctx context.Context, item types.NewsItem) (float64, error) {
	var sum, totalWeight float64

	if title := strings.TrimSpace(item.Title); title != "" {
		j, err := a.scorer.Score(ctx, title)
		if err != nil {
			return 0, fmt.Errorf("scoring title: %w", err)
		}
		sum += j.Signed() * a.weights.Title
		totalWeight += a.weights.Title
	}

	if desc := strings.TrimSpace(item.Description); desc != "" {
		j, err := a.scorer.Score(ctx, desc)
		if err != nil {
			return 0, fmt.Errorf("scoring description: %w", err)
		}
		sum += j.Signed() * a.weights.Description
		totalWeight += a.weights.Description
	}

	if totalWeight == 0 {
		return 0.0, nil
	}
	return sum / totalWeight, nil
}

// ScoreAll scores every item of a snapshot. An item that fails to score is
// logged and skipped; one bad item does not abort the run.
func (a *ArticleScorer) ScoreAll(ctx context.Context, items []types.NewsItem) []types.ScoredArticle {
	scored := make([]types.ScoredArticle, 0, len(items))
	for _, item := range items {
		s, err := a.Score(ctx, item)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to score article", err, "title", item.Title, "source", item.Source)
			continue
		}
		scored = append(scored, types.ScoredArticle{Item: item, Score: s})
	}
	return scored
}
