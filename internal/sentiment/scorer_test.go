package sentiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"oslobors-bot/internal/types"
)

// scorerFunc adapts a function to the TextScorer interface for tests.
type scorerFunc func(ctx context.Context, text string) (types.Judgment, error)

func (f scorerFunc) Score(ctx context.Context, text string) (types.Judgment, error) {
	return f(ctx, text)
}

func fixedJudgment(j types.Judgment) scorerFunc {
	return func(ctx context.Context, text string) (types.Judgment, error) {
		return j, nil
	}
}

func TestScoreBothFieldsEmpty(t *testing.T) {
	a := NewArticleScorer(fixedJudgment(types.Judgment{Polarity: types.PolarityPositive, Confidence: 1}), DefaultWeights())

	got, err := a.Score(context.Background(), types.NewsItem{Title: "   ", Description: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != 0.0 {
		t.Errorf("Expected exactly 0.0 for empty item, got %f", got)
	}
}

func TestScoreTitleOnly(t *testing.T) {
	a := NewArticleScorer(fixedJudgment(types.Judgment{Polarity: types.PolarityNegative, Confidence: 0.9}), DefaultWeights())

	got, err := a.Score(context.Background(), types.NewsItem{Title: "Børsen stuper"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Only the title carries weight, so the score is the signed judgment.
	if math.Abs(got-(-0.9)) > 1e-9 {
		t.Errorf("Expected -0.9, got %f", got)
	}
}

func TestScoreWeightsTitleTwice(t *testing.T) {
	s := scorerFunc(func(ctx context.Context, text string) (types.Judgment, error) {
		if text == "Børsen stuper" {
			return types.Judgment{Polarity: types.PolarityNegative, Confidence: 1.0}, nil
		}
		return types.Judgment{Polarity: types.PolarityPositive, Confidence: 1.0}, nil
	})
	a := NewArticleScorer(s, DefaultWeights())

	got, err := a.Score(context.Background(), types.NewsItem{
		Title:       "Børsen stuper",
		Description: "Analytikere venter bedring",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// (-1*2 + 1*1) / 3
	want := -1.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

func TestScoreOtherPolarityIsNeutral(t *testing.T) {
	a := NewArticleScorer(fixedJudgment(types.Judgment{Polarity: types.PolarityOther, Confidence: 0.99}), DefaultWeights())

	got, err := a.Score(context.Background(), types.NewsItem{Title: "Markedsoppdatering"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != 0.0 {
		t.Errorf("Expected 0.0 for unrecognized polarity, got %f", got)
	}
}

func TestScoreAllSkipsFailingItems(t *testing.T) {
	s := scorerFunc(func(ctx context.Context, text string) (types.Judgment, error) {
		if text == "ødelagt" {
			return types.Judgment{}, errors.New("inference failed")
		}
		return types.Judgment{Polarity: types.PolarityPositive, Confidence: 0.5}, nil
	})
	a := NewArticleScorer(s, DefaultWeights())

	scored := a.ScoreAll(context.Background(), []types.NewsItem{
		{Title: "Børsen stiger"},
		{Title: "ødelagt"},
		{Title: "Oljeprisen opp"},
	})
	if len(scored) != 2 {
		t.Fatalf("Expected failing item to be skipped, got %d scored", len(scored))
	}
	for _, sc := range scored {
		if sc.Item.Title == "ødelagt" {
			t.Error("Expected failing item to be absent from results")
		}
	}
}
