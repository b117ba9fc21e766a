package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oslobors-bot/internal/api"
	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/types"
)

const defaultInferenceEndpoint = "https://api-inference.huggingface.co"

// HFScorer scores text through a hosted inference endpoint running a
// sentiment classification model. It is the adapter boundary where the
// model's raw label vocabulary is normalized into a tagged Judgment;
// nothing downstream re-inspects raw labels.
type HFScorer struct {
	client *api.Client
	model  string
}

var _ interfaces.TextScorer = (*HFScorer)(nil)

// NewHFScorer builds the inference client. A missing API token means the
// scorer cannot be constructed; the run must surface that, not silently
// fall back.
func NewHFScorer(endpoint, model, apiToken string) (*HFScorer, error) {
	if model == "" {
		return nil, errors.New("sentiment model not configured")
	}
	if apiToken == "" {
		return nil, errors.New("sentiment inference API token missing")
	}
	if endpoint == "" {
		endpoint = defaultInferenceEndpoint
	}

	client := api.NewClient(
		api.WithBaseURL(strings.TrimSuffix(endpoint, "/")),
		api.WithHeader("Authorization", "Bearer "+apiToken),
		api.WithTimeout(30*time.Second),
	)
	return &HFScorer{client: client, model: model}, nil
}

type inferenceLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Score classifies one text. Empty text is a defined no-op judgment, never
// a request.
func (h *HFScorer) Score(ctx context.Context, text string) (types.Judgment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Judgment{Polarity: types.PolarityOther}, nil
	}

	body := map[string]any{"inputs": text}
	var out [][]inferenceLabel
	if err := h.client.PostJSON(ctx, "/models/"+h.model, body, &out); err != nil {
		return types.Judgment{}, fmt.Errorf("inference request failed: %w", err)
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return types.Judgment{}, errors.New("inference returned no labels")
	}

	best := out[0][0]
	for _, cand := range out[0][1:] {
		if cand.Score > best.Score {
			best = cand
		}
	}
	return normalizeLabel(best.Label, best.Score), nil
}

// normalizeLabel maps the model's label vocabulary to a tagged judgment.
// Handles both POSITIVE/NEGATIVE and LABEL_0/LABEL_1 style heads; anything
// unrecognized is Other with zero effect on scores.
func normalizeLabel(label string, confidence float64) types.Judgment {
	l := strings.ToUpper(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "NEG") || strings.HasSuffix(l, "0"):
		return types.Judgment{Polarity: types.PolarityNegative, Confidence: confidence}
	case strings.Contains(l, "POS") || strings.HasSuffix(l, "1"):
		return types.Judgment{Polarity: types.PolarityPositive, Confidence: confidence}
	default:
		return types.Judgment{Polarity: types.PolarityOther}
	}
}
