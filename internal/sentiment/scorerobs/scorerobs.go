package scorerobs

import (
	"context"

	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/trace"
	"oslobors-bot/internal/types"
)

// observableScorer wraps a TextScorer with logging and tracing
type observableScorer struct {
	scorer interfaces.TextScorer
}

// Compile-time interface check
var _ interfaces.TextScorer = (*observableScorer)(nil)

// Wrap wraps a text scorer with observability middleware
func Wrap(scorer interfaces.TextScorer) interfaces.TextScorer {
	return &observableScorer{scorer: scorer}
}

func (os *observableScorer) Score(ctx context.Context, text string) (types.Judgment, error) {
	ctx, span := trace.StartSpan(ctx, "scorer.Score")
	defer span.End()

	j, err := os.scorer.Score(ctx, text)
	if err != nil {
		logger.ErrorWithErr(ctx, "Text scoring failed", err, "chars", len(text))
		return types.Judgment{}, err
	}

	logger.Debug(ctx, "Text scored",
		"polarity", j.Polarity.String(),
		"confidence", j.Confidence,
		"chars", len(text),
	)
	return j, nil
}
