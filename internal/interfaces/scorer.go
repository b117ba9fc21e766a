package interfaces

import (
	"context"

	"oslobors-bot/internal/types"
)

// TextScorer classifies one text string. The model behind it may be an
// expensive shared resource; implementations must be safe for reuse across
// all scoring calls of a run.
type TextScorer interface {
	Score(ctx context.Context, text string) (types.Judgment, error)
}
