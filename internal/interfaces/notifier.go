package interfaces

import (
	"context"

	"oslobors-bot/internal/types"
)

// Notifier delivers a message best-effort. It never returns an error to the
// caller; delivery failures are captured in the returned status for logging.
type Notifier interface {
	Notify(ctx context.Context, message string) types.DeliveryStatus
}
