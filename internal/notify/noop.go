package notify

import (
	"context"

	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

// NoopNotifier logs the message instead of delivering it. Used when no
// messaging channel is configured and in tests.
type NoopNotifier struct{}

var _ interfaces.Notifier = (*NoopNotifier)(nil)

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Notify(ctx context.Context, message string) types.DeliveryStatus {
	logger.Info(ctx, "Notification (not delivered, no channel configured)", "message", message)
	return types.DeliveryStatus{Delivered: false}
}
