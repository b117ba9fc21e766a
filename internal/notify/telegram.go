package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/types"
)

// TelegramNotifier sends run summaries to a Telegram chat. Delivery is
// best-effort: failures end up in the returned status for the caller to
// log, never as an error.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

var _ interfaces.Notifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, message string) types.DeliveryStatus {
	msg := tgbotapi.NewMessage(t.chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.api.Send(msg); err != nil {
		logger.ErrorWithErr(ctx, "Telegram send failed", err, "chat_id", t.chatID)
		return types.DeliveryStatus{Err: err}
	}
	return types.DeliveryStatus{Delivered: true}
}
