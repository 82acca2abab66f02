package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Alexander2203/my-project-fleetcare/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// deliveryTimeout таймаут внешнего вызова Telegram API
const deliveryTimeout = 5 * time.Second

// TelegramNotifier доставляет уведомления водителям через Telegram.
// Токен бота — общая настройка процесса, задаётся один раз при старте.
type TelegramNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

// NewTelegramNotifier создаёт нотификатор. Пустой токен не ошибка:
// нотификатор работает вхолостую, только логируя пропуски доставки.
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("Telegram token is not set, notifications will not be delivered")
		return &TelegramNotifier{logger: logger}, nil
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, logger: logger}, nil
}

// Notify отправляет водителю сообщение в Telegram. Отсутствие токена или
// chat_id у водителя — не ошибка, доставка просто пропускается.
func (n *TelegramNotifier) Notify(ctx context.Context, driver *model.Driver, text string) error {
	if n.bot == nil {
		n.logger.Info("Notification skipped: telegram token is not set",
			zap.Int64("driver_id", driver.ID),
		)
		return nil
	}

	if driver.ChatID == nil {
		n.logger.Info("Notification skipped: driver has no chat_id",
			zap.Int64("driver_id", driver.ID),
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *driver.ChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Info("Notification delivered",
		zap.Int64("driver_id", driver.ID),
		zap.Int64("chat_id", *driver.ChatID),
	)

	return nil
}
