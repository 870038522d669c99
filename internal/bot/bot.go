// Package bot is the Telegram adapter: a long-polling loop that drives the
// same services as the HTTP API.
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// Bot wires the Telegram API to the service layer. All state between updates
// lives in per-chat sessions; the services stay the single source of truth.
type Bot struct {
	api      *tgbotapi.BotAPI
	store    portsrepo.Store
	services *portssvc.ServiceContainer
	logger   *slog.Logger
	sessions *sessionStore
}

// New creates the bot over an authorized Telegram API client.
func New(api *tgbotapi.BotAPI, store portsrepo.Store, sc *portssvc.ServiceContainer, logger *slog.Logger) *Bot {
	return &Bot{
		api:      api,
		store:    store,
		services: sc,
		logger:   logger,
		sessions: newSessionStore(),
	}
}

// Run long-polls Telegram for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started", slog.String("bot_username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopped")
			return
		case upd := <-updates:
			b.handleUpdate(middleware.ContextWithLogger(ctx, b.logger), upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		if !upd.Message.Chat.IsPrivate() {
			return
		}
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}
