package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// Telegram expects every callback to be answered.
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", slog.String("error", err.Error()))
	}
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	data := q.Data

	switch data {
	case "menu_operation":
		b.sessions.reset(chatID)
		b.replyWithKeyboard(chatID, "Pick an operation:", kindKeyboard())
		return
	case "menu_balance":
		b.showBalances(ctx, chatID)
		return
	case "menu_debts":
		b.showDebts(ctx, chatID)
		return
	case "menu_report":
		b.replyWithKeyboard(chatID, "Report for which period?", periodKeyboard())
		return
	case "menu_history":
		b.showHistory(ctx, chatID, q.From.ID)
		return
	case cbCancel:
		b.sessions.reset(chatID)
		b.replyWithKeyboard(chatID, "Cancelled.", mainMenuKeyboard())
		return
	case cbSkip:
		sess := b.sessions.get(chatID)
		if sess.step != stepComment {
			return
		}
		sess.comment = ""
		b.askConfirm(ctx, chatID, sess)
		return
	case cbConfirm:
		sess := b.sessions.get(chatID)
		if sess.kind == "" || sess.amount <= 0 {
			b.replyWithKeyboard(chatID, "Nothing to confirm. Start over:", mainMenuKeyboard())
			return
		}
		b.executeOperation(ctx, chatID, q.From.ID, sess)
		b.sessions.reset(chatID)
		return
	}

	prefix, value, ok := strings.Cut(data, ":")
	if !ok {
		return
	}

	switch prefix {
	case cbKind:
		b.onKindChosen(ctx, chatID, value)
	case cbEntity:
		b.onEntityChosen(ctx, chatID, value)
	case cbTarget:
		b.onTargetChosen(chatID, value)
	case cbDebt:
		sess := b.sessions.get(chatID)
		sess.debtID = value
		sess.step = stepRepayAmount
		b.reply(chatID, "How much to repay?")
	case cbPeriod:
		b.showReport(ctx, chatID, domain.ReportPeriod(value))
	}
}

func (b *Bot) onKindChosen(ctx context.Context, chatID int64, value string) {
	sess := b.sessions.get(chatID)
	sess.kind = value

	entities, err := b.services.Entity.ListEntities(ctx)
	if err != nil || len(entities) == 0 {
		b.reply(chatID, "No entities configured yet, ask an admin to create one.")
		b.sessions.reset(chatID)
		return
	}
	b.replyWithKeyboard(chatID, "Which entity?", entityKeyboard(entities, cbEntity))
}

func (b *Bot) onEntityChosen(ctx context.Context, chatID int64, value string) {
	sess := b.sessions.get(chatID)
	sess.entityID = value

	if domain.OperationKind(sess.kind) == domain.OpLoan {
		entities, err := b.services.Entity.ListEntities(ctx)
		if err != nil {
			b.reply(chatID, "Something went wrong, try again later.")
			b.sessions.reset(chatID)
			return
		}
		// The lender cannot lend to itself.
		others := entities[:0:0]
		for _, e := range entities {
			if e.EntityID != sess.entityID {
				others = append(others, e)
			}
		}
		if len(others) == 0 {
			b.reply(chatID, "A loan needs a second entity.")
			b.sessions.reset(chatID)
			return
		}
		b.replyWithKeyboard(chatID, "Lend to which entity?", entityKeyboard(others, cbTarget))
		return
	}

	sess.step = stepAmount
	b.reply(chatID, "Enter the amount:")
}

func (b *Bot) onTargetChosen(chatID int64, value string) {
	sess := b.sessions.get(chatID)
	sess.targetID = value
	sess.step = stepAmount
	b.reply(chatID, "Enter the amount:")
}

func (b *Bot) showReport(ctx context.Context, chatID int64, period domain.ReportPeriod) {
	report, err := b.services.Reporting.Summary(ctx, period)
	if err != nil {
		b.logger.Error("Failed to build report", slog.String("error", err.Error()))
		b.reply(chatID, "Failed to build the report.")
		return
	}
	b.reply(chatID, formatReport(*report))
}
