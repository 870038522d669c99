package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	"github.com/smirnov-vv/ipledger/internal/dto"
)

const historyPageSize = 15

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	// /start may carry an admin invite code; everything else registers with
	// an empty one.
	inviteCode := ""
	if strings.HasPrefix(text, "/start") {
		inviteCode = strings.TrimSpace(strings.TrimPrefix(text, "/start"))
	}

	user, err := b.services.User.GetOrCreateUser(ctx, msg.From.ID, msg.From.UserName, inviteCode)
	if err != nil {
		b.logger.Error("Failed to register user", slog.Int64("user_id", msg.From.ID), slog.String("error", err.Error()))
		b.reply(msg.Chat.ID, "Something went wrong, try again later.")
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		b.sessions.reset(msg.Chat.ID)
		greeting := "Hi, " + user.DisplayName() + "!"
		if user.IsAdmin() {
			greeting += " You are an admin."
		}
		b.replyWithKeyboard(msg.Chat.ID, greeting+"\n\nWhat do you want to do?", mainMenuKeyboard())
	case strings.HasPrefix(text, "/menu"), strings.HasPrefix(text, "/help"):
		b.replyWithKeyboard(msg.Chat.ID, "What do you want to do?", mainMenuKeyboard())
	case strings.HasPrefix(text, "/balance"):
		b.showBalances(ctx, msg.Chat.ID)
	case strings.HasPrefix(text, "/debts"):
		b.showDebts(ctx, msg.Chat.ID)
	case strings.HasPrefix(text, "/report"):
		b.replyWithKeyboard(msg.Chat.ID, "Report for which period?", periodKeyboard())
	case strings.HasPrefix(text, "/history"):
		b.showHistory(ctx, msg.Chat.ID, msg.From.ID)
	default:
		b.handleFlowInput(ctx, msg, text)
	}
}

// handleFlowInput consumes free-text input for whatever step the chat is at.
func (b *Bot) handleFlowInput(ctx context.Context, msg *tgbotapi.Message, text string) {
	sess := b.sessions.get(msg.Chat.ID)

	switch sess.step {
	case stepAmount:
		amount, err := parseAmount(text)
		if err != nil {
			b.reply(msg.Chat.ID, "Enter a positive amount, like 1500 or 1500.50")
			return
		}
		sess.amount = amount
		sess.step = stepComment
		b.replyWithKeyboard(msg.Chat.ID, "Add a comment, or skip:", skipCommentKeyboard())

	case stepComment:
		sess.comment = text
		b.askConfirm(ctx, msg.Chat.ID, sess)

	case stepRepayAmount:
		amount, err := parseAmount(text)
		if err != nil {
			b.reply(msg.Chat.ID, "Enter a positive amount, like 1500 or 1500.50")
			return
		}
		b.executeRepayment(ctx, msg.Chat.ID, msg.From.ID, sess.debtID, amount)
		b.sessions.reset(msg.Chat.ID)

	default:
		b.replyWithKeyboard(msg.Chat.ID, "I did not get that. Pick an action:", mainMenuKeyboard())
	}
}

func (b *Bot) askConfirm(ctx context.Context, chatID int64, sess *session) {
	kind := domain.OperationKind(sess.kind)
	var lines []string
	lines = append(lines, "Confirm the operation:", "", kind.Label())
	if name := b.entityNameByID(ctx, sess.entityID); name != "" {
		lines = append(lines, "Entity: "+name)
	}
	if name := b.entityNameByID(ctx, sess.targetID); name != "" {
		lines = append(lines, "To: "+name)
	}
	lines = append(lines, "Amount: "+formatAmount(sess.amount))
	if sess.comment != "" {
		lines = append(lines, "Comment: "+sess.comment)
	}
	b.replyWithKeyboard(chatID, strings.Join(lines, "\n"), confirmKeyboard())
}

func (b *Bot) entityNameByID(ctx context.Context, entityID string) string {
	if entityID == "" {
		return ""
	}
	entity, err := b.services.Entity.GetEntity(ctx, entityID)
	if err != nil {
		return entityID
	}
	return entity.Name
}

func (b *Bot) showBalances(ctx context.Context, chatID int64) {
	entities, err := b.services.Entity.ListEntities(ctx)
	if err != nil {
		b.logger.Error("Failed to list entities", slog.String("error", err.Error()))
		b.reply(chatID, "Failed to load balances.")
		return
	}
	b.reply(chatID, formatBalances(entities))
}

func (b *Bot) showDebts(ctx context.Context, chatID int64) {
	debts, err := b.services.Debt.ListActiveDebts(ctx)
	if err != nil {
		b.logger.Error("Failed to list debts", slog.String("error", err.Error()))
		b.reply(chatID, "Failed to load debts.")
		return
	}
	if len(debts) == 0 {
		b.reply(chatID, "No open debts.")
		return
	}
	names := b.entityNames(ctx)
	b.replyWithKeyboard(chatID, "Open debts. Pick one to repay:", debtKeyboard(debts, names))
}

func (b *Bot) showHistory(ctx context.Context, chatID int64, userID int64) {
	filter := portsrepo.LedgerFilter{UserID: &userID, Limit: historyPageSize}
	entries, err := b.services.Ledger.ListTransactions(ctx, filter)
	if err != nil {
		b.logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		b.reply(chatID, "Failed to load history.")
		return
	}
	b.reply(chatID, formatHistory(entries))
}

func (b *Bot) entityNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	entities, err := b.services.Entity.ListEntities(ctx)
	if err != nil {
		return names
	}
	for _, e := range entities {
		names[e.EntityID] = e.Name
	}
	return names
}

// executeOperation runs the session's operation through the engine inside
// one unit of work.
func (b *Bot) executeOperation(ctx context.Context, chatID int64, userID int64, sess *session) {
	req := dto.OperationRequest{
		Kind:    domain.OperationKind(sess.kind),
		Amount:  sess.amount,
		Comment: sess.comment,
	}
	if sess.entityID != "" {
		req.EntityID = &sess.entityID
	}
	if sess.targetID != "" {
		req.TargetEntityID = &sess.targetID
	}

	uow, err := b.store.Begin(ctx)
	if err != nil {
		b.logger.Error("Failed to open unit of work", slog.String("error", err.Error()))
		b.reply(chatID, "Something went wrong, try again later.")
		return
	}
	defer uow.Rollback(ctx) //nolint:errcheck // no-op after commit

	txn, err := b.services.Operation.Execute(ctx, uow, userID, req)
	if err != nil {
		b.reply(chatID, operationErrorText(err))
		return
	}
	if err := uow.Commit(ctx); err != nil {
		b.logger.Error("Failed to commit operation", slog.String("error", err.Error()))
		b.reply(chatID, "Something went wrong, try again later.")
		return
	}

	b.reply(chatID, "Done: "+txn.Kind.Label()+" "+formatAmount(txn.Amount))
}

func (b *Bot) executeRepayment(ctx context.Context, chatID int64, userID int64, debtID string, amount int64) {
	uow, err := b.store.Begin(ctx)
	if err != nil {
		b.logger.Error("Failed to open unit of work", slog.String("error", err.Error()))
		b.reply(chatID, "Something went wrong, try again later.")
		return
	}
	defer uow.Rollback(ctx) //nolint:errcheck // no-op after commit

	txn, err := b.services.Operation.RepayDebt(ctx, uow, debtID, userID, amount)
	if err != nil {
		b.reply(chatID, operationErrorText(err))
		return
	}
	if err := uow.Commit(ctx); err != nil {
		b.logger.Error("Failed to commit repayment", slog.String("error", err.Error()))
		b.reply(chatID, "Something went wrong, try again later.")
		return
	}

	b.reply(chatID, "Repaid "+formatAmount(txn.Amount)+".")
}

// operationErrorText turns an engine error into a user-facing message.
func operationErrorText(err error) string {
	var insufficient *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return "Not enough funds: current balance is " + formatAmount(insufficient.Current) + "."
	case errors.Is(err, apperrors.ErrNotFound):
		return "Not found. It may have been removed, start over with /menu."
	case errors.Is(err, apperrors.ErrInvalidState):
		return "This debt is already settled."
	case errors.Is(err, apperrors.ErrValidation):
		return "That does not add up: " + err.Error()
	default:
		return "Something went wrong, try again later."
	}
}
