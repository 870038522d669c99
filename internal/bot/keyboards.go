package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// Callback data prefixes. Telegram limits callback data to 64 bytes, which
// fits a prefix plus a UUID.
const (
	cbKind    = "kind"
	cbEntity  = "ent"
	cbTarget  = "tgt"
	cbDebt    = "debt"
	cbPeriod  = "period"
	cbConfirm = "confirm"
	cbCancel  = "cancel"
	cbSkip    = "skip_comment"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("New operation", "menu_operation"),
			tgbotapi.NewInlineKeyboardButtonData("Balances", "menu_balance"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Debts", "menu_debts"),
			tgbotapi.NewInlineKeyboardButtonData("Report", "menu_report"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("History", "menu_history"),
		),
	)
}

func kindKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, kind := range domain.KnownOperationKinds {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(kind.Label(), fmt.Sprintf("%s:%s", cbKind, kind)),
		))
	}
	rows = append(rows, cancelRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func entityKeyboard(entities []domain.Entity, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range entities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(e.Name, fmt.Sprintf("%s:%s", prefix, e.EntityID)),
		))
	}
	rows = append(rows, cancelRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func debtKeyboard(debts []domain.Debt, names map[string]string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range debts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatDebt(d, names), fmt.Sprintf("%s:%s", cbDebt, d.DebtID)),
		))
	}
	rows = append(rows, cancelRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func periodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Today", cbPeriod+":today"),
			tgbotapi.NewInlineKeyboardButtonData("Week", cbPeriod+":week"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Month", cbPeriod+":month"),
			tgbotapi.NewInlineKeyboardButtonData("All time", cbPeriod+":all"),
		),
	)
}

func skipCommentKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Skip", cbSkip),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", cbCancel),
		),
	)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Confirm", cbConfirm),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", cbCancel),
		),
	)
}

func cancelRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Cancel", cbCancel),
	)
}
