package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

var errBadAmount = errors.New("bad amount")

// parseAmount converts user input like "1500", "1500.5" or "1500,50" into
// minor units. Anything non-positive or with more than two decimals fails.
func parseAmount(text string) (int64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if text == "" {
		return 0, errBadAmount
	}

	whole, frac, _ := strings.Cut(text, ".")
	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || major < 0 {
		return 0, errBadAmount
	}

	var minor int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, errBadAmount
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || minor < 0 {
			return 0, errBadAmount
		}
		if len(frac) == 1 {
			minor *= 10
		}
	}

	amount := major*100 + minor
	if amount <= 0 {
		return 0, errBadAmount
	}
	return amount, nil
}

// formatAmount renders minor units as "1500.50".
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func formatEntity(e domain.Entity) string {
	return fmt.Sprintf("%s\n  bank: %s\n  debit: %s\n  cash: %s",
		e.Name, formatAmount(e.BankBalance), formatAmount(e.DebitBalance), formatAmount(e.CashBalance))
}

func formatBalances(entities []domain.Entity) string {
	if len(entities) == 0 {
		return "No entities yet."
	}
	var b strings.Builder
	b.WriteString("Balances:\n\n")
	var totalBank, totalDebit, totalCash int64
	for _, e := range entities {
		b.WriteString(formatEntity(e))
		b.WriteString("\n\n")
		totalBank += e.BankBalance
		totalDebit += e.DebitBalance
		totalCash += e.CashBalance
	}
	fmt.Fprintf(&b, "Total bank: %s\nTotal debit: %s\nTotal cash: %s",
		formatAmount(totalBank), formatAmount(totalDebit), formatAmount(totalCash))
	return b.String()
}

func formatDebt(d domain.Debt, names map[string]string) string {
	return fmt.Sprintf("%s owes %s: %s",
		entityName(names, d.DebtorEntityID), entityName(names, d.CreditorEntityID), formatAmount(d.Amount))
}

func entityName(names map[string]string, entityID string) string {
	if name, ok := names[entityID]; ok {
		return name
	}
	return entityID
}

func formatReport(r domain.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report (%s)\n\nIncome: %s\nExpense: %s\n\n",
		r.Period, formatAmount(r.Totals.Income), formatAmount(r.Totals.Expense))
	for _, e := range r.Entities {
		b.WriteString(formatEntity(e))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Total bank: %s\nTotal debit: %s\nTotal cash: %s\nOpen debts: %d",
		formatAmount(r.TotalBank), formatAmount(r.TotalDebit), formatAmount(r.TotalCash), len(r.OpenDebts))
	return b.String()
}

func formatHistory(entries []domain.Transaction) string {
	if len(entries) == 0 {
		return "No operations yet."
	}
	var b strings.Builder
	b.WriteString("Recent operations:\n\n")
	for _, t := range entries {
		fmt.Fprintf(&b, "%s  %s  %s", t.CreatedAt.Format("02.01 15:04"), t.Kind.Label(), formatAmount(t.Amount))
		if t.Comment != "" {
			fmt.Fprintf(&b, "  (%s)", t.Comment)
		}
		b.WriteString("\n")
	}
	return b.String()
}
