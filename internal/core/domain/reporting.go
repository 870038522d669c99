package domain

// ReportPeriod selects the time window of a summary report.
type ReportPeriod string

const (
	PeriodToday ReportPeriod = "today"
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
	PeriodAll   ReportPeriod = "all"
)

// PeriodTotals holds aggregated income and expense over a period.
type PeriodTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// SummaryReport is the period summary assembled by the reporting service:
// income/expense totals plus a snapshot of entity balances and open debts.
type SummaryReport struct {
	Period     ReportPeriod `json:"period"`
	Totals     PeriodTotals `json:"totals"`
	Entities   []Entity     `json:"entities"`
	OpenDebts  []Debt       `json:"openDebts"`
	TotalBank  int64        `json:"totalBank"`
	TotalDebit int64        `json:"totalDebit"`
	TotalCash  int64        `json:"totalCash"`
}
