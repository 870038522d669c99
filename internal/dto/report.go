package dto

import "github.com/smirnov-vv/ipledger/internal/core/domain"

// SummaryReportResponse is the period summary exposed over HTTP.
type SummaryReportResponse struct {
	Period     string           `json:"period"`
	Income     int64            `json:"income"`
	Expense    int64            `json:"expense"`
	TotalBank  int64            `json:"totalBank"`
	TotalDebit int64            `json:"totalDebit"`
	TotalCash  int64            `json:"totalCash"`
	Entities   []EntityResponse `json:"entities"`
	OpenDebts  []DebtResponse   `json:"openDebts"`
}

// ToSummaryReportResponse maps a domain report to its API shape.
func ToSummaryReportResponse(r domain.SummaryReport) SummaryReportResponse {
	resp := SummaryReportResponse{
		Period:     string(r.Period),
		Income:     r.Totals.Income,
		Expense:    r.Totals.Expense,
		TotalBank:  r.TotalBank,
		TotalDebit: r.TotalDebit,
		TotalCash:  r.TotalCash,
		Entities:   make([]EntityResponse, len(r.Entities)),
		OpenDebts:  ToDebtResponses(r.OpenDebts),
	}
	for i, e := range r.Entities {
		resp.Entities[i] = ToEntityResponse(e)
	}
	return resp
}
