// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/invoice-manager/backend/internal/domain/entity"

// YearlySummaryResponse represents the yearly invoice report.
type YearlySummaryResponse struct {
	Year           int                    `json:"year"`
	TotalInvoices  int                    `json:"total_facturas"`
	PaidInvoices   int                    `json:"facturas_pagadas"`
	UnpaidInvoices int                    `json:"facturas_pendientes"`
	TotalAmount    float64                `json:"importe_total"`
	PaidAmount     float64                `json:"importe_pagadas"`
	UnpaidAmount   float64                `json:"importe_pendientes"`
	AverageAmount  float64                `json:"promedio_total"`
	PaidAverage    float64                `json:"promedio_pagadas"`
	UnpaidAverage  float64                `json:"promedio_pendientes"`
	Monthly        []MonthSummaryResponse `json:"mensual"`
}

// MonthSummaryResponse represents one calendar month of the report.
type MonthSummaryResponse struct {
	Month          string  `json:"mes"`
	TotalInvoices  int     `json:"total_facturas"`
	PaidInvoices   int     `json:"facturas_pagadas"`
	UnpaidInvoices int     `json:"facturas_pendientes"`
	TotalAmount    float64 `json:"importe_total"`
}

// ToYearlySummaryResponse converts a yearly summary to its API representation.
func ToYearlySummaryResponse(summary *entity.YearlySummary) YearlySummaryResponse {
	monthly := make([]MonthSummaryResponse, len(summary.Monthly))
	for i, m := range summary.Monthly {
		monthly[i] = MonthSummaryResponse{
			Month:          m.Month,
			TotalInvoices:  m.Count,
			PaidInvoices:   m.PaidCount,
			UnpaidInvoices: m.UnpaidCount,
			TotalAmount:    m.Amount.InexactFloat64(),
		}
	}

	t := summary.Totals
	return YearlySummaryResponse{
		Year:           summary.Year,
		TotalInvoices:  t.Count,
		PaidInvoices:   t.PaidCount,
		UnpaidInvoices: t.UnpaidCount,
		TotalAmount:    t.Amount.InexactFloat64(),
		PaidAmount:     t.PaidAmount.InexactFloat64(),
		UnpaidAmount:   t.UnpaidAmount.InexactFloat64(),
		AverageAmount:  t.Average.InexactFloat64(),
		PaidAverage:    t.PaidAverage.InexactFloat64(),
		UnpaidAverage:  t.UnpaidAverage.InexactFloat64(),
		Monthly:        monthly,
	}
}
