// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceFigure is the minimal projection of an invoice the yearly report works on.
type InvoiceFigure struct {
	IssueDate time.Time
	Amount    decimal.Decimal
	Paid      bool
}

// SummaryTotals holds counts, sums and averages over a group of invoices.
type SummaryTotals struct {
	Count         int
	PaidCount     int
	UnpaidCount   int
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal
	UnpaidAmount  decimal.Decimal
	Average       decimal.Decimal
	PaidAverage   decimal.Decimal
	UnpaidAverage decimal.Decimal
}

// MonthSummary holds per-month activity. Month is "01".."12".
type MonthSummary struct {
	Month       string
	Count       int
	PaidCount   int
	UnpaidCount int
	Amount      decimal.Decimal
}

// YearlySummary is derived on demand and never persisted.
type YearlySummary struct {
	Year    int
	Totals  SummaryTotals
	Monthly []MonthSummary
}
