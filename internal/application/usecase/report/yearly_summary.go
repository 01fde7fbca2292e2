// Package report contains reporting use cases computed from invoice data.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// averagePlaces is the precision averages are rounded to.
const averagePlaces = 2

// YearlySummaryInput represents the input for the yearly summary.
// Year is kept raw so that parsing errors surface as validation errors.
type YearlySummaryInput struct {
	UserID uuid.UUID
	Year   string
}

// YearlySummaryUseCase aggregates a user's invoices over a calendar year.
type YearlySummaryUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewYearlySummaryUseCase creates a new YearlySummaryUseCase instance.
func NewYearlySummaryUseCase(invoiceRepo adapter.InvoiceRepository) *YearlySummaryUseCase {
	return &YearlySummaryUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute computes the summary for the requested year.
func (uc *YearlySummaryUseCase) Execute(ctx context.Context, input YearlySummaryInput) (*entity.YearlySummary, error) {
	year, err := strconv.Atoi(strings.TrimSpace(input.Year))
	if err != nil || year <= 0 {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidYear,
			"year must be a positive integer",
			domainerror.ErrInvalidYear,
		)
	}

	figures, err := uc.invoiceRepo.FindForYear(ctx, input.UserID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices for year %d: %w", year, err)
	}

	return Summarize(year, figures), nil
}

// Summarize aggregates invoice figures into totals and twelve monthly buckets.
// Figures outside the year are ignored.
func Summarize(year int, figures []entity.InvoiceFigure) *entity.YearlySummary {
	monthly := make([]entity.MonthSummary, 12)
	for i := range monthly {
		monthly[i] = entity.MonthSummary{
			Month:  fmt.Sprintf("%02d", i+1),
			Amount: decimal.Zero,
		}
	}

	totals := entity.SummaryTotals{
		Amount:       decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}

	for _, f := range figures {
		if f.IssueDate.Year() != year {
			continue
		}
		month := &monthly[int(f.IssueDate.Month())-1]

		totals.Count++
		totals.Amount = totals.Amount.Add(f.Amount)
		month.Count++
		month.Amount = month.Amount.Add(f.Amount)

		if f.Paid {
			totals.PaidCount++
			totals.PaidAmount = totals.PaidAmount.Add(f.Amount)
			month.PaidCount++
		} else {
			totals.UnpaidCount++
			totals.UnpaidAmount = totals.UnpaidAmount.Add(f.Amount)
			month.UnpaidCount++
		}
	}

	totals.Average = average(totals.Amount, totals.Count)
	totals.PaidAverage = average(totals.PaidAmount, totals.PaidCount)
	totals.UnpaidAverage = average(totals.UnpaidAmount, totals.UnpaidCount)

	return &entity.YearlySummary{
		Year:    year,
		Totals:  totals,
		Monthly: monthly,
	}
}

func average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	// Divide keeps 16 digits, Round is half away from zero
	return sum.Div(decimal.NewFromInt(int64(count))).Round(averagePlaces)
}
