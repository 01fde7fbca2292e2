// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
)

// DefaultPageLimit is the page size used when the caller supplies none.
const DefaultPageLimit = 5

// sortFields maps the public sort keys to their columns.
var sortFields = map[string]adapter.InvoiceSortField{
	"fechaEmision": adapter.InvoiceSortByIssueDate,
	"importe":      adapter.InvoiceSortByAmount,
	"estado":       adapter.InvoiceSortByStatus,
	"numero":       adapter.InvoiceSortByNumber,
	"descripcion":  adapter.InvoiceSortByDescription,
	"cliente":      adapter.InvoiceSortByClient,
	"createdAt":    adapter.InvoiceSortByCreatedAt,
}

// ListInvoicesInput represents the input for listing invoices.
type ListInvoicesInput struct {
	UserID    uuid.UUID
	Page      int
	Limit     int
	SortField string
	SortOrder string
	Search    string
}

// ListInvoicesOutput represents a page of invoices.
// Total counts every invoice of the user, regardless of the search term.
type ListInvoicesOutput struct {
	Invoices []*InvoiceOutput
	Total    int64
	Page     int
	Limit    int
}

// ListInvoicesUseCase handles invoice listing with search, sorting and pagination.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(
	invoiceRepo adapter.InvoiceRepository,
	storage adapter.AttachmentStorage,
) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute returns the requested page of the user's invoices.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}

	filter := adapter.InvoiceFilter{
		UserID:        input.UserID,
		Search:        NormalizeSearch(input.Search),
		SortField:     ParseSortField(input.SortField),
		SortAscending: strings.EqualFold(input.SortOrder, "asc"),
	}

	result, err := uc.invoiceRepo.FindByFilter(ctx, filter, adapter.InvoicePagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*InvoiceOutput, 0, len(result.Invoices))
	for _, row := range result.Invoices {
		invoices = append(invoices, toInvoiceOutput(row, uc.storage))
	}

	return &ListInvoicesOutput{
		Invoices: invoices,
		Total:    result.Total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// ParseSortField resolves a public sort key, falling back to the issue date.
func ParseSortField(key string) adapter.InvoiceSortField {
	if field, ok := sortFields[key]; ok {
		return field
	}
	return adapter.InvoiceSortByIssueDate
}

// NormalizeSearch lowercases the term and strips all whitespace from it.
func NormalizeSearch(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), ""))
}
