// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/domain/entity"
)

// InvoiceSortField names a column invoices can be ordered by.
type InvoiceSortField string

const (
	InvoiceSortByIssueDate   InvoiceSortField = "issue_date"
	InvoiceSortByAmount      InvoiceSortField = "amount"
	InvoiceSortByStatus      InvoiceSortField = "paid"
	InvoiceSortByNumber      InvoiceSortField = "number"
	InvoiceSortByDescription InvoiceSortField = "description"
	InvoiceSortByClient      InvoiceSortField = "client_name"
	InvoiceSortByCreatedAt   InvoiceSortField = "created_at"
)

// InvoiceFilter defines filter and ordering options for listing invoices.
type InvoiceFilter struct {
	UserID        uuid.UUID
	Search        string // Already normalized: lower-cased, whitespace removed
	SortField     InvoiceSortField
	SortAscending bool
}

// InvoicePagination defines pagination options.
type InvoicePagination struct {
	Page  int
	Limit int
}

// InvoiceListResult represents the result of listing invoices.
type InvoiceListResult struct {
	Invoices []*entity.InvoiceWithClient
	// Total counts every invoice of the user and ignores the search filter.
	Total int64
	Page  int
	Limit int
}

// InvoiceRepository defines the interface for invoice persistence operations.
// Every method is scoped by the owning user.
type InvoiceRepository interface {
	// Create inserts a new invoice. A taken number yields ErrDuplicateInvoiceNumber.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByIDAndUser retrieves an invoice with its client name.
	// Returns ErrInvoiceNotFound when the invoice is missing or owned by someone else.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.InvoiceWithClient, error)

	// Update persists every mutable column of the invoice.
	Update(ctx context.Context, invoice *entity.Invoice) error

	// UpdateAttachment sets or clears the attachment filename.
	UpdateAttachment(ctx context.Context, id, userID uuid.UUID, attachment *string) error

	// Delete removes the invoice row.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// FindByFilter retrieves a page of invoices matching the filter.
	FindByFilter(ctx context.Context, filter InvoiceFilter, pagination InvoicePagination) (*InvoiceListResult, error)

	// FindForYear returns the figures of every invoice issued in the calendar year.
	FindForYear(ctx context.Context, userID uuid.UUID, year int) ([]entity.InvoiceFigure, error)
}
