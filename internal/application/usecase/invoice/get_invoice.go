// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
)

// GetInvoiceInput represents the input for fetching a single invoice.
type GetInvoiceInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
}

// GetInvoiceUseCase handles single invoice lookup.
type GetInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository, storage adapter.AttachmentStorage) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute returns the invoice when it is owned by the user.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*InvoiceOutput, error) {
	row, err := findOwnedInvoice(ctx, uc.invoiceRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}
	return toInvoiceOutput(row, uc.storage), nil
}
