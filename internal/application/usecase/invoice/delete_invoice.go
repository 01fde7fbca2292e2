// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// DeleteInvoiceInput represents the input for invoice deletion.
type DeleteInvoiceInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
}

// DeleteInvoiceUseCase handles invoice deletion logic.
type DeleteInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	storage adapter.AttachmentStorage,
) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute removes the invoice and, best-effort, its attachment.
// A failing attachment removal never prevents the record from being deleted.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) error {
	row, err := findOwnedInvoice(ctx, uc.invoiceRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return err
	}

	if row.Invoice.HasAttachment() {
		if err := uc.storage.Delete(ctx, input.UserID, *row.Invoice.Attachment); err != nil {
			slog.Warn("Failed to delete invoice attachment",
				"invoiceID", input.InvoiceID,
				"filename", *row.Invoice.Attachment,
				"error", err,
			)
		}
	}

	if err := uc.invoiceRepo.Delete(ctx, input.InvoiceID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}
