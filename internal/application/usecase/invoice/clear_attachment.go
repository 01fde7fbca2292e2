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

// ClearAttachmentInput represents the input for removing an invoice attachment.
type ClearAttachmentInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
}

// ClearAttachmentUseCase removes the file attached to an invoice.
type ClearAttachmentUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewClearAttachmentUseCase creates a new ClearAttachmentUseCase instance.
func NewClearAttachmentUseCase(
	invoiceRepo adapter.InvoiceRepository,
	storage adapter.AttachmentStorage,
) *ClearAttachmentUseCase {
	return &ClearAttachmentUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute deletes the stored file and clears the reference on the invoice.
// Unlike invoice deletion, a filesystem failure aborts the operation here.
// A file that is already gone counts as removed.
func (uc *ClearAttachmentUseCase) Execute(ctx context.Context, input ClearAttachmentInput) (*InvoiceOutput, error) {
	row, err := findOwnedInvoice(ctx, uc.invoiceRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !row.Invoice.HasAttachment() {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeNoAttachment,
			"invoice has no attachment",
			domainerror.ErrInvoiceHasNoAttachment,
		)
	}

	filename := *row.Invoice.Attachment
	if err := uc.storage.Delete(ctx, input.UserID, filename); err != nil {
		if !errors.Is(err, domainerror.ErrAttachmentNotFound) {
			return nil, attachmentIOError("failed to delete attachment", err)
		}
		slog.Warn("Attachment file already missing",
			"invoiceID", input.InvoiceID,
			"filename", filename,
		)
	}

	if err := uc.invoiceRepo.UpdateAttachment(ctx, input.InvoiceID, input.UserID, nil); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to clear attachment: %w", err)
	}

	row.Invoice.Attachment = nil
	return toInvoiceOutput(row, uc.storage), nil
}
