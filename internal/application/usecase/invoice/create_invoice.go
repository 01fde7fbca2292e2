// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// CreateInvoiceInput represents the input for invoice creation.
// Nil pointers mean the field was absent from the request.
type CreateInvoiceInput struct {
	UserID      uuid.UUID
	ClientID    *uuid.UUID
	IssueDate   *time.Time
	Amount      *decimal.Decimal
	Paid        *bool
	Number      *string
	Description *string
	Attachment  *adapter.AttachmentUpload
}

// CreateInvoiceOutput represents the output of invoice creation.
type CreateInvoiceOutput struct {
	Invoice *InvoiceOutput
}

// CreateInvoiceUseCase handles invoice creation logic.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	storage adapter.AttachmentStorage,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute performs the invoice creation.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	// Paid=false is a legal value, only an absent status is rejected
	if input.ClientID == nil || *input.ClientID == uuid.Nil ||
		input.IssueDate == nil || input.IssueDate.IsZero() ||
		input.Amount == nil ||
		input.Paid == nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"clienteId, fechaEmision, importe and estado are required",
			domainerror.ErrMissingInvoiceFields,
		)
	}

	invoice := entity.NewInvoice(
		input.UserID,
		*input.ClientID,
		*input.IssueDate,
		*input.Amount,
		*input.Paid,
		normalizeOptionalText(input.Number),
		input.Description,
	)

	if input.Attachment != nil {
		filename, err := uc.storage.Store(ctx, input.UserID, *input.Attachment)
		if err != nil {
			return nil, attachmentIOError("failed to store attachment", err)
		}
		invoice.Attachment = &filename
	}

	// Uniqueness of the number is enforced by the store, not pre-checked
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		uc.discardAttachment(ctx, invoice)
		if errors.Is(err, domainerror.ErrDuplicateInvoiceNumber) {
			return nil, duplicateNumberError()
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	row, err := findOwnedInvoice(ctx, uc.invoiceRepo, invoice.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &CreateInvoiceOutput{
		Invoice: toInvoiceOutput(row, uc.storage),
	}, nil
}

// discardAttachment removes a file stored for an invoice that was never persisted.
func (uc *CreateInvoiceUseCase) discardAttachment(ctx context.Context, invoice *entity.Invoice) {
	if !invoice.HasAttachment() {
		return
	}
	if err := uc.storage.Delete(ctx, invoice.UserID, *invoice.Attachment); err != nil {
		slog.Warn("Failed to remove attachment of rejected invoice",
			"userID", invoice.UserID,
			"filename", *invoice.Attachment,
			"error", err,
		)
	}
}
