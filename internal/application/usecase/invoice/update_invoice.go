// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// UpdateInvoiceInput represents the input for a partial invoice update.
//
// Paid, Number and Description overwrite the stored value whenever they are set.
// ClientID, IssueDate and Amount only overwrite when they carry a non-zero value.
type UpdateInvoiceInput struct {
	InvoiceID        uuid.UUID
	UserID           uuid.UUID
	ClientID         *uuid.UUID
	IssueDate        *time.Time
	Amount           *decimal.Decimal
	Paid             *bool
	Number           *string
	ClearNumber      bool
	Description      *string
	ClearDescription bool
	Attachment       *adapter.AttachmentUpload
}

// UpdateInvoiceOutput represents the output of an invoice update.
type UpdateInvoiceOutput struct {
	Invoice *InvoiceOutput
}

// UpdateInvoiceUseCase handles invoice update logic.
type UpdateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	storage     adapter.AttachmentStorage
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	storage adapter.AttachmentStorage,
) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		storage:     storage,
	}
}

// Execute performs the invoice update.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*UpdateInvoiceOutput, error) {
	row, err := findOwnedInvoice(ctx, uc.invoiceRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}
	invoice := row.Invoice

	if input.Paid != nil {
		invoice.Paid = *input.Paid
	}
	if input.ClearNumber {
		invoice.Number = nil
	} else if input.Number != nil {
		invoice.Number = normalizeOptionalText(input.Number)
	}
	if input.ClearDescription {
		invoice.Description = nil
	} else if input.Description != nil {
		description := *input.Description
		invoice.Description = &description
	}

	if input.ClientID != nil && *input.ClientID != uuid.Nil {
		clientID := *input.ClientID
		invoice.ClientID = &clientID
	}
	if input.IssueDate != nil && !input.IssueDate.IsZero() {
		invoice.IssueDate = *input.IssueDate
	}
	if input.Amount != nil && !input.Amount.IsZero() {
		invoice.Amount = *input.Amount
	}

	if input.Attachment != nil {
		err = uc.saveWithAttachment(ctx, invoice, *input.Attachment)
	} else {
		err = uc.invoiceRepo.Update(ctx, invoice)
	}
	if err != nil {
		return nil, translateUpdateError(err)
	}

	updated, err := findOwnedInvoice(ctx, uc.invoiceRepo, invoice.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &UpdateInvoiceOutput{
		Invoice: toInvoiceOutput(updated, uc.storage),
	}, nil
}

// saveWithAttachment stores the new file and persists the invoice pointing at it.
// The previous file is only removed once the row is saved. A rejected save removes
// the new file and keeps the previous reference valid.
func (uc *UpdateInvoiceUseCase) saveWithAttachment(
	ctx context.Context,
	invoice *entity.Invoice,
	upload adapter.AttachmentUpload,
) error {
	previous := invoice.Attachment
	oldFilename := ""
	if invoice.HasAttachment() {
		oldFilename = *previous
	}

	var saveErr error
	_, err := uc.storage.Replace(ctx, invoice.UserID, oldFilename, upload, func(filename string) error {
		invoice.Attachment = &filename
		saveErr = uc.invoiceRepo.Update(ctx, invoice)
		return saveErr
	})
	if saveErr != nil {
		invoice.Attachment = previous
		return saveErr
	}
	if err != nil {
		return attachmentIOError("failed to replace attachment", err)
	}
	return nil
}

func translateUpdateError(err error) error {
	var invErr *domainerror.InvoiceError
	switch {
	case errors.As(err, &invErr):
		return err
	case errors.Is(err, domainerror.ErrDuplicateInvoiceNumber):
		return duplicateNumberError()
	case errors.Is(err, domainerror.ErrInvoiceNotFound):
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	default:
		return fmt.Errorf("failed to update invoice: %w", err)
	}
}
