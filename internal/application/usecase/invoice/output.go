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

// InvoiceOutput represents a single invoice in the output.
type InvoiceOutput struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ClientID      *uuid.UUID
	ClientName    *string
	IssueDate     time.Time
	Amount        decimal.Decimal
	Paid          bool
	Number        *string
	Description   *string
	Attachment    *string
	AttachmentURL *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// toInvoiceOutput builds the output of an invoice and derives its attachment URL.
func toInvoiceOutput(row *entity.InvoiceWithClient, storage adapter.AttachmentStorage) *InvoiceOutput {
	inv := row.Invoice
	output := &InvoiceOutput{
		ID:          inv.ID,
		UserID:      inv.UserID,
		ClientID:    inv.ClientID,
		ClientName:  row.ClientName,
		IssueDate:   inv.IssueDate,
		Amount:      inv.Amount,
		Paid:        inv.Paid,
		Number:      inv.Number,
		Description: inv.Description,
		Attachment:  inv.Attachment,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}

	if inv.HasAttachment() {
		url := storage.URL(inv.UserID, *inv.Attachment)
		output.AttachmentURL = &url
	}

	return output
}

// findOwnedInvoice loads an invoice through the owner-scoped lookup.
func findOwnedInvoice(
	ctx context.Context,
	repo adapter.InvoiceRepository,
	id, userID uuid.UUID,
) (*entity.InvoiceWithClient, error) {
	row, err := repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return row, nil
}

// duplicateNumberError is returned whenever the store rejects an invoice number.
func duplicateNumberError() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeDuplicateInvoiceNumber,
		"an invoice with this number already exists",
		domainerror.ErrDuplicateInvoiceNumber,
	)
}

// attachmentIOError wraps a filesystem failure that must surface to the caller.
func attachmentIOError(message string, err error) error {
	return domainerror.NewInvoiceError(domainerror.ErrCodeAttachmentIO, message, err)
}

// normalizeOptionalText turns empty strings into nil.
func normalizeOptionalText(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}
