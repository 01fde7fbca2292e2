// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents a billed amount owned by a user.
type Invoice struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Immutable after creation
	ClientID    *uuid.UUID
	IssueDate   time.Time
	Amount      decimal.Decimal
	Paid        bool
	Number      *string // Globally unique when present
	Description *string
	Attachment  *string // Filename inside the owner's storage namespace
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoice creates a new Invoice entity.
func NewInvoice(
	userID uuid.UUID,
	clientID uuid.UUID,
	issueDate time.Time,
	amount decimal.Decimal,
	paid bool,
	number *string,
	description *string,
) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:          uuid.New(),
		UserID:      userID,
		ClientID:    &clientID,
		IssueDate:   issueDate,
		Amount:      amount,
		Paid:        paid,
		Number:      number,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasAttachment reports whether the invoice references a stored file.
func (i *Invoice) HasAttachment() bool {
	return i.Attachment != nil && *i.Attachment != ""
}

// InvoiceWithClient is an invoice joined with its client's display name.
type InvoiceWithClient struct {
	Invoice    *Invoice
	ClientName *string
}
