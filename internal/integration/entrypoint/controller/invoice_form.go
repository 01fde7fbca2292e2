// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-manager/backend/internal/application/usecase/invoice"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/dto"
)

// Multipart field names of invoice requests.
const (
	fieldClientID    = "clienteId"
	fieldIssueDate   = "fechaEmision"
	fieldAmount      = "importe"
	fieldStatus      = "estado"
	fieldNumber      = "numero"
	fieldDescription = "descripcion"
	fieldAttachment  = "archivo"
)

// amountLimit bounds the absolute value of importe to what a decimal(12,2) column holds.
var amountLimit = decimal.New(1, 10)

// nullLiteral is sent by form clients to clear an optional text field.
const nullLiteral = "null"

// formLookup returns a form value and whether the key was sent at all.
type formLookup func(key string) (string, bool)

// invoiceFields holds the typed values of an invoice form. Nil means absent or empty.
type invoiceFields struct {
	ClientID    *uuid.UUID
	IssueDate   *time.Time
	Amount      *decimal.Decimal
	Paid        *bool
	Number      *string
	Description *string

	numberSent      bool
	descriptionSent bool
}

// parseInvoiceFields converts the raw form values, rejecting malformed ones.
func parseInvoiceFields(lookup formLookup) (*invoiceFields, error) {
	fields := &invoiceFields{}

	if raw, ok := nonEmpty(lookup, fieldClientID); ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidClientID,
				"clienteId must be a valid identifier",
				err,
			)
		}
		fields.ClientID = &id
	}

	if raw, ok := nonEmpty(lookup, fieldIssueDate); ok {
		date, err := parseIssueDate(raw)
		if err != nil {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidInvoiceDate,
				"fechaEmision must be a date in YYYY-MM-DD format",
				domainerror.ErrInvalidInvoiceDate,
			)
		}
		fields.IssueDate = &date
	}

	if raw, ok := nonEmpty(lookup, fieldAmount); ok {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidInvoiceAmount,
				"importe must be a number",
				domainerror.ErrInvalidInvoiceAmount,
			)
		}
		if !amountFits(amount) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidInvoiceAmount,
				"importe must have at most 2 decimals and stay below 10000000000",
				domainerror.ErrInvalidInvoiceAmount,
			)
		}
		fields.Amount = &amount
	}

	if raw, ok := nonEmpty(lookup, fieldStatus); ok {
		paid, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		fields.Paid = &paid
	}

	if raw, ok := lookup(fieldNumber); ok {
		fields.numberSent = true
		raw = strings.TrimSpace(raw)
		if raw != "" && raw != nullLiteral {
			fields.Number = &raw
		}
	}

	if raw, ok := lookup(fieldDescription); ok {
		fields.descriptionSent = true
		if raw != nullLiteral {
			fields.Description = &raw
		}
	}

	return fields, nil
}

// applyToUpdate fills the update input. Sending numero empty or "null" clears it,
// sending descripcion "null" clears it.
func (f *invoiceFields) applyToUpdate(input *invoice.UpdateInvoiceInput) {
	input.ClientID = f.ClientID
	input.IssueDate = f.IssueDate
	input.Amount = f.Amount
	input.Paid = f.Paid

	if f.numberSent {
		if f.Number == nil {
			input.ClearNumber = true
		} else {
			input.Number = f.Number
		}
	}
	if f.descriptionSent {
		if f.Description == nil {
			input.ClearDescription = true
		} else {
			input.Description = f.Description
		}
	}
}

func amountFits(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(amountLimit) && amount.Equal(amount.Truncate(2))
}

func nonEmpty(lookup formLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// parseIssueDate accepts a plain date or a full RFC 3339 timestamp.
func parseIssueDate(raw string) (time.Time, error) {
	if date, err := time.Parse(dto.DateLayout, raw); err == nil {
		return date, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseStatus(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceStatus,
			"estado must be true or false",
			domainerror.ErrInvalidInvoiceStatus,
		)
	}
}
