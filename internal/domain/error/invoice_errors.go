// Package error defines domain-specific errors for the Invoice Manager application.
package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice does not exist or belongs to another user.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrMissingInvoiceFields is returned when a required invoice field is absent.
	ErrMissingInvoiceFields = errors.New("missing required invoice fields")

	// ErrInvalidInvoiceAmount is returned when the amount cannot be parsed.
	ErrInvalidInvoiceAmount = errors.New("invalid invoice amount")

	// ErrInvalidInvoiceDate is returned when the issue date cannot be parsed.
	ErrInvalidInvoiceDate = errors.New("invalid invoice date")

	// ErrInvalidInvoiceStatus is returned when the status is not a boolean.
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")

	// ErrDuplicateInvoiceNumber is returned when the invoice number is already taken.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")

	// ErrInvoiceHasNoAttachment is returned when removing an attachment that does not exist.
	ErrInvoiceHasNoAttachment = errors.New("invoice has no attachment")

	// ErrInvalidYear is returned when the report year is not a positive integer.
	ErrInvalidYear = errors.New("invalid year")

	// ErrAttachmentNotFound is returned by the attachment store when the file is missing.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrInvalidAttachmentName is returned when a filename would leave the user's namespace.
	ErrInvalidAttachmentName = errors.New("invalid attachment name")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingInvoiceFields InvoiceErrorCode = "INV-010001"
	ErrCodeInvalidInvoiceAmount InvoiceErrorCode = "INV-010002"
	ErrCodeInvalidInvoiceDate   InvoiceErrorCode = "INV-010003"
	ErrCodeInvalidInvoiceStatus InvoiceErrorCode = "INV-010004"
	ErrCodeInvalidInvoiceID     InvoiceErrorCode = "INV-010005"
	ErrCodeNoAttachment         InvoiceErrorCode = "INV-010006"
	ErrCodeInvalidYear          InvoiceErrorCode = "INV-010007"
	ErrCodeInvalidClientID      InvoiceErrorCode = "INV-010008"

	// Conflict errors (02XXXX)
	ErrCodeDuplicateInvoiceNumber InvoiceErrorCode = "INV-020001"

	// Lookup errors (03XXXX)
	ErrCodeInvoiceNotFound InvoiceErrorCode = "INV-030001"

	// Storage errors (04XXXX)
	ErrCodeAttachmentIO InvoiceErrorCode = "INV-040001"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
