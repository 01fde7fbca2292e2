// Package error defines domain-specific errors for the Invoice Manager application.
package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client does not exist or belongs to another user.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientEmailExists is returned when another client already uses the email.
	ErrClientEmailExists = errors.New("client email already exists")

	// ErrClientNameRequired is returned when the client name is empty.
	ErrClientNameRequired = errors.New("client name is required")
)

// ClientErrorCode defines error codes for client errors.
type ClientErrorCode string

const (
	ErrCodeClientNameRequired ClientErrorCode = "CLI-010001"
	ErrCodeInvalidClientEmail ClientErrorCode = "CLI-010002"
	ErrCodeClientEmailExists  ClientErrorCode = "CLI-020001"
	ErrCodeClientNotFound     ClientErrorCode = "CLI-030001"
)

// ClientError represents a client error with code and message.
type ClientError struct {
	Code    ClientErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError with the given code and message.
func NewClientError(code ClientErrorCode, message string, err error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
