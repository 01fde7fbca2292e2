// Package client contains client management use cases.
package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CreateClientInput represents the input for client creation.
type CreateClientInput struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	TaxID   string
	Address string
}

// CreateClientUseCase handles client creation logic.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute performs the client creation.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateClient(name, email); err != nil {
		return nil, err
	}

	client := entity.NewClient(
		input.UserID,
		name,
		email,
		strings.TrimSpace(input.Phone),
		strings.TrimSpace(input.TaxID),
		strings.TrimSpace(input.Address),
	)

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, translateWriteError(err, "failed to create client")
	}

	return client, nil
}

func validateClient(name, email string) error {
	if name == "" {
		return domainerror.NewClientError(
			domainerror.ErrCodeClientNameRequired,
			"client name is required",
			domainerror.ErrClientNameRequired,
		)
	}
	if !emailRegex.MatchString(email) {
		return domainerror.NewClientError(
			domainerror.ErrCodeInvalidClientEmail,
			"invalid email format",
			nil,
		)
	}
	return nil
}

func translateWriteError(err error, message string) error {
	switch {
	case errors.Is(err, domainerror.ErrClientEmailExists):
		return domainerror.NewClientError(
			domainerror.ErrCodeClientEmailExists,
			"a client with this email already exists",
			domainerror.ErrClientEmailExists,
		)
	case errors.Is(err, domainerror.ErrClientNotFound):
		return notFoundError()
	default:
		return fmt.Errorf("%s: %w", message, err)
	}
}

func notFoundError() error {
	return domainerror.NewClientError(
		domainerror.ErrCodeClientNotFound,
		"client not found",
		domainerror.ErrClientNotFound,
	)
}
