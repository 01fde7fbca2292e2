// Package client contains client management use cases.
package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
)

// UpdateClientInput represents the input for a partial client update.
// Nil fields are left unchanged.
type UpdateClientInput struct {
	ClientID uuid.UUID
	UserID   uuid.UUID
	Name     *string
	Email    *string
	Phone    *string
	TaxID    *string
	Address  *string
}

// UpdateClientUseCase handles client update logic.
type UpdateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewUpdateClientUseCase creates a new UpdateClientUseCase instance.
func NewUpdateClientUseCase(clientRepo adapter.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{clientRepo: clientRepo}
}

// Execute performs the client update.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*entity.Client, error) {
	client, err := findOwnedClient(ctx, uc.clientRepo, input.ClientID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		client.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.TaxID != nil {
		client.TaxID = strings.TrimSpace(*input.TaxID)
	}
	if input.Address != nil {
		client.Address = strings.TrimSpace(*input.Address)
	}

	if err := validateClient(client.Name, client.Email); err != nil {
		return nil, err
	}

	client.UpdatedAt = time.Now().UTC()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, translateWriteError(err, "failed to update client")
	}

	return client, nil
}
