// Package client contains client management use cases.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
)

// GetClientUseCase handles single client lookup.
type GetClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewGetClientUseCase creates a new GetClientUseCase instance.
func NewGetClientUseCase(clientRepo adapter.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo}
}

// Execute returns the client when it is owned by the user.
func (uc *GetClientUseCase) Execute(ctx context.Context, clientID, userID uuid.UUID) (*entity.Client, error) {
	return findOwnedClient(ctx, uc.clientRepo, clientID, userID)
}

func findOwnedClient(ctx context.Context, repo adapter.ClientRepository, id, userID uuid.UUID) (*entity.Client, error) {
	client, err := repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}
