// Package client contains client management use cases.
package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
)

// DeleteClientUseCase handles client deletion.
// Invoices keep their client reference and render without a client name afterwards.
type DeleteClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewDeleteClientUseCase creates a new DeleteClientUseCase instance.
func NewDeleteClientUseCase(clientRepo adapter.ClientRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{clientRepo: clientRepo}
}

// Execute removes the client.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, clientID, userID uuid.UUID) error {
	if err := uc.clientRepo.Delete(ctx, clientID, userID); err != nil {
		return translateWriteError(err, "failed to delete client")
	}
	return nil
}
