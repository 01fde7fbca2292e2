// Package client contains client management use cases.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
)

// DefaultPageLimit is the client page size used when the caller supplies none.
const DefaultPageLimit = 10

// ListClientsInput represents the input for listing clients.
type ListClientsInput struct {
	UserID uuid.UUID
	Page   int
	Limit  int
	Search string
}

// ListClientsUseCase handles client listing.
type ListClientsUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewListClientsUseCase creates a new ListClientsUseCase instance.
func NewListClientsUseCase(clientRepo adapter.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo}
}

// Execute returns a page of the user's clients.
func (uc *ListClientsUseCase) Execute(ctx context.Context, input ListClientsInput) (*adapter.ClientListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}

	result, err := uc.clientRepo.FindByFilter(ctx, adapter.ClientFilter{
		UserID: input.UserID,
		Search: strings.ToLower(strings.TrimSpace(input.Search)),
	}, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return result, nil
}
