// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/domain/entity"
)

// ClientFilter defines filter options for listing clients.
type ClientFilter struct {
	UserID uuid.UUID
	Search string
}

// ClientListResult represents the result of listing clients.
type ClientListResult struct {
	Clients []*entity.Client
	Total   int64
	Page    int
	Limit   int
}

// ClientRepository defines the interface for client persistence operations.
type ClientRepository interface {
	// Create inserts a client. A taken email yields ErrClientEmailExists.
	Create(ctx context.Context, client *entity.Client) error

	// FindByIDAndUser retrieves a client owned by the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Client, error)

	// FindByFilter retrieves a page of clients.
	FindByFilter(ctx context.Context, filter ClientFilter, page, limit int) (*ClientListResult, error)

	// Update persists the client. A taken email yields ErrClientEmailExists.
	Update(ctx context.Context, client *entity.Client) error

	// Delete removes the client. Invoices referencing it are left untouched.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
