// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
)

// CreateClientRequest represents the request body for client creation.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty" binding:"omitempty,max=50"`
	TaxID   string `json:"tax_id,omitempty" binding:"omitempty,max=50"`
	Address string `json:"address,omitempty"`
}

// UpdateClientRequest represents the request body for client update.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	TaxID   *string `json:"tax_id,omitempty" binding:"omitempty,max=50"`
	Address *string `json:"address,omitempty"`
}

// ClientResponse represents a single client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse represents a page of clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// ToClientResponse converts a domain Client entity to a ClientResponse DTO.
func ToClientResponse(client *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		TaxID:     client.TaxID,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientListResponse converts a client listing to its API representation.
func ToClientListResponse(result *adapter.ClientListResult) ClientListResponse {
	clients := make([]ClientResponse, len(result.Clients))
	for i, c := range result.Clients {
		clients[i] = ToClientResponse(c)
	}
	return ClientListResponse{
		Clients: clients,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
	}
}
