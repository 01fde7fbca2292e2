// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer that invoices are billed to.
type Client struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
	Phone     string
	TaxID     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient creates a new Client entity.
func NewClient(userID uuid.UUID, name, email, phone, taxID, address string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		TaxID:     taxID,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
