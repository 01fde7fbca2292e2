// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
	"github.com/invoice-manager/backend/internal/integration/persistence/model"
)

// clientRepository implements the adapter.ClientRepository interface.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance.
func NewClientRepository(db *gorm.DB) adapter.ClientRepository {
	return &clientRepository{
		db: db,
	}
}

// Create creates a new client in the database.
func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Create(model.ClientFromEntity(client))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrClientEmailExists
		}
		return result.Error
	}
	return nil
}

// FindByIDAndUser retrieves a client owned by the user.
func (r *clientRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Client, error) {
	var clientModel model.ClientModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&clientModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrClientNotFound
		}
		return nil, result.Error
	}
	return clientModel.ToEntity(), nil
}

// FindByFilter retrieves a page of the user's clients ordered by name.
func (r *clientRepository) FindByFilter(ctx context.Context, filter adapter.ClientFilter, page, limit int) (*adapter.ClientListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ClientModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape, pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var clientModels []model.ClientModel
	result := query.
		Order("name ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&clientModels)
	if result.Error != nil {
		return nil, result.Error
	}

	clients := make([]*entity.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToEntity()
	}

	return &adapter.ClientListResult{
		Clients: clients,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// Update persists the client fields.
func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Model(&model.ClientModel{}).
		Where("id = ? AND user_id = ?", client.ID, client.UserID).
		Updates(map[string]interface{}{
			"name":       client.Name,
			"email":      client.Email,
			"phone":      client.Phone,
			"tax_id":     client.TaxID,
			"address":    client.Address,
			"updated_at": client.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrClientEmailExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrClientNotFound
	}
	return nil
}

// Delete removes a client owned by the user.
func (r *clientRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ClientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrClientNotFound
	}
	return nil
}
