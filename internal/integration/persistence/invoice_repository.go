// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/domain/entity"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
	"github.com/invoice-manager/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create inserts a new invoice.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	result := r.db.WithContext(ctx).Create(model.InvoiceFromEntity(invoice))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrDuplicateInvoiceNumber
		}
		return result.Error
	}
	return nil
}

// FindByIDAndUser retrieves an invoice of the user together with its client name.
func (r *invoiceRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.InvoiceWithClient, error) {
	var row model.InvoiceWithClientRow
	result := joinedInvoices(r.db.WithContext(ctx)).
		Where("invoices.id = ? AND invoices.user_id = ?", id, userID).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// Update persists every mutable column. The owner and creation time never change.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	m := model.InvoiceFromEntity(invoice)

	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("id = ? AND user_id = ?", invoice.ID, invoice.UserID).
		Updates(map[string]interface{}{
			"client_id":   m.ClientID,
			"issue_date":  m.IssueDate,
			"amount":      m.Amount,
			"paid":        m.Paid,
			"number":      m.Number,
			"description": m.Description,
			"attachment":  m.Attachment,
			"updated_at":  m.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrDuplicateInvoiceNumber
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// UpdateAttachment sets or clears the attachment filename.
func (r *invoiceRepository) UpdateAttachment(ctx context.Context, id, userID uuid.UUID, attachment *string) error {
	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"attachment": attachment,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes the invoice row.
func (r *invoiceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.InvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// FindByFilter retrieves a page of invoices matching the filter.
// The total covers all of the user's invoices and does not apply the search term.
func (r *invoiceRepository) FindByFilter(
	ctx context.Context,
	filter adapter.InvoiceFilter,
	pagination adapter.InvoicePagination,
) (*adapter.InvoiceListResult, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.InvoiceModel{}).
		Where("user_id = ?", filter.UserID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	query := joinedInvoices(db).Where("invoices.user_id = ?", filter.UserID)
	query = withInvoiceSearch(query, r.db.Dialector.Name(), filter.Search)

	var rows []model.InvoiceWithClientRow
	result := query.
		Order(invoiceOrderClause(filter.SortField, filter.SortAscending)).
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.InvoiceWithClient, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToEntity()
	}

	return &adapter.InvoiceListResult{
		Invoices: invoices,
		Total:    total,
		Page:     pagination.Page,
		Limit:    pagination.Limit,
	}, nil
}

// FindForYear returns the figures of the user's invoices issued within the calendar year.
func (r *invoiceRepository) FindForYear(ctx context.Context, userID uuid.UUID, year int) ([]entity.InvoiceFigure, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var rows []model.InvoiceFigureRow
	result := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Select("issue_date, amount, paid").
		Where("user_id = ? AND issue_date >= ? AND issue_date < ?", userID, start, end).
		Order("issue_date ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	figures := make([]entity.InvoiceFigure, len(rows))
	for i, row := range rows {
		figures[i] = row.ToEntity()
	}
	return figures, nil
}
