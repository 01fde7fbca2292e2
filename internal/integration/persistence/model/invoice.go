// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-manager/backend/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
// ClientID carries no foreign key: invoices survive the deletion of their client.
type InvoiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	IssueDate   time.Time       `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Paid        bool            `gorm:"not null"`
	Number      *string         `gorm:"type:varchar(100);uniqueIndex"`
	Description *string         `gorm:"type:text"`
	Attachment  *string         `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:          m.ID,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		IssueDate:   m.IssueDate.UTC(),
		Amount:      m.Amount,
		Paid:        m.Paid,
		Number:      m.Number,
		Description: m.Description,
		Attachment:  m.Attachment,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:          invoice.ID,
		UserID:      invoice.UserID,
		ClientID:    invoice.ClientID,
		IssueDate:   TruncateToDate(invoice.IssueDate),
		Amount:      invoice.Amount,
		Paid:        invoice.Paid,
		Number:      invoice.Number,
		Description: invoice.Description,
		Attachment:  invoice.Attachment,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}

// InvoiceWithClientRow is the result of joining an invoice with its client.
type InvoiceWithClientRow struct {
	InvoiceModel
	ClientName *string `gorm:"column:client_name"`
}

// ToEntity converts the joined row to a domain InvoiceWithClient.
func (r *InvoiceWithClientRow) ToEntity() *entity.InvoiceWithClient {
	return &entity.InvoiceWithClient{
		Invoice:    r.InvoiceModel.ToEntity(),
		ClientName: r.ClientName,
	}
}

// InvoiceFigureRow is the projection read by the yearly report.
type InvoiceFigureRow struct {
	IssueDate time.Time
	Amount    decimal.Decimal
	Paid      bool
}

// ToEntity converts the projection to a domain InvoiceFigure.
func (r InvoiceFigureRow) ToEntity() entity.InvoiceFigure {
	return entity.InvoiceFigure{
		IssueDate: r.IssueDate.UTC(),
		Amount:    r.Amount,
		Paid:      r.Paid,
	}
}

// TruncateToDate keeps the calendar day of t at midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
