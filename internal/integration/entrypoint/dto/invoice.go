// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/invoice-manager/backend/internal/application/usecase/invoice"
)

// DateLayout is the wire format of invoice issue dates.
const DateLayout = "2006-01-02"

// InvoiceResponse represents a single invoice in API responses.
type InvoiceResponse struct {
	ID            string    `json:"id"`
	ClientID      *string   `json:"clienteId"`
	ClientName    *string   `json:"clienteNombre"`
	IssueDate     string    `json:"fechaEmision"`
	Amount        float64   `json:"importe"`
	Paid          bool      `json:"estado"`
	Number        *string   `json:"numero"`
	Description   *string   `json:"descripcion"`
	Attachment    *string   `json:"archivo"`
	AttachmentURL *string   `json:"archivoUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// InvoiceListResponse represents a page of invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// ToInvoiceResponse converts an invoice output to its API representation.
func ToInvoiceResponse(output *invoice.InvoiceOutput) InvoiceResponse {
	var clientID *string
	if output.ClientID != nil {
		id := output.ClientID.String()
		clientID = &id
	}

	return InvoiceResponse{
		ID:            output.ID.String(),
		ClientID:      clientID,
		ClientName:    output.ClientName,
		IssueDate:     output.IssueDate.Format(DateLayout),
		Amount:        output.Amount.InexactFloat64(),
		Paid:          output.Paid,
		Number:        output.Number,
		Description:   output.Description,
		Attachment:    output.Attachment,
		AttachmentURL: output.AttachmentURL,
		CreatedAt:     output.CreatedAt,
		UpdatedAt:     output.UpdatedAt,
	}
}

// ToInvoiceListResponse converts a listing output to its API representation.
func ToInvoiceListResponse(output *invoice.ListInvoicesOutput) InvoiceListResponse {
	invoices := make([]InvoiceResponse, len(output.Invoices))
	for i, inv := range output.Invoices {
		invoices[i] = ToInvoiceResponse(inv)
	}
	return InvoiceListResponse{
		Invoices: invoices,
		Total:    output.Total,
		Page:     output.Page,
		Limit:    output.Limit,
	}
}
