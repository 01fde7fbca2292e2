// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoice-manager/backend/internal/application/adapter"
	"github.com/invoice-manager/backend/internal/application/usecase/invoice"
	"github.com/invoice-manager/backend/internal/application/usecase/report"
	domainerror "github.com/invoice-manager/backend/internal/domain/error"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/dto"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase            *invoice.ListInvoicesUseCase
	getUseCase             *invoice.GetInvoiceUseCase
	createUseCase          *invoice.CreateInvoiceUseCase
	updateUseCase          *invoice.UpdateInvoiceUseCase
	deleteUseCase          *invoice.DeleteInvoiceUseCase
	clearAttachmentUseCase *invoice.ClearAttachmentUseCase
	summaryUseCase         *report.YearlySummaryUseCase
	maxUploadSize          int64
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	createUseCase *invoice.CreateInvoiceUseCase,
	updateUseCase *invoice.UpdateInvoiceUseCase,
	deleteUseCase *invoice.DeleteInvoiceUseCase,
	clearAttachmentUseCase *invoice.ClearAttachmentUseCase,
	summaryUseCase *report.YearlySummaryUseCase,
	maxUploadSize int64,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:            listUseCase,
		getUseCase:             getUseCase,
		createUseCase:          createUseCase,
		updateUseCase:          updateUseCase,
		deleteUseCase:          deleteUseCase,
		clearAttachmentUseCase: clearAttachmentUseCase,
		summaryUseCase:         summaryUseCase,
		maxUploadSize:          maxUploadSize,
	}
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), invoice.ListInvoicesInput{
		UserID:    userID,
		Page:      queryInt(ctx, "page"),
		Limit:     queryInt(ctx, "limit"),
		SortField: ctx.Query("sortField"),
		SortOrder: ctx.Query("sortOrder"),
		Search:    ctx.Query("search"),
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output))
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	invoiceID, ok := c.parseInvoiceID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{
		InvoiceID: invoiceID,
		UserID:    userID,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output))
}

// Create handles POST /invoices multipart requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	if !c.parseForm(ctx) {
		return
	}

	fields, err := parseInvoiceFields(ctx.GetPostForm)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	upload, closeUpload, ok := c.openAttachment(ctx)
	if !ok {
		return
	}
	defer closeUpload()

	output, err := c.createUseCase.Execute(ctx.Request.Context(), invoice.CreateInvoiceInput{
		UserID:      userID,
		ClientID:    fields.ClientID,
		IssueDate:   fields.IssueDate,
		Amount:      fields.Amount,
		Paid:        fields.Paid,
		Number:      fields.Number,
		Description: fields.Description,
		Attachment:  upload,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// Update handles PUT /invoices/:id multipart requests.
func (c *InvoiceController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	invoiceID, ok := c.parseInvoiceID(ctx)
	if !ok {
		return
	}
	if !c.parseForm(ctx) {
		return
	}

	fields, err := parseInvoiceFields(ctx.GetPostForm)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	upload, closeUpload, ok := c.openAttachment(ctx)
	if !ok {
		return
	}
	defer closeUpload()

	input := invoice.UpdateInvoiceInput{
		InvoiceID:  invoiceID,
		UserID:     userID,
		Attachment: upload,
	}
	fields.applyToUpdate(&input)

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	invoiceID, ok := c.parseInvoiceID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), invoice.DeleteInvoiceInput{
		InvoiceID: invoiceID,
		UserID:    userID,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Invoice deleted"})
}

// ClearAttachment handles DELETE /invoices/:id/attachment requests.
func (c *InvoiceController) ClearAttachment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	invoiceID, ok := c.parseInvoiceID(ctx)
	if !ok {
		return
	}

	output, err := c.clearAttachmentUseCase.Execute(ctx.Request.Context(), invoice.ClearAttachmentInput{
		InvoiceID: invoiceID,
		UserID:    userID,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output))
}

// Summary handles GET /invoices/summary?year=YYYY requests.
func (c *InvoiceController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.YearlySummaryInput{
		UserID: userID,
		Year:   ctx.Query("year"),
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToYearlySummaryResponse(summary))
}

func (c *InvoiceController) parseInvoiceID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid invoice ID format",
			Code:    string(domainerror.ErrCodeInvalidInvoiceID),
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseForm reads the request body as a form, bounded by the upload size limit.
func (c *InvoiceController) parseForm(ctx *gin.Context) bool {
	if c.maxUploadSize > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadSize)
	}

	err := ctx.Request.ParseMultipartForm(multipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Message: "Request body exceeds the upload size limit",
		})
		return false
	}

	slog.Warn("Rejected malformed invoice form", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid form body",
	})
	return false
}

// openAttachment opens the optional uploaded file. The returned closer is always safe to call.
func (c *InvoiceController) openAttachment(ctx *gin.Context) (*adapter.AttachmentUpload, func(), bool) {
	noop := func() {}

	header, err := ctx.FormFile(fieldAttachment)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, true
		}
		slog.Warn("Rejected invoice attachment", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid attachment",
		})
		return nil, noop, false
	}

	file, err := header.Open()
	if err != nil {
		slog.Error("Failed to open uploaded attachment", "filename", header.Filename, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to read attachment",
			Code:    string(domainerror.ErrCodeAttachmentIO),
		})
		return nil, noop, false
	}

	return &adapter.AttachmentUpload{
		Filename: header.Filename,
		Content:  file,
	}, closer(file), true
}

func closer(file multipart.File) func() {
	return func() {
		if err := file.Close(); err != nil {
			slog.Warn("Failed to close uploaded attachment", "error", err)
		}
	}
}

// handleInvoiceError maps invoice errors to HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if errors.As(err, &invErr) {
		statusCode := c.getStatusCodeForInvoiceError(invErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("Invoice request failed", "path", ctx.FullPath(), "code", invErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Message: invErr.Message,
			Code:    string(invErr.Code),
		})
		return
	}

	slog.Error("Unexpected invoice error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}

// getStatusCodeForInvoiceError maps invoice error codes to HTTP status codes.
// Duplicate numbers are reported as bad requests with their own code.
func (c *InvoiceController) getStatusCodeForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingInvoiceFields,
		domainerror.ErrCodeInvalidInvoiceAmount,
		domainerror.ErrCodeInvalidInvoiceDate,
		domainerror.ErrCodeInvalidInvoiceStatus,
		domainerror.ErrCodeInvalidInvoiceID,
		domainerror.ErrCodeNoAttachment,
		domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidClientID,
		domainerror.ErrCodeDuplicateInvoiceNumber:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
