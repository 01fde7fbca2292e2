// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/invoice-manager/backend/internal/application/adapter"
)

// invoiceOrderColumns whitelists the columns a listing can be ordered by.
var invoiceOrderColumns = map[adapter.InvoiceSortField]string{
	adapter.InvoiceSortByIssueDate:   "invoices.issue_date",
	adapter.InvoiceSortByAmount:      "invoices.amount",
	adapter.InvoiceSortByStatus:      "invoices.paid",
	adapter.InvoiceSortByNumber:      "invoices.number",
	adapter.InvoiceSortByDescription: "invoices.description",
	adapter.InvoiceSortByClient:      "clients.name",
	adapter.InvoiceSortByCreatedAt:   "invoices.created_at",
}

// invoiceOrderClause builds the ORDER BY clause. Ties are broken by id so pages stay stable.
func invoiceOrderClause(field adapter.InvoiceSortField, ascending bool) string {
	column, ok := invoiceOrderColumns[field]
	if !ok {
		column = invoiceOrderColumns[adapter.InvoiceSortByIssueDate]
	}
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	return column + " " + direction + ", invoices.id " + direction
}

// issueDateTextExpr renders the issue date as DD/MM/YYYY for the active dialect.
func issueDateTextExpr(dialect string) string {
	if dialect == "sqlite" {
		return "strftime('%d/%m/%Y', invoices.issue_date)"
	}
	return "TO_CHAR(invoices.issue_date, 'DD/MM/YYYY')"
}

// likeEscaper escapes the LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching term anywhere. Use it with likeEscape.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// likeEscape is appended to every LIKE built from containsPattern.
const likeEscape = ` ESCAPE '\'`

// withInvoiceSearch restricts the query to invoices whose number, description or
// rendered date contain the normalized term.
func withInvoiceSearch(query *gorm.DB, dialect, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := containsPattern(search)
	return query.Where(
		"LOWER(REPLACE(invoices.number, ' ', '')) LIKE ?"+likeEscape+" OR "+
			"LOWER(REPLACE(invoices.description, ' ', '')) LIKE ?"+likeEscape+" OR "+
			issueDateTextExpr(dialect)+" LIKE ?"+likeEscape,
		pattern, pattern, pattern,
	)
}

// joinedInvoices selects invoices together with the name of a client of the same owner.
func joinedInvoices(db *gorm.DB) *gorm.DB {
	return db.Table("invoices").
		Select("invoices.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = invoices.client_id AND clients.user_id = invoices.user_id")
}
