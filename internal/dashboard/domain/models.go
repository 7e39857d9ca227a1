// Package domain contains the admin dashboard read models.
package domain

import (
	"context"
	"errors"
)

// Overview aggregates the organization's commercial position. Amounts
// are euro values summed over non-cancelled documents.
type Overview struct {
	QuoteCount         int64            `json:"quote_count"`
	InvoiceCount       int64            `json:"invoice_count"`
	TotalQuoted        float64          `json:"total_quoted"`
	TotalInvoiced      float64          `json:"total_invoiced"`
	TotalPaid          float64          `json:"total_paid"`
	Outstanding        float64          `json:"outstanding"`
	OverdueCount       int64            `json:"overdue_count"`
	ProjectsInProgress int64            `json:"projects_in_progress"`
	InvoicesByStatus   map[string]int64 `json:"invoices_by_status"`
}

// Service exposes the admin dashboard data.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

var ErrInvalidOrganization = errors.New("invalid_organization")
