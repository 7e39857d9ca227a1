// Package domain contains persistence models for project invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceType distinguishes quotes from invoices. Both document kinds
// share the same rendering pipeline.
type InvoiceType string

const (
	InvoiceTypeQuote   InvoiceType = "devis"
	InvoiceTypeInvoice InvoiceType = "facture"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusAccepted  InvoiceStatus = "ACCEPTED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice represents a devis or facture issued for a project.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID      `gorm:"not null;index" json:"org_id"`
	ProjectID     *snowflake.ID     `gorm:"index" json:"project_id,omitempty"`
	ClientID      *snowflake.ID     `gorm:"index" json:"client_id,omitempty"`
	TemplateID    *snowflake.ID     `gorm:"index" json:"template_id,omitempty"`
	Type          InvoiceType       `gorm:"type:text;not null;index" json:"type"`
	InvoiceNumber string            `gorm:"type:text;not null;uniqueIndex:ux_invoice_number_org_type" json:"invoice_number"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	IssueDate     time.Time         `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time        `gorm:"" json:"due_date,omitempty"`
	Subtotal      float64           `gorm:"not null;default:0" json:"subtotal"`
	TaxRate       float64           `gorm:"not null;default:0" json:"tax_rate"`
	TaxAmount     float64           `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount   float64           `gorm:"not null;default:0" json:"total_amount"`
	Notes         *string           `gorm:"type:text" json:"notes,omitempty"`
	Terms         *string           `gorm:"type:text" json:"terms,omitempty"`
	Reference     *string           `gorm:"type:text" json:"reference,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem represents a line on an invoice. OrderIndex defines the
// display order, ascending.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"not null;index" json:"org_id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Quantity    float64      `gorm:"not null;default:1" json:"quantity"`
	Unit        *string      `gorm:"type:text" json:"unit,omitempty"`
	UnitPrice   float64      `gorm:"not null;default:0" json:"unit_price"`
	LineTotal   float64      `gorm:"not null;default:0" json:"line_total"`
	OrderIndex  int          `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
