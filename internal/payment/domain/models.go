// Package domain contains payment records booked against invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Method is how the client settled the payment.
type Method string

const (
	MethodTransfer Method = "VIREMENT"
	MethodCheque   Method = "CHEQUE"
	MethodCash     Method = "ESPECES"
	MethodCard     Method = "CARTE"
)

// Payment is money received against an invoice. Partial payments are
// allowed; the invoice flips to PAID once the sum covers the total.
type Payment struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Amount    float64      `gorm:"not null" json:"amount"`
	Method    Method       `gorm:"type:text;not null;default:'VIREMENT'" json:"method"`
	Reference *string      `gorm:"type:text" json:"reference,omitempty"`
	PaidAt    time.Time    `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
