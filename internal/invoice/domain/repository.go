package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ClientRecord is the denormalized client view consumed by rendering:
// a user row joined with its primary address row.
type ClientRecord struct {
	ID          snowflake.ID `gorm:"column:id" json:"id"`
	FullName    string       `gorm:"column:full_name" json:"full_name"`
	Email       string       `gorm:"column:email" json:"email"`
	Phone       *string      `gorm:"column:phone" json:"phone,omitempty"`
	CompanyName *string      `gorm:"column:company_name" json:"company_name,omitempty"`
	TaxID       *string      `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Address     *string      `gorm:"column:address" json:"address,omitempty"`
	City        *string      `gorm:"column:city" json:"city,omitempty"`
	PostalCode  *string      `gorm:"column:postal_code" json:"postal_code,omitempty"`
}

type ListInvoiceFilter struct {
	Type      InvoiceType
	Status    InvoiceStatus
	ProjectID snowflake.ID
	ClientID  snowflake.ID
	Offset    int
	Limit     int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inv *Invoice, items []InvoiceItem) error
	Update(ctx context.Context, db *gorm.DB, inv *Invoice, items []InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListInvoiceFilter) ([]Invoice, int64, error)
	ListItems(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) ([]InvoiceItem, error)
	FindClient(ctx context.Context, db *gorm.DB, orgID, clientID snowflake.ID) (*ClientRecord, error)
	CountByType(ctx context.Context, db *gorm.DB, orgID snowflake.ID, invoiceType InvoiceType) (int64, error)
}
