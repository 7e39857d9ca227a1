package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListPaymentFilter struct {
	InvoiceID snowflake.ID
	Offset    int
	Limit     int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListPaymentFilter) ([]Payment, int64, error)
	ListByInvoice(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) ([]Payment, error)
	ListSince(ctx context.Context, db *gorm.DB, orgID snowflake.ID, since time.Time) ([]Payment, error)
}
