// Package repository implements the payment store.
package repository

import (
	"context"
	"time"

	"github.com/batidesk/batidesk/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository { return &repository{} }

func (r *repository) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repository) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListPaymentFilter) ([]domain.Payment, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("org_id = ?", orgID)

	if filter.InvoiceID != 0 {
		query = query.Where("invoice_id = ?", filter.InvoiceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := query.
		Order("paid_at DESC, id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *repository) ListByInvoice(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("org_id = ? AND invoice_id = ?", orgID, invoiceID).
		Order("paid_at ASC, id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListSince(ctx context.Context, db *gorm.DB, orgID snowflake.ID, since time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := db.WithContext(ctx).Where("org_id = ?", orgID)
	if !since.IsZero() {
		query = query.Where("paid_at >= ?", since)
	}
	err := query.Order("paid_at ASC, id ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
