package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type gormRepository struct{}

// Provide constructs the gorm-backed template repository.
func Provide() domain.Repository {
	return &gormRepository{}
}

func (r *gormRepository) Insert(ctx context.Context, db *gorm.DB, tmpl *domain.InvoiceTemplate) error {
	return db.WithContext(ctx).Create(tmpl).Error
}

func (r *gormRepository) Update(ctx context.Context, db *gorm.DB, tmpl *domain.InvoiceTemplate) error {
	return db.WithContext(ctx).Save(tmpl).Error
}

func (r *gormRepository) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&domain.InvoiceTemplate{}).Error
}

func (r *gormRepository) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.InvoiceTemplate, error) {
	var tmpl domain.InvoiceTemplate
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *gormRepository) FindDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (*domain.InvoiceTemplate, error) {
	var tmpl domain.InvoiceTemplate
	err := db.WithContext(ctx).
		Where("org_id = ? AND is_default = ?", orgID, true).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *gormRepository) ClearDefault(ctx context.Context, db *gorm.DB, orgID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.InvoiceTemplate{}).
		Where("org_id = ? AND is_default = ?", orgID, true).
		Update("is_default", false).Error
}

func (r *gormRepository) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListRequest) ([]domain.InvoiceTemplate, error) {
	query := db.WithContext(ctx).Where("org_id = ?", orgID)
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if templateType := strings.TrimSpace(filter.Type); templateType != "" {
		query = query.Where("type = ?", templateType)
	}
	if filter.IsDefault != nil {
		query = query.Where("is_default = ?", *filter.IsDefault)
	}

	var templates []domain.InvoiceTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
