// Package repository implements the client directory store on top of
// the users and addresses tables.
package repository

import (
	"context"
	"errors"

	authdomain "github.com/batidesk/batidesk/internal/auth/domain"
	"github.com/batidesk/batidesk/internal/client/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository { return &repository{} }

const clientColumns = `users.id AS id,
	users.full_name AS full_name,
	users.email AS email,
	users.phone AS phone,
	users.company_name AS company_name,
	users.tax_id AS tax_id,
	addresses.address AS address,
	addresses.city AS city,
	addresses.postal_code AS postal_code,
	users.created_at AS created_at`

func (r *repository) Insert(ctx context.Context, db *gorm.DB, user *authdomain.User, address *domain.Address) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	if address == nil {
		return nil
	}
	return db.WithContext(ctx).Create(address).Error
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, user *authdomain.User, address *domain.Address) error {
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	if address == nil {
		return nil
	}
	return db.WithContext(ctx).Save(address).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).
		Table("users").
		Select(clientColumns).
		Joins("LEFT JOIN addresses ON addresses.user_id = users.id").
		Where("users.org_id = ? AND users.id = ?", orgID, id).
		Take(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) FindUserByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*authdomain.User, error) {
	var user authdomain.User
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindAddressByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Address, error) {
	var address domain.Address
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListClientFilter) ([]domain.Client, int64, error) {
	query := db.WithContext(ctx).
		Table("users").
		Joins("LEFT JOIN addresses ON addresses.user_id = users.id").
		Joins("JOIN organization_members ON organization_members.user_id = users.id AND organization_members.role = ?", "CLIENT").
		Where("users.org_id = ?", orgID)

	if filter.Name != "" {
		query = query.Where("users.full_name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("users.email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.City != "" {
		query = query.Where("addresses.city LIKE ?", "%"+filter.City+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []domain.Client
	err := query.
		Select(clientColumns).
		Order("users.full_name ASC, users.id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}
