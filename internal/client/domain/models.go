// Package domain contains the client directory models. A client is a
// user row joined with its address row.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Address is the postal record attached to a user.
type Address struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	UserID     snowflake.ID `gorm:"not null;index"`
	Address    *string      `gorm:"type:text"`
	City       *string      `gorm:"type:text"`
	PostalCode *string      `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Address) TableName() string { return "addresses" }

// Client is the denormalized read view served by the directory.
type Client struct {
	ID          snowflake.ID `gorm:"column:id" json:"id"`
	FullName    string       `gorm:"column:full_name" json:"full_name"`
	Email       string       `gorm:"column:email" json:"email"`
	Phone       *string      `gorm:"column:phone" json:"phone,omitempty"`
	CompanyName *string      `gorm:"column:company_name" json:"company_name,omitempty"`
	TaxID       *string      `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Address     *string      `gorm:"column:address" json:"address,omitempty"`
	City        *string      `gorm:"column:city" json:"city,omitempty"`
	PostalCode  *string      `gorm:"column:postal_code" json:"postal_code,omitempty"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
}
