// Package domain contains account persistence models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an account that can sign in or be billed. Client and partner
// contact details live directly on the user row; postal details live in
// the addresses table.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	OrgID        snowflake.ID `gorm:"not null;index"`
	Provider     string       `gorm:"type:text;not null;default:'local'"`
	ExternalID   string       `gorm:"type:text;not null;index"`
	FullName     string       `gorm:"type:text;not null"`
	Email        string       `gorm:"type:text;not null;index"`
	Phone        *string      `gorm:"type:text"`
	CompanyName  *string      `gorm:"type:text"`
	TaxID        *string      `gorm:"type:text"`
	PasswordHash *string      `gorm:"type:text"`
	IsDefault    bool         `gorm:"not null;default:false"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
