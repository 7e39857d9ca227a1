// Package domain contains tenant persistence models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the member's capability level inside an organization.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleClient  Role = "CLIENT"
	RolePartner Role = "PARTNER"
)

// Organization is a tenant: one construction company and its clients
// and partner contractors.
type Organization struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex"`
	IsDefault bool         `gorm:"not null;default:false"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	OrgID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_org_member"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_org_member"`
	Role      Role         `gorm:"type:text;not null;default:'CLIENT'"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OrganizationMember) TableName() string { return "organization_members" }
