package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TemplateFileType is the uploaded document kind. Only HTML templates
// participate in rendering.
type TemplateFileType string

const (
	TemplateFileTypeHTML TemplateFileType = "html"
	TemplateFileTypePDF  TemplateFileType = "pdf"
)

// InvoiceTemplate points at an externally stored template document used
// to render devis/facture output.
type InvoiceTemplate struct {
	ID              snowflake.ID     `gorm:"primaryKey"`
	OrgID           snowflake.ID     `gorm:"not null;index"`
	Name            string           `gorm:"type:text;not null"`
	Type            string           `gorm:"type:text;not null;default:'all'"`
	FileType        TemplateFileType `gorm:"type:text;not null;default:'html'"`
	TemplateFileURL *string          `gorm:"type:text"`
	IsDefault       bool             `gorm:"not null;default:false"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceTemplate) TableName() string { return "invoice_templates" }
