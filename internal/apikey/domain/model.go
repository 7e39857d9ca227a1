// Package domain contains API key models used for machine access.
package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/bwmarrin/snowflake"
)

// APIKey grants programmatic access scoped to one organization. Only
// the SHA-256 hash of the secret is stored.
type APIKey struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	KeyID      string       `gorm:"type:text;not null;uniqueIndex" json:"key_id"`
	KeyHash    string       `gorm:"type:text;not null;index" json:"-"`
	IsActive   bool         `gorm:"not null;default:true" json:"is_active"`
	LastUsedAt *time.Time   `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time   `json:"expires_at,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (APIKey) TableName() string { return "api_keys" }

// HashAPIKey hashes a raw key secret for storage and lookup.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NewSecret generates a random key secret. The raw value is shown once
// at creation time and never persisted.
func NewSecret() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return "bk_" + hex.EncodeToString(buf[:]), nil
}
