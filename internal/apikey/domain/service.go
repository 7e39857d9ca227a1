package domain

import (
	"context"
	"errors"
	"time"
)

// CreateResponse carries the one-time raw secret along with the stored
// record.
type CreateResponse struct {
	Key    APIKey `json:"key"`
	Secret string `json:"secret"`
}

type CreateRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	List(ctx context.Context) ([]APIKey, error)
	Revoke(ctx context.Context, keyID string) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrKeyNotFound         = errors.New("api_key_not_found")
)
