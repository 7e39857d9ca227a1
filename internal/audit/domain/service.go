package domain

import (
	"context"
	"errors"
	"time"
)

// RecordRequest describes an action to append to the trail. Actor and
// request details are filled in from the context by the service.
type RecordRequest struct {
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]interface{}
}

type ListRequest struct {
	Action     string
	TargetType string
	TargetID   string
	ActorType  string
	StartAt    *time.Time
	EndAt      *time.Time
	PageToken  string
	PageSize   int32
}

type ListResponse struct {
	Entries       []*AuditLog `json:"entries"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidAction       = errors.New("invalid_action")
)
