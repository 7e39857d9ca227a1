package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type ListProjectRequest struct {
	PageToken string
	PageSize  int32
	Status    string
	ClientID  string
	Name      string
}

type ListProjectResponse struct {
	pagination.PageInfo
	Projects []Project `json:"projects"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ClientID    *string    `json:"client_id"`
	Status      string     `json:"status"`
	Budget      *float64   `json:"budget"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	ID          string     `json:"id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ClientID    *string    `json:"client_id"`
	Status      *string    `json:"status"`
	Budget      *float64   `json:"budget"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type Service interface {
	List(ctx context.Context, req ListProjectRequest) (ListProjectResponse, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) (*Project, error)
	Delete(ctx context.Context, id string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

// ParseStatus validates a lifecycle state. Empty input defaults to
// PLANNED.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case "":
		return StatusPlanned, nil
	case StatusPlanned, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_project_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidClient       = errors.New("invalid_client")
	ErrInvalidDates        = errors.New("invalid_date_range")
	ErrProjectNotFound     = errors.New("project_not_found")
)
