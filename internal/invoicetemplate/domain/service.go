package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListRequest struct {
	Name      string `form:"name"`
	Type      string `form:"type"`
	IsDefault *bool  `form:"is_default"`
}

type CreateRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	FileType        string `json:"file_type"`
	TemplateFileURL string `json:"template_file_url"`
	IsDefault       bool   `json:"is_default"`
}

type UpdateRequest struct {
	ID              string  `json:"id"`
	Name            *string `json:"name"`
	Type            *string `json:"type"`
	FileType        *string `json:"file_type"`
	TemplateFileURL *string `json:"template_file_url"`
}

type Response struct {
	ID              string    `json:"id"`
	OrgID           string    `json:"organization_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	FileType        string    `json:"file_type"`
	TemplateFileURL *string   `json:"template_file_url,omitempty"`
	IsDefault       bool      `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	SetDefault(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidFileType     = errors.New("invalid_file_type")
	ErrInvalidFileURL      = errors.New("invalid_file_url")
	ErrNotFound            = errors.New("not_found")
)
