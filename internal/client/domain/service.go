package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type ListClientRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	Email     string
	City      string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type CreateClientRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	TaxID       *string `json:"tax_id"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

type UpdateClientRequest struct {
	ID          string  `json:"id"`
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	TaxID       *string `json:"tax_id"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

type Service interface {
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, req CreateClientRequest) (*Client, error)
	Update(ctx context.Context, req UpdateClientRequest) (*Client, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_client_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrClientNotFound      = errors.New("client_not_found")
)
