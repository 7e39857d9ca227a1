package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

// DocumentFormat selects the output format of a rendered document.
type DocumentFormat string

const (
	DocumentFormatHTML DocumentFormat = "html"
	DocumentFormatPDF  DocumentFormat = "pdf"
)

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int32
	Type      string
	Status    string
	ProjectID string
	ClientID  string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type InvoiceItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        *string `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	OrderIndex  int     `json:"order_index"`
}

type CreateInvoiceRequest struct {
	Type       string
	ProjectID  string
	ClientID   string
	TemplateID string
	IssueDate  *time.Time
	DueDate    *time.Time
	TaxRate    float64
	Notes      *string
	Terms      *string
	Reference  *string
	Items      []InvoiceItemInput
}

type UpdateInvoiceRequest struct {
	ID        string
	Status    *string
	DueDate   *time.Time
	Notes     *string
	Terms     *string
	Reference *string
	Items     []InvoiceItemInput
}

// GetInvoiceResponse returns an invoice with its resolved relations.
type GetInvoiceResponse struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
	Client  *ClientRecord `json:"client,omitempty"`
}

// RenderDocumentRequest asks for a rendered devis/facture document.
type RenderDocumentRequest struct {
	ID      string
	Format  DocumentFormat
	Preview bool
}

// RenderedDocument is the final substituted document plus delivery
// metadata for the HTTP layer.
type RenderedDocument struct {
	HTML     string
	Filename string
	Inline   bool
}

type Service interface {
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (*GetInvoiceResponse, error)
	Create(ctx context.Context, req CreateInvoiceRequest) (*GetInvoiceResponse, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (*GetInvoiceResponse, error)
	RenderDocument(ctx context.Context, req RenderDocumentRequest) (*RenderedDocument, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_invoice_id")
	ErrInvalidType         = errors.New("invalid_invoice_type")
	ErrInvalidIssueDate    = errors.New("invalid_issue_date")
	ErrInvalidItems        = errors.New("invalid_invoice_items")
	ErrInvoiceNotFound     = errors.New("invoice_not_found")
	ErrPDFNotImplemented   = errors.New("pdf_generation_not_implemented")
)
