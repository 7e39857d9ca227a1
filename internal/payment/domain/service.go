package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type RecordPaymentRequest struct {
	InvoiceID string     `json:"invoice_id"`
	Amount    float64    `json:"amount"`
	Method    string     `json:"method"`
	Reference *string    `json:"reference"`
	PaidAt    *time.Time `json:"paid_at"`
}

type ListPaymentRequest struct {
	PageToken string
	PageSize  int32
	InvoiceID string
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

// InvoiceSettlement reports how much of an invoice has been paid.
type InvoiceSettlement struct {
	InvoiceID   snowflake.ID `json:"invoice_id"`
	TotalAmount float64      `json:"total_amount"`
	PaidAmount  float64      `json:"paid_amount"`
	Remaining   float64      `json:"remaining"`
	Settled     bool         `json:"settled"`
}

type Service interface {
	Record(ctx context.Context, req RecordPaymentRequest) (*Payment, error)
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
	Settlement(ctx context.Context, invoiceID string) (*InvoiceSettlement, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

// ParseMethod validates a settlement method. Empty input defaults to
// bank transfer.
func ParseMethod(raw string) (Method, error) {
	method := Method(strings.ToUpper(strings.TrimSpace(raw)))
	switch method {
	case "":
		return MethodTransfer, nil
	case MethodTransfer, MethodCheque, MethodCash, MethodCard:
		return method, nil
	default:
		return "", ErrInvalidMethod
	}
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidInvoice      = errors.New("invalid_invoice")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidMethod       = errors.New("invalid_method")
	ErrInvoiceNotFound     = errors.New("invoice_not_found")
)
