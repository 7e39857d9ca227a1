package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/batidesk/batidesk/internal/clock"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	invoicerepository "github.com/batidesk/batidesk/internal/invoice/repository"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/batidesk/batidesk/internal/payment/domain"
	"github.com/batidesk/batidesk/internal/payment/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}, &domain.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		genID:       node,
		clock:       clock.FixedClock{At: time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
		repo:        repository.Provide(),
		invoiceRepo: invoicerepository.Provide(),
	}
	ctx := orgcontext.WithOrgID(context.Background(), 1)
	return svc, ctx
}

func insertInvoice(t *testing.T, svc *Service, id int64, total float64) *invoicedomain.Invoice {
	t.Helper()
	invoice := invoicedomain.Invoice{
		ID:            snowflake.ID(id),
		OrgID:         1,
		Type:          invoicedomain.InvoiceTypeInvoice,
		InvoiceNumber: "FAC-2026-0001",
		Status:        invoicedomain.InvoiceStatusSent,
		IssueDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:   total,
	}
	if err := svc.db.Create(&invoice).Error; err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
	return &invoice
}

func TestRecordPartialPaymentKeepsInvoiceOpen(t *testing.T) {
	svc, ctx := newTestService(t)
	invoice := insertInvoice(t, svc, 100, 1000)

	payment, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceID: invoice.ID.String(),
		Amount:    400,
		Method:    "cheque",
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if payment.Method != domain.MethodCheque {
		t.Fatalf("expected CHEQUE, got %s", payment.Method)
	}

	reloaded, err := svc.invoiceRepo.FindByID(ctx, svc.db, 1, invoice.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if reloaded.Status != invoicedomain.InvoiceStatusSent {
		t.Fatalf("expected invoice still SENT, got %s", reloaded.Status)
	}
}

func TestRecordFullPaymentMarksInvoicePaid(t *testing.T) {
	svc, ctx := newTestService(t)
	invoice := insertInvoice(t, svc, 101, 1000)

	for _, amount := range []float64{400, 600} {
		if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
			InvoiceID: invoice.ID.String(),
			Amount:    amount,
		}); err != nil {
			t.Fatalf("record %v: %v", amount, err)
		}
	}

	reloaded, err := svc.invoiceRepo.FindByID(ctx, svc.db, 1, invoice.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if reloaded.Status != invoicedomain.InvoiceStatusPaid {
		t.Fatalf("expected PAID, got %s", reloaded.Status)
	}
}

func TestRecordValidation(t *testing.T) {
	svc, ctx := newTestService(t)
	invoice := insertInvoice(t, svc, 102, 500)

	if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceID: invoice.ID.String(),
		Amount:    0,
	}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceID: invoice.ID.String(),
		Amount:    10,
		Method:    "BITCOIN",
	}); !errors.Is(err, domain.ErrInvalidMethod) {
		t.Fatalf("expected invalid method, got %v", err)
	}
	if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceID: "999999",
		Amount:    10,
	}); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected invoice not found, got %v", err)
	}
}

func TestSettlementReportsRemaining(t *testing.T) {
	svc, ctx := newTestService(t)
	invoice := insertInvoice(t, svc, 103, 1200.50)

	if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
		InvoiceID: invoice.ID.String(),
		Amount:    200.50,
	}); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	settlement, err := svc.Settlement(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("settlement: %v", err)
	}
	if settlement.Settled {
		t.Fatalf("expected unsettled invoice")
	}
	if math.Abs(settlement.Remaining-1000) > 1e-9 {
		t.Fatalf("expected remaining 1000, got %v", settlement.Remaining)
	}
}

func TestListPaymentsByInvoice(t *testing.T) {
	svc, ctx := newTestService(t)
	first := insertInvoice(t, svc, 104, 100)
	second := invoicedomain.Invoice{
		ID:            105,
		OrgID:         1,
		Type:          invoicedomain.InvoiceTypeQuote,
		InvoiceNumber: "DEV-2026-0001",
		Status:        invoicedomain.InvoiceStatusSent,
		IssueDate:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		TotalAmount:   300,
	}
	if err := svc.db.Create(&second).Error; err != nil {
		t.Fatalf("insert second invoice: %v", err)
	}

	for _, spec := range []struct {
		invoiceID string
		amount    float64
	}{
		{first.ID.String(), 50},
		{second.ID.String(), 300},
	} {
		if _, err := svc.Record(ctx, domain.RecordPaymentRequest{
			InvoiceID: spec.invoiceID,
			Amount:    spec.amount,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	resp, err := svc.List(ctx, domain.ListPaymentRequest{InvoiceID: first.ID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalSize != 1 || len(resp.Payments) != 1 {
		t.Fatalf("expected 1 payment for invoice, got total=%d len=%d", resp.TotalSize, len(resp.Payments))
	}
	if resp.Payments[0].Amount != 50 {
		t.Fatalf("expected amount 50, got %v", resp.Payments[0].Amount)
	}
}
