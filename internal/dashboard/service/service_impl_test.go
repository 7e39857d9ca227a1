package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/batidesk/batidesk/internal/clock"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	invoicerepository "github.com/batidesk/batidesk/internal/invoice/repository"
	"github.com/batidesk/batidesk/internal/orgcontext"
	paymentdomain "github.com/batidesk/batidesk/internal/payment/domain"
	paymentrepository "github.com/batidesk/batidesk/internal/payment/repository"
	projectdomain "github.com/batidesk/batidesk/internal/project/domain"
	projectrepository "github.com/batidesk/batidesk/internal/project/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&invoicedomain.Invoice{},
		&paymentdomain.Payment{},
		&projectdomain.Project{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		clock:       clock.FixedClock{At: testNow},
		invoiceRepo: invoicerepository.Provide(),
		paymentRepo: paymentrepository.Provide(),
		projectRepo: projectrepository.Provide(),
	}
	ctx := orgcontext.WithOrgID(context.Background(), 1)
	return svc, ctx
}

func insertInvoice(t *testing.T, db *gorm.DB, id int64, docType invoicedomain.InvoiceType, status invoicedomain.InvoiceStatus, total float64, dueDate *time.Time) {
	t.Helper()
	invoice := invoicedomain.Invoice{
		ID:            snowflake.ID(id),
		OrgID:         1,
		Type:          docType,
		InvoiceNumber: invoiceNumberFor(id, docType),
		Status:        status,
		IssueDate:     testNow.AddDate(0, -2, 0),
		DueDate:       dueDate,
		TotalAmount:   total,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("insert invoice %d: %v", id, err)
	}
}

func invoiceNumberFor(id int64, docType invoicedomain.InvoiceType) string {
	prefix := "FAC"
	if docType == invoicedomain.InvoiceTypeQuote {
		prefix = "DEV"
	}
	return fmt.Sprintf("%s-2026-%04d", prefix, id)
}

func insertPayment(t *testing.T, db *gorm.DB, id, invoiceID int64, amount float64) {
	t.Helper()
	payment := paymentdomain.Payment{
		ID:        snowflake.ID(id),
		OrgID:     1,
		InvoiceID: snowflake.ID(invoiceID),
		Amount:    amount,
		Method:    paymentdomain.MethodTransfer,
		PaidAt:    testNow.AddDate(0, -1, 0),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("insert payment: %v", err)
	}
}

func TestOverviewAggregatesTotals(t *testing.T) {
	svc, ctx := newTestService(t)

	past := testNow.AddDate(0, -1, 0)
	future := testNow.AddDate(0, 1, 0)
	insertInvoice(t, svc.db, 1, invoicedomain.InvoiceTypeQuote, invoicedomain.InvoiceStatusSent, 5000, nil)
	insertInvoice(t, svc.db, 2, invoicedomain.InvoiceTypeInvoice, invoicedomain.InvoiceStatusSent, 3000, &past)
	insertInvoice(t, svc.db, 3, invoicedomain.InvoiceTypeInvoice, invoicedomain.InvoiceStatusPaid, 2000, &future)
	insertInvoice(t, svc.db, 4, invoicedomain.InvoiceTypeInvoice, invoicedomain.InvoiceStatusCancelled, 9000, nil)
	insertPayment(t, svc.db, 10, 3, 2000)
	insertPayment(t, svc.db, 11, 2, 500)

	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.QuoteCount != 1 || overview.InvoiceCount != 2 {
		t.Fatalf("expected 1 quote / 2 invoices, got %d / %d", overview.QuoteCount, overview.InvoiceCount)
	}
	if math.Abs(overview.TotalInvoiced-5000) > 1e-9 {
		t.Fatalf("expected 5000 invoiced (cancelled excluded), got %v", overview.TotalInvoiced)
	}
	if math.Abs(overview.TotalPaid-2500) > 1e-9 {
		t.Fatalf("expected 2500 paid, got %v", overview.TotalPaid)
	}
	if math.Abs(overview.Outstanding-2500) > 1e-9 {
		t.Fatalf("expected 2500 outstanding, got %v", overview.Outstanding)
	}
	if overview.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue invoice, got %d", overview.OverdueCount)
	}
	if overview.InvoicesByStatus["CANCELLED"] != 1 {
		t.Fatalf("expected cancelled counted by status, got %v", overview.InvoicesByStatus)
	}
}

func TestOverviewCountsProjectsInProgress(t *testing.T) {
	svc, ctx := newTestService(t)

	for i, status := range []projectdomain.Status{
		projectdomain.StatusInProgress,
		projectdomain.StatusInProgress,
		projectdomain.StatusCompleted,
	} {
		project := projectdomain.Project{
			ID:     snowflake.ID(20 + i),
			OrgID:  1,
			Name:   "Chantier",
			Status: status,
		}
		if err := svc.db.Create(&project).Error; err != nil {
			t.Fatalf("insert project: %v", err)
		}
	}

	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.ProjectsInProgress != 2 {
		t.Fatalf("expected 2 projects in progress, got %d", overview.ProjectsInProgress)
	}
}

func TestOverviewRequiresOrganization(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatalf("expected error without organization")
	}
}
