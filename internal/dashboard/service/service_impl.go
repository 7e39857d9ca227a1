package service

import (
	"context"
	"time"

	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/dashboard/domain"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	paymentdomain "github.com/batidesk/batidesk/internal/payment/domain"
	projectdomain "github.com/batidesk/batidesk/internal/project/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// listPageSize bounds each repository page while walking the full
// document set.
const listPageSize = 500

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	InvoiceRepo invoicedomain.Repository
	PaymentRepo paymentdomain.Repository
	ProjectRepo projectdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	invoiceRepo invoicedomain.Repository
	paymentRepo paymentdomain.Repository
	projectRepo projectdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		clock:       p.Clock,
		invoiceRepo: p.InvoiceRepo,
		paymentRepo: p.PaymentRepo,
		projectRepo: p.ProjectRepo,
	}
}

func (s *Service) Overview(ctx context.Context) (*domain.Overview, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	overview := domain.Overview{
		InvoicesByStatus: map[string]int64{},
	}
	now := s.clock.Now()

	invoices, err := s.listAllInvoices(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		inv := &invoices[i]
		overview.InvoicesByStatus[string(inv.Status)]++
		if inv.Status == invoicedomain.InvoiceStatusCancelled {
			continue
		}
		switch inv.Type {
		case invoicedomain.InvoiceTypeQuote:
			overview.QuoteCount++
			overview.TotalQuoted += inv.TotalAmount
		case invoicedomain.InvoiceTypeInvoice:
			overview.InvoiceCount++
			overview.TotalInvoiced += inv.TotalAmount
			if inv.Status != invoicedomain.InvoiceStatusPaid &&
				inv.DueDate != nil && inv.DueDate.Before(now) {
				overview.OverdueCount++
			}
		}
	}

	payments, err := s.paymentRepo.ListSince(ctx, s.db, orgID, time.Time{})
	if err != nil {
		return nil, err
	}
	for i := range payments {
		overview.TotalPaid += payments[i].Amount
	}

	overview.Outstanding = overview.TotalInvoiced - overview.TotalPaid
	if overview.Outstanding < 0 {
		overview.Outstanding = 0
	}

	inProgress, err := s.projectRepo.CountByStatus(ctx, s.db, orgID, projectdomain.StatusInProgress)
	if err != nil {
		return nil, err
	}
	overview.ProjectsInProgress = inProgress

	return &overview, nil
}

func (s *Service) listAllInvoices(ctx context.Context, orgID snowflake.ID) ([]invoicedomain.Invoice, error) {
	var all []invoicedomain.Invoice
	offset := 0
	for {
		page, total, err := s.invoiceRepo.List(ctx, s.db, orgID, invoicedomain.ListInvoiceFilter{
			Offset: offset,
			Limit:  listPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || int64(offset) >= total {
			return all, nil
		}
	}
}
