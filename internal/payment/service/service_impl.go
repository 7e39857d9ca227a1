package service

import (
	"context"

	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/events"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/batidesk/batidesk/internal/payment/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// settlementEpsilon absorbs float rounding when comparing the paid sum
// to the invoice total.
const settlementEpsilon = 0.005

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	InvoiceRepo invoicedomain.Repository
	Outbox      *events.Outbox `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	invoiceRepo invoicedomain.Repository
	outbox      *events.Outbox
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
		outbox:      p.Outbox,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordPaymentRequest) (*domain.Payment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}

	invoiceID, err := domain.ParseID(req.InvoiceID)
	if err != nil {
		return nil, domain.ErrInvalidInvoice
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	method, err := domain.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}

	now := s.clock.Now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}
	payment := domain.Payment{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		InvoiceID: invoice.ID,
		Amount:    req.Amount,
		Method:    method,
		Reference: req.Reference,
		PaidAt:    paidAt,
		CreatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}
		err := s.publishTx(ctx, tx, events.Event{
			OrgID: orgID,
			Type:  events.EventPaymentRecorded,
			Payload: events.PaymentPayload{
				PaymentID: payment.ID.String(),
				InvoiceID: invoice.ID.String(),
				Amount:    payment.Amount,
				Method:    string(payment.Method),
			}.ToMap(),
			DedupeKey: events.EventPaymentRecorded + "/" + payment.ID.String(),
		})
		if err != nil {
			return err
		}
		payments, err := s.repo.ListByInvoice(ctx, tx, orgID, invoice.ID)
		if err != nil {
			return err
		}
		if sumAmounts(payments)+settlementEpsilon >= invoice.TotalAmount &&
			invoice.Status != invoicedomain.InvoiceStatusPaid {
			invoice.Status = invoicedomain.InvoiceStatusPaid
			invoice.UpdatedAt = now
			if err := s.invoiceRepo.Update(ctx, tx, invoice, nil); err != nil {
				return err
			}
			return s.publishTx(ctx, tx, events.Event{
				OrgID: orgID,
				Type:  events.EventInvoiceSettled,
				Payload: events.InvoicePayload{
					InvoiceID:     invoice.ID.String(),
					InvoiceNumber: invoice.InvoiceNumber,
					Type:          string(invoice.Type),
					Status:        string(invoice.Status),
				}.ToMap(),
				DedupeKey: events.EventInvoiceSettled + "/" + invoice.ID.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Float64("amount", payment.Amount),
	)
	return &payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return domain.ListPaymentResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListPaymentFilter{
		Offset: pagination.DecodeToken(req.PageToken),
		Limit:  pagination.Limit(req.PageSize),
	}
	if req.InvoiceID != "" {
		invoiceID, err := domain.ParseID(req.InvoiceID)
		if err != nil {
			return domain.ListPaymentResponse{}, domain.ErrInvalidInvoice
		}
		filter.InvoiceID = invoiceID
	}

	payments, total, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}
	return domain.ListPaymentResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.EncodeToken(filter.Offset, len(payments), total),
			TotalSize:     total,
		},
		Payments: payments,
	}, nil
}

func (s *Service) Settlement(ctx context.Context, invoiceID string) (*domain.InvoiceSettlement, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidOrganization
	}
	id, err := domain.ParseID(invoiceID)
	if err != nil {
		return nil, domain.ErrInvalidInvoice
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}

	payments, err := s.repo.ListByInvoice(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}
	paid := sumAmounts(payments)
	remaining := invoice.TotalAmount - paid
	if remaining < 0 {
		remaining = 0
	}
	return &domain.InvoiceSettlement{
		InvoiceID:   invoice.ID,
		TotalAmount: invoice.TotalAmount,
		PaidAmount:  paid,
		Remaining:   remaining,
		Settled:     paid+settlementEpsilon >= invoice.TotalAmount,
	}, nil
}

// publishTx writes an outbox event inside the caller's transaction so
// the event commits or rolls back with the payment. The outbox is
// optional.
func (s *Service) publishTx(ctx context.Context, tx *gorm.DB, event events.Event) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.PublishTx(ctx, tx, event)
}

func sumAmounts(payments []domain.Payment) float64 {
	var sum float64
	for i := range payments {
		sum += payments[i].Amount
	}
	return sum
}
