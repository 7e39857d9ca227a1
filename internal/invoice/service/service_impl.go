package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/batidesk/batidesk/internal/clock"
	"github.com/batidesk/batidesk/internal/events"
	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	"github.com/batidesk/batidesk/internal/invoice/render"
	templatedomain "github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/batidesk/batidesk/internal/invoicetemplate/fetch"
	"github.com/batidesk/batidesk/internal/observability/metrics"
	"github.com/batidesk/batidesk/internal/orgcontext"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         invoicedomain.Repository
	TemplateRepo templatedomain.Repository
	Fetcher      fetch.Fetcher
	Renderer     render.Renderer
	Metrics      *metrics.DocumentMetrics `optional:"true"`
	Outbox       *events.Outbox           `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         invoicedomain.Repository
	templateRepo templatedomain.Repository
	fetcher      fetch.Fetcher
	renderer     render.Renderer
	metrics      *metrics.DocumentMetrics
	outbox       *events.Outbox
}

func NewService(p Params) invoicedomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		templateRepo: p.TemplateRepo,
		fetcher:      p.Fetcher,
		renderer:     p.Renderer,
		metrics:      p.Metrics,
		outbox:       p.Outbox,
	}
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	var resp invoicedomain.ListInvoiceResponse

	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return resp, invoicedomain.ErrInvalidOrganization
	}

	filter := invoicedomain.ListInvoiceFilter{
		Type:   invoicedomain.InvoiceType(strings.TrimSpace(req.Type)),
		Status: invoicedomain.InvoiceStatus(strings.TrimSpace(req.Status)),
		Offset: pagination.DecodeToken(req.PageToken),
		Limit:  pagination.Limit(req.PageSize),
	}
	if req.ProjectID != "" {
		projectID, err := invoicedomain.ParseID(req.ProjectID)
		if err != nil {
			return resp, invoicedomain.ErrInvalidID
		}
		filter.ProjectID = projectID
	}
	if req.ClientID != "" {
		clientID, err := invoicedomain.ParseID(req.ClientID)
		if err != nil {
			return resp, invoicedomain.ErrInvalidID
		}
		filter.ClientID = clientID
	}

	invoices, total, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return resp, err
	}

	resp.Invoices = invoices
	resp.TotalSize = total
	resp.NextPageToken = pagination.EncodeToken(filter.Offset, len(invoices), total)
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.GetInvoiceResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, invoicedomain.ErrInvalidOrganization
	}
	invoiceID, err := invoicedomain.ParseID(id)
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, orgID, inv.ID)
	if err != nil {
		return nil, err
	}

	var client *invoicedomain.ClientRecord
	if inv.ClientID != nil {
		client, err = s.repo.FindClient(ctx, s.db, orgID, *inv.ClientID)
		if err != nil {
			return nil, err
		}
	}

	return &invoicedomain.GetInvoiceResponse{Invoice: *inv, Items: items, Client: client}, nil
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.GetInvoiceResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, invoicedomain.ErrInvalidOrganization
	}

	invoiceType := invoicedomain.InvoiceType(strings.ToLower(strings.TrimSpace(req.Type)))
	if invoiceType != invoicedomain.InvoiceTypeQuote && invoiceType != invoicedomain.InvoiceTypeInvoice {
		return nil, invoicedomain.ErrInvalidType
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" || item.Quantity < 0 || item.UnitPrice < 0 {
			return nil, invoicedomain.ErrInvalidItems
		}
	}

	now := s.clock.Now()
	issueDate := now
	if req.IssueDate != nil && !req.IssueDate.IsZero() {
		issueDate = *req.IssueDate
	}

	number, err := s.nextInvoiceNumber(ctx, orgID, invoiceType, issueDate)
	if err != nil {
		return nil, err
	}

	inv := invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		Type:          invoiceType,
		InvoiceNumber: number,
		Status:        invoicedomain.InvoiceStatusDraft,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
		TaxRate:       req.TaxRate,
		Notes:         req.Notes,
		Terms:         req.Terms,
		Reference:     req.Reference,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.ProjectID != "" {
		projectID, err := invoicedomain.ParseID(req.ProjectID)
		if err != nil {
			return nil, invoicedomain.ErrInvalidID
		}
		inv.ProjectID = &projectID
	}
	if req.ClientID != "" {
		clientID, err := invoicedomain.ParseID(req.ClientID)
		if err != nil {
			return nil, invoicedomain.ErrInvalidID
		}
		inv.ClientID = &clientID
	}
	if req.TemplateID != "" {
		templateID, err := invoicedomain.ParseID(req.TemplateID)
		if err != nil {
			return nil, invoicedomain.ErrInvalidID
		}
		inv.TemplateID = &templateID
	}

	items := s.buildItems(orgID, inv.ID, req.Items, now)
	applyTotals(&inv, items)

	if err := s.repo.Insert(ctx, s.db, &inv, items); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		OrgID: orgID,
		Type:  events.EventInvoiceCreated,
		Payload: events.InvoicePayload{
			InvoiceID:     inv.ID.String(),
			InvoiceNumber: inv.InvoiceNumber,
			Type:          string(inv.Type),
		}.ToMap(),
		DedupeKey: events.EventInvoiceCreated + "/" + inv.ID.String(),
	})

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("type", string(inv.Type)),
	)
	return &invoicedomain.GetInvoiceResponse{Invoice: inv, Items: items}, nil
}

func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateInvoiceRequest) (*invoicedomain.GetInvoiceResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, invoicedomain.ErrInvalidOrganization
	}
	invoiceID, err := invoicedomain.ParseID(req.ID)
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}

	if req.Status != nil {
		inv.Status = invoicedomain.InvoiceStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	if req.Terms != nil {
		inv.Terms = req.Terms
	}
	if req.Reference != nil {
		inv.Reference = req.Reference
	}

	now := s.clock.Now()
	inv.UpdatedAt = now

	var items []invoicedomain.InvoiceItem
	if req.Items != nil {
		for _, item := range req.Items {
			if strings.TrimSpace(item.Description) == "" || item.Quantity < 0 || item.UnitPrice < 0 {
				return nil, invoicedomain.ErrInvalidItems
			}
		}
		items = s.buildItems(orgID, inv.ID, req.Items, now)
		applyTotals(inv, items)
	}

	if err := s.repo.Update(ctx, s.db, inv, items); err != nil {
		return nil, err
	}
	if req.Status != nil {
		s.publishEvent(ctx, events.Event{
			OrgID: orgID,
			Type:  events.EventInvoiceStatusChanged,
			Payload: events.InvoicePayload{
				InvoiceID:     inv.ID.String(),
				InvoiceNumber: inv.InvoiceNumber,
				Type:          string(inv.Type),
				Status:        string(inv.Status),
			}.ToMap(),
			DedupeKey: fmt.Sprintf("%s/%s/%s", events.EventInvoiceStatusChanged, inv.ID.String(), inv.Status),
		})
	}
	if items == nil {
		items, err = s.repo.ListItems(ctx, s.db, orgID, inv.ID)
		if err != nil {
			return nil, err
		}
	}
	return &invoicedomain.GetInvoiceResponse{Invoice: *inv, Items: items}, nil
}

// RenderDocument produces the final devis/facture document. PDF output
// is not implemented and always fails; HTML output never fails once
// the invoice resolves.
func (s *Service) RenderDocument(ctx context.Context, req invoicedomain.RenderDocumentRequest) (*invoicedomain.RenderedDocument, error) {
	if req.Format == invoicedomain.DocumentFormatPDF {
		return nil, invoicedomain.ErrPDFNotImplemented
	}

	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, invoicedomain.ErrInvalidOrganization
	}
	invoiceID, err := invoicedomain.ParseID(req.ID)
	if err != nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}

	inv, err := s.repo.FindByID(ctx, s.db, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, orgID, inv.ID)
	if err != nil {
		return nil, err
	}

	var client *invoicedomain.ClientRecord
	if inv.ClientID != nil {
		client, err = s.repo.FindClient(ctx, s.db, orgID, *inv.ClientID)
		if err != nil {
			return nil, err
		}
	}

	resolution := s.resolveTemplate(ctx, orgID, inv)
	if resolution.state == templateFetchFailed {
		s.metrics.IncTemplateFetchFailure()
	}

	start := s.clock.Now()
	html, err := s.renderer.RenderHTML(render.RenderInput{
		Template: resolution.text,
		Invoice:  toInvoiceView(inv),
		Client:   toClientView(client),
		Items:    toItemViews(items),
	})
	if err != nil {
		s.metrics.ObserveRender(string(inv.Type), "failed", string(req.Format), time.Since(start))
		return nil, err
	}
	s.metrics.ObserveRender(string(inv.Type), resolution.state.metricResult(), string(req.Format), time.Since(start))

	filename := strings.TrimSpace(inv.InvoiceNumber)
	if filename == "" {
		filename = "invoice"
	}

	return &invoicedomain.RenderedDocument{
		HTML:     html,
		Filename: filename + ".html",
		Inline:   req.Preview,
	}, nil
}

// publishEvent writes a best-effort outbox event. The outbox is
// optional and a failed write never fails the document operation.
func (s *Service) publishEvent(ctx context.Context, event events.Event) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Publish(ctx, event); err != nil {
		s.log.Warn("outbox publish failed",
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
	}
}

// templateState names the outcome of template resolution. Everything
// except templateFound collapses to the built-in default template.
type templateState int

const (
	templateFound templateState = iota
	templateNotConfigured
	templateFetchFailed
)

func (s templateState) metricResult() string {
	switch s {
	case templateFound:
		return "custom"
	case templateFetchFailed:
		return "fallback"
	default:
		return "default"
	}
}

type templateResolution struct {
	state templateState
	text  string
}

func (s *Service) resolveTemplate(ctx context.Context, orgID snowflake.ID, inv *invoicedomain.Invoice) templateResolution {
	if inv.TemplateID == nil {
		return templateResolution{state: templateNotConfigured}
	}

	tmpl, err := s.templateRepo.FindByID(ctx, s.db, orgID, *inv.TemplateID)
	if err != nil || tmpl == nil {
		if err != nil {
			s.log.Warn("template lookup failed, using default template",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err),
			)
		}
		return templateResolution{state: templateNotConfigured}
	}
	if tmpl.FileType != templatedomain.TemplateFileTypeHTML || tmpl.TemplateFileURL == nil {
		return templateResolution{state: templateNotConfigured}
	}

	text, err := s.fetcher.Fetch(ctx, *tmpl.TemplateFileURL)
	if err != nil {
		s.log.Warn("template fetch failed, using default template",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("template_id", tmpl.ID.String()),
			zap.Error(err),
		)
		return templateResolution{state: templateFetchFailed}
	}
	return templateResolution{state: templateFound, text: text}
}

func (s *Service) nextInvoiceNumber(ctx context.Context, orgID snowflake.ID, invoiceType invoicedomain.InvoiceType, issueDate time.Time) (string, error) {
	count, err := s.repo.CountByType(ctx, s.db, orgID, invoiceType)
	if err != nil {
		return "", err
	}
	prefix := "FAC"
	if invoiceType == invoicedomain.InvoiceTypeQuote {
		prefix = "DEV"
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, issueDate.Year(), count+1), nil
}

func (s *Service) buildItems(orgID, invoiceID snowflake.ID, inputs []invoicedomain.InvoiceItemInput, now time.Time) []invoicedomain.InvoiceItem {
	// When the caller supplies no explicit ordering, positions follow
	// the input order.
	explicit := false
	for _, input := range inputs {
		if input.OrderIndex != 0 {
			explicit = true
			break
		}
	}

	items := make([]invoicedomain.InvoiceItem, 0, len(inputs))
	for i, input := range inputs {
		orderIndex := input.OrderIndex
		if !explicit {
			orderIndex = i
		}
		items = append(items, invoicedomain.InvoiceItem{
			ID:          s.genID.Generate(),
			OrgID:       orgID,
			InvoiceID:   invoiceID,
			Description: strings.TrimSpace(input.Description),
			Quantity:    input.Quantity,
			Unit:        input.Unit,
			UnitPrice:   input.UnitPrice,
			LineTotal:   input.Quantity * input.UnitPrice,
			OrderIndex:  orderIndex,
			CreatedAt:   now,
		})
	}
	return items
}

// applyTotals recomputes monetary totals from line items.
func applyTotals(inv *invoicedomain.Invoice, items []invoicedomain.InvoiceItem) {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal * inv.TaxRate / 100
	inv.TotalAmount = inv.Subtotal + inv.TaxAmount
}

func toInvoiceView(inv *invoicedomain.Invoice) render.InvoiceView {
	issueDate := inv.IssueDate
	view := render.InvoiceView{
		Number:    inv.InvoiceNumber,
		Type:      string(inv.Type),
		IssueDate: &issueDate,
		DueDate:   inv.DueDate,
		Subtotal:  inv.Subtotal,
		TaxRate:   inv.TaxRate,
		TaxAmount: inv.TaxAmount,
		Total:     inv.TotalAmount,
	}
	if inv.Notes != nil {
		view.Notes = *inv.Notes
	}
	if inv.Terms != nil {
		view.Terms = *inv.Terms
	}
	if inv.Reference != nil {
		view.Reference = *inv.Reference
	}
	return view
}

func toClientView(client *invoicedomain.ClientRecord) *render.ClientView {
	if client == nil {
		return nil
	}
	view := render.ClientView{
		Name:  client.FullName,
		Email: client.Email,
	}
	if client.CompanyName != nil {
		view.CompanyName = *client.CompanyName
	}
	if client.Address != nil {
		view.Address = *client.Address
	}
	if client.City != nil {
		view.City = *client.City
	}
	if client.PostalCode != nil {
		view.PostalCode = *client.PostalCode
	}
	if client.Phone != nil {
		view.Phone = *client.Phone
	}
	if client.TaxID != nil {
		view.TaxID = *client.TaxID
	}
	return &view
}

func toItemViews(items []invoicedomain.InvoiceItem) []render.LineItemView {
	views := make([]render.LineItemView, 0, len(items))
	for _, item := range items {
		view := render.LineItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			OrderIndex:  item.OrderIndex,
		}
		if item.Unit != nil {
			view.Unit = *item.Unit
		}
		views = append(views, view)
	}
	return views
}
