package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	invoicedomain "github.com/batidesk/batidesk/internal/invoice/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type invoiceItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        *string `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	OrderIndex  int     `json:"order_index"`
}

type createInvoiceRequest struct {
	Type       string               `json:"type"`
	ProjectID  string               `json:"project_id"`
	ClientID   string               `json:"client_id"`
	TemplateID string               `json:"template_id"`
	IssueDate  *time.Time           `json:"issue_date"`
	DueDate    *time.Time           `json:"due_date"`
	TaxRate    float64              `json:"tax_rate"`
	Notes      *string              `json:"notes"`
	Terms      *string              `json:"terms"`
	Reference  *string              `json:"reference"`
	Items      []invoiceItemRequest `json:"items"`
}

type updateInvoiceRequest struct {
	Status    *string              `json:"status"`
	DueDate   *time.Time           `json:"due_date"`
	Notes     *string              `json:"notes"`
	Terms     *string              `json:"terms"`
	Reference *string              `json:"reference"`
	Items     []invoiceItemRequest `json:"items"`
}

// @Summary      List Invoices
// @Description  List devis and factures
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        type        query  string  false  "Document type (devis|facture)"
// @Param        status      query  string  false  "Status"
// @Param        project_id  query  string  false  "Project ID"
// @Param        client_id   query  string  false  "Client ID"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Type      string `form:"type"`
		Status    string `form:"status"`
		ProjectID string `form:"project_id"`
		ClientID  string `form:"client_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Type:      strings.TrimSpace(query.Type),
		Status:    strings.TrimSpace(query.Status),
		ProjectID: strings.TrimSpace(query.ProjectID),
		ClientID:  strings.TrimSpace(query.ClientID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Invoice
// @Description  Create a devis or facture with line items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.GetInvoiceResponse
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		Type:       req.Type,
		ProjectID:  strings.TrimSpace(req.ProjectID),
		ClientID:   strings.TrimSpace(req.ClientID),
		TemplateID: strings.TrimSpace(req.TemplateID),
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
		Terms:      req.Terms,
		Reference:  req.Reference,
		Items:      toItemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.create", "invoice", resp.Invoice.ID.String(), map[string]interface{}{
		"invoice_number": resp.Invoice.InvoiceNumber,
		"type":           string(resp.Invoice.Type),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID with items and client
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.GetInvoiceResponse
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Update invoice fields or replace its items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                true  "Invoice ID"
// @Param        request body  updateInvoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.GetInvoiceResponse
// @Router       /invoices/{id} [patch]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := invoicedomain.UpdateInvoiceRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Status:    req.Status,
		DueDate:   req.DueDate,
		Notes:     req.Notes,
		Terms:     req.Terms,
		Reference: req.Reference,
	}
	if req.Items != nil {
		update.Items = toItemInputs(req.Items)
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.update", "invoice", resp.Invoice.ID.String(), map[string]interface{}{
		"invoice_number": resp.Invoice.InvoiceNumber,
		"status":         string(resp.Invoice.Status),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Render Invoice Document
// @Description  Produce the final devis/facture document
// @Tags         invoices
// @Produce      html
// @Param        id       path   string  true   "Invoice ID"
// @Param        format   query  string  false  "Output format (html|pdf)"  default(html)
// @Param        preview  query  bool    false  "Render inline instead of as an attachment"
// @Success      200  {string}  string  "Rendered HTML document"
// @Failure      501  {object}  apiError  "PDF output is not implemented"
// @Router       /invoices/{id}/document [get]
func (s *Server) RenderInvoiceDocument(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = string(invoicedomain.DocumentFormatHTML)
	}
	if format != string(invoicedomain.DocumentFormatHTML) &&
		format != string(invoicedomain.DocumentFormatPDF) {
		AbortWithError(c, newValidationError("format", "invalid_format", "format must be html or pdf"))
		return
	}
	preview := strings.EqualFold(strings.TrimSpace(c.Query("preview")), "true")

	doc, err := s.invoiceSvc.RenderDocument(c.Request.Context(), invoicedomain.RenderDocumentRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Format:  invoicedomain.DocumentFormat(format),
		Preview: preview,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice.render", "invoice", strings.TrimSpace(c.Param("id")), map[string]interface{}{
		"format":  format,
		"preview": preview,
	})

	if !doc.Inline {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc.HTML))
}

func toItemInputs(items []invoiceItemRequest) []invoicedomain.InvoiceItemInput {
	inputs := make([]invoicedomain.InvoiceItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, invoicedomain.InvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			OrderIndex:  item.OrderIndex,
		})
	}
	return inputs
}
