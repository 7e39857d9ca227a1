package server

import (
	"net/http"
	"strings"

	templatedomain "github.com/batidesk/batidesk/internal/invoicetemplate/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      List Invoice Templates
// @Description  List the organization's document templates
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        name        query  string  false  "Name filter"
// @Param        type        query  string  false  "Type filter (devis|facture|all)"
// @Param        is_default  query  bool    false  "Only the default template"
// @Success      200  {array}  templatedomain.Response
// @Router       /invoice-templates [get]
func (s *Server) ListInvoiceTemplates(c *gin.Context) {
	var query templatedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	templates, err := s.templateSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// @Summary      Create Invoice Template
// @Description  Register a document template
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        request body templatedomain.CreateRequest true "Create Template Request"
// @Success      200  {object}  templatedomain.Response
// @Router       /invoice-templates [post]
func (s *Server) CreateInvoiceTemplate(c *gin.Context) {
	var req templatedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	template, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice_template.create", "invoice_template", template.ID, map[string]interface{}{
		"name": template.Name,
		"type": template.Type,
	})
	c.JSON(http.StatusOK, gin.H{"data": template})
}

// @Summary      Get Invoice Template
// @Description  Get template by ID
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /invoice-templates/{id} [get]
func (s *Server) GetInvoiceTemplateByID(c *gin.Context) {
	template, err := s.templateSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}

// @Summary      Update Invoice Template
// @Description  Update template fields
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true  "Template ID"
// @Param        request body  templatedomain.UpdateRequest true  "Update Template Request"
// @Success      200  {object}  templatedomain.Response
// @Router       /invoice-templates/{id} [patch]
func (s *Server) UpdateInvoiceTemplate(c *gin.Context) {
	var req templatedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	template, err := s.templateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice_template.update", "invoice_template", template.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": template})
}

// @Summary      Set Default Invoice Template
// @Description  Mark a template as the organization default
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /invoice-templates/{id}/default [post]
func (s *Server) SetDefaultInvoiceTemplate(c *gin.Context) {
	template, err := s.templateSvc.SetDefault(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice_template.set_default", "invoice_template", template.ID, nil)
	c.JSON(http.StatusOK, gin.H{"data": template})
}

// @Summary      Delete Invoice Template
// @Description  Delete a template
// @Tags         invoice-templates
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Template ID"
// @Success      200  {object}  map[string]string
// @Router       /invoice-templates/{id} [delete]
func (s *Server) DeleteInvoiceTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.templateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "invoice_template.delete", "invoice_template", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}
