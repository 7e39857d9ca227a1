package server

import (
	"fmt"
	"net/http"
	"strings"

	paymentdomain "github.com/batidesk/batidesk/internal/payment/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      List Payments
// @Description  List recorded payments, optionally scoped to one invoice
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        invoice_id  query  string  false  "Invoice ID filter"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  paymentdomain.ListPaymentResponse
// @Router       /payments [get]
func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		InvoiceID string `form:"invoice_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		InvoiceID: strings.TrimSpace(query.InvoiceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Record Payment
// @Description  Record a payment against an invoice. The invoice flips to PAID once fully settled.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentdomain.RecordPaymentRequest true "Record Payment Request"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /payments [post]
func (s *Server) RecordPayment(c *gin.Context) {
	var req paymentdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payment, err := s.paymentSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "payment.record", "payment", payment.ID.String(), map[string]interface{}{
		"invoice_id": payment.InvoiceID.String(),
		"amount":     fmt.Sprintf("%.2f", payment.Amount),
		"method":     string(payment.Method),
	})
	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// @Summary      Invoice Settlement
// @Description  Report the paid and remaining amounts of an invoice
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  paymentdomain.InvoiceSettlement
// @Router       /invoices/{id}/settlement [get]
func (s *Server) GetInvoiceSettlement(c *gin.Context) {
	settlement, err := s.paymentSvc.Settlement(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settlement})
}
