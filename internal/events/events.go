// Package events stores document lifecycle events in a transactional
// outbox so external consumers can replay what happened to a dossier.
package events

// Document event types written by the invoice and payment services.
const (
	EventInvoiceCreated       = "invoice.created"
	EventInvoiceStatusChanged = "invoice.status_changed"
	EventPaymentRecorded      = "payment.recorded"
	EventInvoiceSettled       = "invoice.settled"
)

// InvoicePayload captures the minimal data needed to follow an invoice
// event without re-reading the row.
type InvoicePayload struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Type          string `json:"type"`
	Status        string `json:"status,omitempty"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p InvoicePayload) ToMap() map[string]any {
	payload := map[string]any{
		"invoice_id":     p.InvoiceID,
		"invoice_number": p.InvoiceNumber,
		"type":           p.Type,
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	return payload
}

// PaymentPayload captures the minimal data needed to follow a payment
// event.
type PaymentPayload struct {
	PaymentID string  `json:"payment_id"`
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p PaymentPayload) ToMap() map[string]any {
	return map[string]any{
		"payment_id": p.PaymentID,
		"invoice_id": p.InvoiceID,
		"amount":     p.Amount,
		"method":     p.Method,
	}
}
