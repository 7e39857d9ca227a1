package render

import (
	"sort"
	"strings"
	"time"
)

// InvoiceView is the deterministic invoice snapshot used for rendering.
type InvoiceView struct {
	Number    string
	Type      string
	IssueDate *time.Time
	DueDate   *time.Time
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
	Notes     string
	Terms     string
	Reference string
}

// ClientView carries the denormalized client contact block. A nil
// *ClientView resolves every client placeholder to the empty string.
type ClientView struct {
	Name        string
	CompanyName string
	Address     string
	City        string
	PostalCode  string
	Email       string
	Phone       string
	TaxID       string
}

// LineItemView is one billable row. OrderIndex drives display order;
// ties keep their relative input order.
type LineItemView struct {
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	OrderIndex  int
}

// RenderInput is the full input for one document render. Template holds
// the raw HTML of a custom template; when blank the embedded default
// template is used instead.
type RenderInput struct {
	Template string
	Invoice  InvoiceView
	Client   *ClientView
	Items    []LineItemView
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}

// HTMLRenderer substitutes placeholder tokens in an HTML template with
// formatted invoice data. It is stateless and never mutates its input.
type HTMLRenderer struct{}

func NewRenderer() Renderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	tpl := input.Template
	if strings.TrimSpace(tpl) == "" {
		tpl = defaultTemplate
	}

	items := make([]LineItemView, len(input.Items))
	copy(items, input.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderIndex < items[j].OrderIndex
	})

	values := buildValues(input.Invoice, input.Client, items)
	return Substitute(tpl, values), nil
}

func buildValues(inv InvoiceView, client *ClientView, items []LineItemView) map[string]string {
	values := map[string]string{
		"INVOICE_NUMBER":    inv.Number,
		"INVOICE_TYPE":      documentLabel(inv.Type),
		"ISSUE_DATE":        formatDate(inv.IssueDate, ""),
		"DUE_DATE":          formatDate(inv.DueDate, "N/A"),
		"SUBTOTAL":          formatEUR(inv.Subtotal),
		"TAX_RATE":          formatRate(inv.TaxRate),
		"TAX_AMOUNT":        formatEUR(inv.TaxAmount),
		"TOTAL_AMOUNT":      formatEUR(inv.Total),
		"NOTES_CONTENT":     defaultString(inv.Notes, "Aucune note"),
		"TERMS_CONTENT":     defaultString(inv.Terms, "Aucune condition spécifiée"),
		"REFERENCE_CONTENT": defaultString(inv.Reference, "N/A"),
	}

	if client == nil {
		client = &ClientView{}
	}
	values["CLIENT_NAME"] = client.Name
	values["CLIENT_COMPANY_NAME"] = client.CompanyName
	values["CLIENT_ADDRESS"] = client.Address
	values["CLIENT_CITY"] = client.City
	values["CLIENT_POSTAL_CODE"] = client.PostalCode
	values["CLIENT_EMAIL"] = client.Email
	values["CLIENT_PHONE"] = client.Phone
	values["CLIENT_TAX_ID"] = client.TaxID

	addItemValues(values, items)
	return values
}

func documentLabel(invoiceType string) string {
	if strings.EqualFold(strings.TrimSpace(invoiceType), "devis") {
		return "DEVIS"
	}
	return "FACTURE"
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
