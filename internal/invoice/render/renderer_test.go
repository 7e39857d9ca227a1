package render

import (
	"strings"
	"testing"
	"time"
)

func testInvoice() InvoiceView {
	issued := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	due := time.Date(2025, 4, 13, 10, 0, 0, 0, time.UTC)
	return InvoiceView{
		Number:    "FAC-2025-0042",
		Type:      "facture",
		IssueDate: &issued,
		DueDate:   &due,
		Subtotal:  1234.5,
		TaxRate:   20,
		TaxAmount: 246.9,
		Total:     1481.4,
	}
}

func TestRenderHTMLIsIdempotent(t *testing.T) {
	r := NewRenderer()
	input := RenderInput{
		Invoice: testInvoice(),
		Client:  &ClientView{Name: "Jean Dupont", City: "Lyon"},
		Items: []LineItemView{
			{Description: "Maçonnerie", Quantity: 3, Unit: "m²", UnitPrice: 120, OrderIndex: 0},
		},
	}

	first, err := r.RenderHTML(input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.RenderHTML(input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatalf("expected byte-identical output across renders")
	}
}

func TestRenderHTMLEmptyItems(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderHTML(RenderInput{Invoice: testInvoice()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Aucun article") {
		t.Fatalf("expected empty-items row in output")
	}
	if strings.Contains(out, "ITEM_DESCRIPTION") {
		t.Fatalf("unexpected item token debris in output")
	}
}

func TestRenderHTMLNilClientResolvesToEmpty(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderHTML(RenderInput{Invoice: testInvoice()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, token := range []string{
		"CLIENT_NAME", "CLIENT_COMPANY_NAME", "CLIENT_ADDRESS", "CLIENT_CITY",
		"CLIENT_POSTAL_CODE", "CLIENT_EMAIL", "CLIENT_PHONE", "CLIENT_TAX_ID",
	} {
		if strings.Contains(out, token) {
			t.Fatalf("expected %s to resolve to empty string, still present", token)
		}
	}
}

func TestRenderHTMLCurrencyFormatting(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderHTML(RenderInput{Invoice: testInvoice()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"1 234,50 €", "246,90 €", "1 481,40 €", "TVA (20%)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderHTMLItemOrdering(t *testing.T) {
	r := NewRenderer()
	tpl := `<html><body>
ITEMS_ROWS
<p>first: ITEM_DESCRIPTION_1</p>
<p>second: ITEM_DESCRIPTION_2</p>
<p>third: ITEM_DESCRIPTION_3</p>
</body></html>`

	out, err := r.RenderHTML(RenderInput{
		Template: tpl,
		Invoice:  testInvoice(),
		Items: []LineItemView{
			{Description: "Peinture", Quantity: 1, UnitPrice: 300, OrderIndex: 2},
			{Description: "Fondations", Quantity: 1, UnitPrice: 900, OrderIndex: 0},
			{Description: "Charpente", Quantity: 1, UnitPrice: 600, OrderIndex: 1},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	foundations := strings.Index(out, "<td>Fondations</td>")
	frame := strings.Index(out, "<td>Charpente</td>")
	paint := strings.Index(out, "<td>Peinture</td>")
	if foundations < 0 || frame < 0 || paint < 0 {
		t.Fatalf("expected all item rows in output")
	}
	if !(foundations < frame && frame < paint) {
		t.Fatalf("expected rows sorted by order index, got positions %d %d %d", foundations, frame, paint)
	}

	if !strings.Contains(out, "first: Fondations") {
		t.Fatalf("expected ITEM_DESCRIPTION_1 to be the lowest order index item")
	}
	if !strings.Contains(out, "second: Charpente") {
		t.Fatalf("expected ITEM_DESCRIPTION_2 to follow sorted order")
	}
	if !strings.Contains(out, "third: Peinture") {
		t.Fatalf("expected ITEM_DESCRIPTION_3 to follow sorted order")
	}
}

func TestRenderHTMLStableOrderOnEqualIndex(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderHTML(RenderInput{
		Invoice: testInvoice(),
		Items: []LineItemView{
			{Description: "Lot A", Quantity: 1, UnitPrice: 10, OrderIndex: 1},
			{Description: "Lot B", Quantity: 1, UnitPrice: 10, OrderIndex: 1},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Index(out, "Lot A") > strings.Index(out, "Lot B") {
		t.Fatalf("expected equal order indexes to keep input order")
	}
}

func TestRenderHTMLDefaultTemplateFallback(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderHTML(RenderInput{Invoice: testInvoice()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected default template item table")
	}
	if !strings.Contains(out, `class="totals"`) {
		t.Fatalf("expected default template totals block")
	}
	if !strings.Contains(out, "FACTURE") {
		t.Fatalf("expected document type label")
	}
}

func TestRenderHTMLDefaultsForMissingFields(t *testing.T) {
	r := NewRenderer()
	inv := testInvoice()
	inv.DueDate = nil
	inv.Notes = ""
	inv.Terms = ""
	inv.Reference = ""

	out, err := r.RenderHTML(RenderInput{
		Invoice: inv,
		Items: []LineItemView{
			{Description: "Terrassement", Quantity: 2, UnitPrice: 150},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"N/A", "Aucune note", "Aucune condition spécifiée", "unité"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected default %q in output", want)
		}
	}
}

func TestRenderHTMLQuoteLabel(t *testing.T) {
	r := NewRenderer()
	inv := testInvoice()
	inv.Type = "devis"
	out, err := r.RenderHTML(RenderInput{Invoice: inv})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "DEVIS") {
		t.Fatalf("expected DEVIS label for quote documents")
	}
}
