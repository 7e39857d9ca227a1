package render

import (
	"strconv"
	"strings"
)

const emptyItemsRow = `<tr><td colspan="5" class="empty">Aucun article</td></tr>`

// addItemValues fills the aggregate ITEMS_ROWS token and, for
// fixed-position templates, per-item ITEM_*_N tokens. N is the 1-based
// position after sorting, not the stored order index, so template
// authors always see contiguous numbering.
func addItemValues(values map[string]string, items []LineItemView) {
	if len(items) == 0 {
		values["ITEMS_ROWS"] = emptyItemsRow
		return
	}

	var rows strings.Builder
	for i, item := range items {
		unit := item.Unit
		if strings.TrimSpace(unit) == "" {
			unit = "unité"
		}
		lineTotal := item.Quantity * item.UnitPrice

		rows.WriteString(`<tr>`)
		rows.WriteString(`<td>` + item.Description + `</td>`)
		rows.WriteString(`<td>` + formatQuantity(item.Quantity) + `</td>`)
		rows.WriteString(`<td>` + unit + `</td>`)
		rows.WriteString(`<td>` + formatEUR(item.UnitPrice) + `</td>`)
		rows.WriteString(`<td>` + formatEUR(lineTotal) + `</td>`)
		rows.WriteString(`</tr>`)

		n := strconv.Itoa(i + 1)
		values["ITEM_DESCRIPTION_"+n] = item.Description
		values["ITEM_QUANTITY_"+n] = formatQuantity(item.Quantity)
		values["ITEM_UNIT_"+n] = unit
		values["ITEM_UNIT_PRICE_"+n] = formatEUR(item.UnitPrice)
		values["ITEM_LINE_TOTAL_"+n] = formatEUR(lineTotal)
	}
	values["ITEMS_ROWS"] = rows.String()
}
