package render

import (
	"strconv"
	"strings"
	"time"
)

// formatEUR renders a monetary amount with French conventions: space
// thousands grouping, comma decimals, two decimal places and a trailing
// euro sign, e.g. 1234.5 -> "1 234,50 €".
func formatEUR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	b.WriteString(" €")
	return b.String()
}

// formatRate renders a tax rate as a bare number with no trailing
// zeros, e.g. 20.0 -> "20", 20.5 -> "20.5".
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// formatQuantity trims insignificant decimals, e.g. 2.50 -> "2.5".
func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(value, 'f', 2, 64), "0"), ".")
}

// formatDate renders DD/MM/YYYY; nil or zero dates fall back instead
// of erroring.
func formatDate(value *time.Time, fallback string) string {
	if value == nil || value.IsZero() {
		return fallback
	}
	return value.Format("02/01/2006")
}
