package render

import (
	"testing"
	"time"
)

func TestFormatEUR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00 €"},
		{9.9, "9,90 €"},
		{1234.5, "1 234,50 €"},
		{246.9, "246,90 €"},
		{1481.4, "1 481,40 €"},
		{1234567.891, "1 234 567,89 €"},
	}
	for _, tc := range cases {
		if got := formatEUR(tc.in); got != tc.want {
			t.Fatalf("formatEUR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := formatRate(20); got != "20" {
		t.Fatalf("formatRate(20) = %q, want \"20\"", got)
	}
	if got := formatRate(20.5); got != "20.5" {
		t.Fatalf("formatRate(20.5) = %q, want \"20.5\"", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := formatQuantity(3); got != "3" {
		t.Fatalf("formatQuantity(3) = %q", got)
	}
	if got := formatQuantity(2.5); got != "2.5" {
		t.Fatalf("formatQuantity(2.5) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := formatDate(&day, "N/A"); got != "14/03/2025" {
		t.Fatalf("formatDate = %q, want 14/03/2025", got)
	}
	if got := formatDate(nil, "N/A"); got != "N/A" {
		t.Fatalf("nil date should fall back, got %q", got)
	}
	var zero time.Time
	if got := formatDate(&zero, ""); got != "" {
		t.Fatalf("zero date should fall back to empty, got %q", got)
	}
}
