package render

import "testing"

func TestSubstituteReplacesAllOccurrences(t *testing.T) {
	out := Substitute("NUM and NUM again", map[string]string{"NUM": "42"})
	if out != "42 and 42 again" {
		t.Fatalf("expected every occurrence replaced, got %q", out)
	}
}

func TestSubstitutePrefersLongerTokens(t *testing.T) {
	values := map[string]string{
		"ITEM_DESCRIPTION_1":  "one",
		"ITEM_DESCRIPTION_12": "twelve",
	}
	out := Substitute("ITEM_DESCRIPTION_12 ITEM_DESCRIPTION_1", values)
	if out != "twelve one" {
		t.Fatalf("expected longest token to win, got %q", out)
	}
}

func TestSubstituteSinglePassDoesNotRescan(t *testing.T) {
	values := map[string]string{
		"NOTES_CONTENT": "mentions CLIENT_NAME literally",
		"CLIENT_NAME":   "Jean",
	}
	out := Substitute("NOTES_CONTENT / CLIENT_NAME", values)
	if out != "mentions CLIENT_NAME literally / Jean" {
		t.Fatalf("expected replacement output to be left alone, got %q", out)
	}
}

func TestSubstituteLeavesUnknownTextAlone(t *testing.T) {
	out := Substitute("TOTAL_HT stays", map[string]string{"TOTAL_AMOUNT": "x"})
	if out != "TOTAL_HT stays" {
		t.Fatalf("expected unknown placeholder-looking text untouched, got %q", out)
	}
}

func TestSubstituteEmptyValues(t *testing.T) {
	if out := Substitute("unchanged", nil); out != "unchanged" {
		t.Fatalf("expected template passthrough, got %q", out)
	}
}
