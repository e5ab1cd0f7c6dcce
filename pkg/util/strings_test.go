package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 0); got != 42 {
		t.Fatalf("unexpected %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default")
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default on invalid")
	}
}

func TestFormatFloat(t *testing.T) {
	if got := FormatFloat(189.5); got != "189.5" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatFloat(85); got != "85" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatFloat(0); got != "0" {
		t.Fatalf("unexpected %q", got)
	}
}
