package sanitize_test

import (
	"strings"
	"testing"

	"evtsift/internal/sanitize"
)

func TestFieldReplacesDelimiters(t *testing.T) {
	got := sanitize.Field("a,b,c", ',', '§')
	if got != "a§b§c" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestFieldFlattensNewlines(t *testing.T) {
	cases := map[string]string{
		"one\ntwo":     "one two",
		"one\r\ntwo":   "one two",
		"one\rtwo":     "one two",
		"a\r\n\r\nb":   "a  b",
		"trailing\r\n": "trailing ",
	}
	for in, want := range cases {
		if got := sanitize.Field(in, ',', '§'); got != want {
			t.Fatalf("Field(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldIdempotentOnOutput(t *testing.T) {
	first := sanitize.Field("x,y\nz,", ',', '§')
	second := sanitize.Field(first, ',', '§')
	if first != second {
		t.Fatalf("re-sanitizing changed the value: %q vs %q", first, second)
	}
	if strings.ContainsRune(first, ',') || strings.ContainsAny(first, "\r\n") {
		t.Fatalf("sanitized value still contains unsafe characters: %q", first)
	}
}

func TestFieldAlternateDelimiter(t *testing.T) {
	if got := sanitize.Field("a;b,c", ';', '_'); got != "a_b,c" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestCheckRunes(t *testing.T) {
	if err := sanitize.CheckRunes(',', '§'); err != nil {
		t.Fatalf("valid pair rejected: %v", err)
	}
	if err := sanitize.CheckRunes(',', ','); err == nil {
		t.Fatal("expected rejection when placeholder equals delimiter")
	}
}
