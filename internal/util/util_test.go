package util

import "testing"

func TestFallback(t *testing.T) {
	if got := Fallback("", "def"); got != "def" {
		t.Fatalf("expected def, got %q", got)
	}
	if got := Fallback("   ", "def"); got != "def" {
		t.Fatalf("expected def for whitespace, got %q", got)
	}
	if got := Fallback("value", "def"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestWrapIndex(t *testing.T) {
	cases := []struct {
		current, delta, length, expect int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{1, 0, 3, 1},
		{5, 1, 0, 0},
	}
	for _, tc := range cases {
		if got := WrapIndex(tc.current, tc.delta, tc.length); got != tc.expect {
			t.Fatalf("WrapIndex(%d,%d,%d): expected %d, got %d", tc.current, tc.delta, tc.length, tc.expect, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		width  int
		expect string
	}{
		{"zero width", "hello", 0, ""},
		{"fits", "hi", 5, "hi"},
		{"width 2", "hello", 2, "he"},
		{"ellipsis", "hello world", 8, "hello..."},
	}
	for _, tc := range cases {
		if got := TruncateString(tc.value, tc.width); got != tc.expect {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expect, got)
		}
	}
}

func TestPadString(t *testing.T) {
	if got := PadString("ab", 5); got != "ab   " {
		t.Fatalf("expected padding to 5, got %q", got)
	}
	if got := PadString("abcdef", 3); got != "abcdef" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}
