package chart

import (
	"strings"
	"testing"
)

func TestViewEmptySeries(t *testing.T) {
	c := New("test", Styles{})
	c.SetOption(Option{Title: "Empty"})

	out := c.View()
	if !strings.Contains(out, "Empty") {
		t.Fatalf("expected title, got %q", out)
	}
	if !strings.Contains(out, "No data") {
		t.Fatalf("expected empty state, got %q", out)
	}
}

func TestViewProportionalBars(t *testing.T) {
	c := New("test", Styles{})
	c.Resize(48)
	c.SetOption(Option{
		Title:      "Mix",
		Series:     []Point{{"tcp", 3}, {"udp", 1}},
		ShowLegend: true,
	})

	out := c.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, two bars, and legend, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "75%") {
		t.Fatalf("expected tcp at 75%%, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "25%") {
		t.Fatalf("expected udp at 25%%, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "tcp 3 | udp 1 (total 4)") {
		t.Fatalf("unexpected legend: %q", lines[3])
	}

	tcpFill := strings.Count(lines[1], "█")
	udpFill := strings.Count(lines[2], "█")
	if tcpFill <= udpFill {
		t.Fatalf("expected the larger value to draw the longer bar (%d vs %d)", tcpFill, udpFill)
	}
}

func TestViewIdempotent(t *testing.T) {
	c := New("test", Styles{})
	c.SetOption(Option{Title: "Stable", Series: []Point{{"a", 2}, {"b", 5}}})

	first := c.View()
	second := c.View()
	if first != second {
		t.Fatalf("repeated renders differ:\n%q\n%q", first, second)
	}
}

func TestNonZeroValueAlwaysVisible(t *testing.T) {
	if got := filledWidth(1, 1000, 20); got != 1 {
		t.Fatalf("expected tiny non-zero value to fill 1 cell, got %d", got)
	}
	if got := filledWidth(0, 1000, 20); got != 0 {
		t.Fatalf("expected zero value to fill nothing, got %d", got)
	}
}

func TestResizeFloor(t *testing.T) {
	c := New("test", Styles{})
	c.Resize(2)
	if c.width != 16 {
		t.Fatalf("expected width floor of 16, got %d", c.width)
	}
}

func TestRegionIdentity(t *testing.T) {
	c := New("ports-protocol", Styles{})
	if c.Region() != "ports-protocol" {
		t.Fatalf("expected region to persist, got %q", c.Region())
	}
}
