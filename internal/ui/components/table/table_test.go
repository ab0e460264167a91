package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/util"
)

func TestComputeMaxWidth(t *testing.T) {
	rows := []string{"abc", "abcdef", "a"}
	if got := ComputeMaxWidth(rows); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestClipRows(t *testing.T) {
	rows := []string{"abcdefgh", "12345678"}
	clipped := ClipRows(rows, 2, 3)
	if clipped[0] != "cde" || clipped[1] != "345" {
		t.Fatalf("unexpected clip: %v", clipped)
	}
}

func TestRenderHeaderAndRow(t *testing.T) {
	columns := []Column{{Title: "PORT", Width: 6}, {Title: "STATE", Width: 8}}
	style := lipgloss.NewStyle()

	header := RenderHeader(columns, "  ", style)
	if !strings.Contains(header, "PORT") || !strings.Contains(header, "STATE") {
		t.Fatalf("expected both titles, got %q", header)
	}
	if util.RuneWidth(header) != 16 {
		t.Fatalf("expected fixed total width 16, got %d (%q)", util.RuneWidth(header), header)
	}

	row := RenderRow(columns, "  ", style, []string{"22", "LISTEN"}, nil)
	if util.RuneWidth(row) != 16 {
		t.Fatalf("expected fixed total width 16, got %d (%q)", util.RuneWidth(row), row)
	}

	// missing cells render as empty padding, not a panic
	short := RenderRow(columns, "  ", style, []string{"80"}, nil)
	if util.RuneWidth(short) != 16 {
		t.Fatalf("expected padded short row, got %q", short)
	}
}

func TestRenderCaretRow(t *testing.T) {
	row := RenderCaretRow(9, lipgloss.NewStyle())
	if len(row) != 9 {
		t.Fatalf("expected width 9, got %d", len(row))
	}
	if strings.Count(row, "v") != 3 {
		t.Fatalf("expected three carets, got %q", row)
	}
}

func TestPadAndStyle(t *testing.T) {
	style := lipgloss.NewStyle()
	if got := PadAndStyle(style, "abcdef", 4, true); util.RuneWidth(got) != 4 {
		t.Fatalf("expected truncation to 4, got %q", got)
	}
	if got := PadAndStyle(style, "ab", 5, true); got != "ab   " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := PadAndStyle(style, "anything", 0, true); got != "" {
		t.Fatalf("expected empty render for zero width, got %q", got)
	}
}
