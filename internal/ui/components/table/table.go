package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/util"
)

// Column describes a fixed-width table column.
type Column struct {
	Title string
	Width int
}

// RenderHeader renders the header row for the given columns, cells
// separated by gap.
func RenderHeader(columns []Column, gap string, style lipgloss.Style) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = PadAndStyle(style, col.Title, col.Width, true)
	}
	return strings.Join(cells, gap)
}

// RenderRow renders one data row; cells and styles are matched to columns
// by index, missing cells render empty. The gap is rendered through
// gapStyle so a row background stays continuous across cells.
func RenderRow(columns []Column, gap string, gapStyle lipgloss.Style, cells []string, styles []lipgloss.Style) string {
	rendered := make([]string, len(columns))
	for i, col := range columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		style := lipgloss.NewStyle()
		if i < len(styles) {
			style = styles[i]
		}
		rendered[i] = PadAndStyle(style, text, col.Width, true)
	}
	return strings.Join(rendered, gapStyle.Render(gap))
}

// ComputeMaxWidth returns the widest row width (ANSI-safe rune width).
func ComputeMaxWidth(rows []string) int {
	maxWidth := 0
	for _, row := range rows {
		if w := util.RuneWidth(row); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// ClipRows slices each row horizontally using ANSI-safe slicing.
func ClipRows(rows []string, xOffset, width int) []string {
	if width <= 0 {
		width = 1
	}
	clipped := make([]string, len(rows))
	for i, row := range rows {
		clipped[i] = util.AnsiSlice(row, xOffset, width)
	}
	return clipped
}

// RenderCaretRow renders a caret indicator row for vertically truncated tables.
func RenderCaretRow(width int, style lipgloss.Style) string {
	if width <= 0 {
		width = 3
	}
	glyphs := make([]rune, width)
	for i := range glyphs {
		glyphs[i] = ' '
	}
	positions := []int{0, width / 2, max(0, width-1)}
	for _, pos := range positions {
		if pos >= 0 && pos < width {
			glyphs[pos] = 'v'
		}
	}
	return style.Render(string(glyphs))
}

// PadAndStyle truncates/pads text and renders it with the given style.
func PadAndStyle(style lipgloss.Style, text string, width int, truncate bool) string {
	if width <= 0 {
		return ""
	}
	content := text
	if truncate {
		content = util.TruncateString(text, width)
	}
	if util.RuneWidth(content) < width {
		content = util.PadString(content, width)
	}
	return style.Render(content)
}
