// Package chart renders labeled proportional series as terminal bar
// charts. A Chart is the owning handle for one screen region: created
// lazily on first data arrival, re-optioned on every later update, and
// resized on window-size events. Handles are never recreated while
// their region persists.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Point is one name/value pair in a series.
type Point struct {
	Name  string
	Value int
}

// Option describes what a chart should draw. Setting a new Option fully
// replaces the previous one; drawing is a pure function of the current
// Option and width.
type Option struct {
	Title      string
	Series     []Point
	ShowLegend bool
}

// Styles are the lipgloss styles a chart draws with.
type Styles struct {
	Title  lipgloss.Style
	Bar    lipgloss.Style
	Legend lipgloss.Style
	Empty  lipgloss.Style
}

// Chart owns the rendering state for one region id.
type Chart struct {
	region string
	width  int
	option Option
	styles Styles
}

// New initializes a chart for a screen region.
func New(region string, styles Styles) *Chart {
	return &Chart{region: region, width: 40, styles: styles}
}

// Region returns the region id this handle is bound to.
func (c *Chart) Region() string { return c.region }

// SetOption replaces the drawn series.
func (c *Chart) SetOption(opt Option) { c.option = opt }

// Resize updates the drawing width.
func (c *Chart) Resize(width int) {
	if width < 16 {
		width = 16
	}
	c.width = width
}

// View draws the chart.
func (c *Chart) View() string {
	lines := make([]string, 0, len(c.option.Series)+2)
	if c.option.Title != "" {
		lines = append(lines, c.styles.Title.Render(c.option.Title))
	}
	if len(c.option.Series) == 0 {
		lines = append(lines, c.styles.Empty.Render("No data"))
		return strings.Join(lines, "\n")
	}

	maxValue := 0
	total := 0
	labelWidth := 0
	for _, point := range c.option.Series {
		if point.Value > maxValue {
			maxValue = point.Value
		}
		total += point.Value
		if w := len([]rune(point.Name)); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > c.width/3 {
		labelWidth = c.width / 3
	}
	barWidth := c.width - labelWidth - 12
	if barWidth < 6 {
		barWidth = 6
	}

	for _, point := range c.option.Series {
		bar := renderBar(point.Value, maxValue, barWidth)
		percent := 0
		if total > 0 {
			percent = (point.Value*100 + total/2) / total
		}
		label := truncate(point.Name, labelWidth)
		lines = append(lines, fmt.Sprintf("%-*s %s %3d%%", labelWidth, label, c.styles.Bar.Render(bar), percent))
	}
	if c.option.ShowLegend {
		lines = append(lines, c.styles.Legend.Render(c.legendLine(total)))
	}
	return strings.Join(lines, "\n")
}

func (c *Chart) legendLine(total int) string {
	parts := make([]string, 0, len(c.option.Series))
	for _, point := range c.option.Series {
		parts = append(parts, fmt.Sprintf("%s %d", truncate(point.Name, 16), point.Value))
	}
	return fmt.Sprintf("%s (total %d)", strings.Join(parts, " | "), total)
}

func renderBar(value, max, width int) string {
	filled := filledWidth(value, max, width)
	return strings.Repeat("█", filled) + strings.Repeat(" ", width-filled)
}

func filledWidth(value, max, width int) int {
	if width <= 0 || max <= 0 {
		return 0
	}
	filled := (value*width + max/2) / max
	if value > 0 && filled == 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return filled
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
