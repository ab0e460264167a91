package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/analyze"
	"github.com/AaaBinfinity/PortSentry/internal/chart"
	"github.com/AaaBinfinity/PortSentry/internal/format"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
	"github.com/AaaBinfinity/PortSentry/internal/ui/view"
	"github.com/AaaBinfinity/PortSentry/internal/util"
)

// Model renders the high-level monitoring summary: port counters, alert
// tallies, host health, and the per-process / per-user distribution
// charts.
type Model struct {
	store  *state.Store
	theme  theme.Theme
	width  int
	height int
	charts map[string]*chart.Chart
}

// New creates a dashboard view backed by the provided store.
func New(store *state.Store, th theme.Theme) view.Model {
	return &Model{store: store, theme: th, charts: make(map[string]*chart.Chart)}
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update satisfies tea.Model. The dashboard reacts only to store updates.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the dashboard contents.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	snapshot := m.store.Snapshot()
	stats := analyze.Statistics(snapshot.Ports.CurrentPorts)
	alertStats := analyze.AlertStats(snapshot.Alerts)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderStat("Open ports", stats.Total),
		m.renderStat("TCP", stats.TCP),
		m.renderStat("UDP", stats.UDP),
		m.renderStat("Listening", stats.Listening),
	)

	secondary := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderHealth(snapshot.System),
		m.renderAlertSummary(alertStats),
	)
	distributions := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderDistribution("dashboard-processes", "Ports by process", stats.ByProcess),
		m.renderDistribution("dashboard-users", "Ports by user", stats.ByUser),
	)

	meta := m.theme.Subtle.Render(m.metaLine(snapshot))
	body := lipgloss.JoinVertical(lipgloss.Left, cards, secondary, distributions, meta)

	return m.theme.Body.Width(m.width).Height(max(3, m.height)).Render(body)
}

// Title returns the tab label for this view.
func (m *Model) Title() string { return "Dashboard" }

// SetSize updates the view's drawing bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, c := range m.charts {
		c.Resize(max(16, width/3-8))
	}
}

// SetTheme updates the active palette.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.charts = make(map[string]*chart.Chart)
}

func (m *Model) renderStat(label string, value int) string {
	const cardOverhead = 8 // border (2) + padding (4) + margin (2)
	cardWidth := max(14, m.width/4-cardOverhead)
	content := fmt.Sprintf("%d\n%s", value, label)
	return m.theme.Card.Width(cardWidth).Render(content)
}

func (m *Model) renderHealth(info state.SystemInfo) string {
	cardWidth := max(24, m.width/3-4)
	title := m.theme.Title.Render("System health")
	health := format.Classify(info.System.CPUPercent, info.System.MemoryPercent)
	badge := m.healthStyle(health).Render(strings.ToUpper(string(health)))

	memory := fmt.Sprintf("Memory %5.1f%%", info.System.MemoryPercent)
	if info.System.MemoryTotal > 0 {
		memory += fmt.Sprintf(" (%s / %s)",
			format.Bytes(info.System.MemoryUsed), format.Bytes(info.System.MemoryTotal))
	}
	lines := []string{
		title,
		badge,
		fmt.Sprintf("CPU    %5.1f%%", info.System.CPUPercent),
		memory,
		fmt.Sprintf("Disk   %5.1f%%", info.System.DiskUsage),
		fmt.Sprintf("Load   %s", format.Load(info.Load)),
	}
	if info.System.UptimeSeconds > 0 {
		lines = append(lines, fmt.Sprintf("Uptime %s", format.Duration(info.System.UptimeSeconds)))
	}
	return m.theme.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderAlertSummary(stats analyze.AlertStatistics) string {
	cardWidth := max(22, m.width/3-4)
	lines := []string{
		m.theme.Title.Render("Alerts"),
		fmt.Sprintf("Unresolved %d", stats.Unresolved),
		fmt.Sprintf("Resolved   %d", stats.Resolved),
	}
	for _, level := range []string{state.LevelError, state.LevelWarning, state.LevelInfo} {
		if count := stats.ByLevel[level]; count > 0 {
			style := m.theme.Severity(strings.ToLower(level))
			lines = append(lines, fmt.Sprintf("%s %d", style.Render(level), count))
		}
	}
	if stats.Total == 0 {
		lines = append(lines, m.theme.Subtle.Render("No alerts yet"))
	}
	return m.theme.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDistribution(region, title string, buckets []analyze.Bucket) string {
	cardWidth := max(24, m.width/3-4)
	c := m.ensureChart(region, cardWidth)
	series := make([]chart.Point, 0, len(buckets))
	for _, bucket := range buckets {
		series = append(series, chart.Point{Name: bucket.Label, Value: bucket.Value})
	}
	c.SetOption(chart.Option{Title: title, Series: series, ShowLegend: true})
	return m.theme.Card.Width(cardWidth).Render(c.View())
}

// ensureChart reuses chart instances keyed by region so repeated renders
// update in place instead of allocating new charts.
func (m *Model) ensureChart(region string, cardWidth int) *chart.Chart {
	if c, ok := m.charts[region]; ok {
		return c
	}
	c := chart.New(region, chart.Styles{
		Title:  m.theme.Title,
		Bar:    m.theme.Info,
		Legend: m.theme.Subtle,
		Empty:  m.theme.Subtle,
	})
	c.Resize(max(16, cardWidth-8))
	m.charts[region] = c
	return c
}

func (m *Model) healthStyle(health format.Health) lipgloss.Style {
	switch health {
	case format.HealthCritical:
		return m.theme.Danger
	case format.HealthWarning:
		return m.theme.Warning
	default:
		return m.theme.Success
	}
}

func (m *Model) metaLine(snapshot state.Snapshot) string {
	if snapshot.PortsUpdatedAt.IsZero() && snapshot.SystemUpdatedAt.IsZero() {
		return "Waiting for backend data"
	}
	parts := make([]string, 0, 3)
	if !snapshot.PortsUpdatedAt.IsZero() {
		parts = append(parts, "Ports "+util.RelativeTime(snapshot.PortsUpdatedAt))
	}
	if !snapshot.AlertsUpdatedAt.IsZero() {
		parts = append(parts, "Alerts "+util.RelativeTime(snapshot.AlertsUpdatedAt))
	}
	if !snapshot.SystemUpdatedAt.IsZero() {
		parts = append(parts, "System "+util.RelativeTime(snapshot.SystemUpdatedAt))
	}
	return strings.Join(parts, " · ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
