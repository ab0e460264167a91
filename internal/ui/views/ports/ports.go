package ports

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/analyze"
	"github.com/AaaBinfinity/PortSentry/internal/chart"
	"github.com/AaaBinfinity/PortSentry/internal/controller"
	"github.com/AaaBinfinity/PortSentry/internal/export"
	"github.com/AaaBinfinity/PortSentry/internal/format"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
	"github.com/AaaBinfinity/PortSentry/internal/ui/components/table"
	"github.com/AaaBinfinity/PortSentry/internal/ui/view"
	"github.com/AaaBinfinity/PortSentry/internal/util"
)

// Model renders the open-ports table with a per-row risk detail panel
// and export shortcuts.
type Model struct {
	store    *state.Store
	theme    theme.Theme
	exporter controller.DataExporter

	width  int
	height int

	rowIdx        int
	tableOffset   int
	tableXOffset  int
	tableMaxWidth int

	charts map[string]*chart.Chart
}

const (
	defaultTableRows = 5
	minTableRows     = 3
	maxTableRows     = 10
	tableChrome      = 14
	columnGap        = 1
	minCursorWidth   = 2
	minPortWidth     = 6
	minProtoWidth    = 5
	minStateWidth    = 11
	minProcessWidth  = 14
	minPIDWidth      = 6
	minUserWidth     = 8
	minAddressWidth  = 16
	minTimeWidth     = 19
)

type tableLayout struct {
	cursor  int
	port    int
	proto   int
	state   int
	process int
	pid     int
	user    int
	address int
	time    int
}

func (tl tableLayout) total() int {
	return tl.cursor + tl.port + tl.proto + tl.state + tl.process + tl.pid + tl.user + tl.address + tl.time
}

func (tl tableLayout) count() int { return 9 }

// New creates a ports view backed by the provided store and exporter.
func New(store *state.Store, th theme.Theme, exporter controller.DataExporter) view.Model {
	return &Model{store: store, theme: th, exporter: exporter, charts: make(map[string]*chart.Chart)}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	snapshot := m.store.Snapshot()
	records := snapshot.Ports.CurrentPorts
	m.clampSelection(records)

	switch key := msg.(type) {
	case tea.KeyMsg:
		switch key.String() {
		case "left":
			m.adjustTableX(-4)
		case "right":
			m.adjustTableX(4)
		case "up":
			if m.rowIdx > 0 {
				m.rowIdx--
			}
		case "down":
			if m.rowIdx < len(records)-1 {
				m.rowIdx++
			}
		case "pgup":
			m.rowIdx -= m.tableCapacity()
			if m.rowIdx < 0 {
				m.rowIdx = 0
			}
		case "pgdown":
			m.rowIdx += m.tableCapacity()
			if m.rowIdx >= len(records) {
				m.rowIdx = max(0, len(records)-1)
			}
		case "home", "g":
			m.rowIdx = 0
		case "end", "G":
			if n := len(records); n > 0 {
				m.rowIdx = n - 1
			}
		case "e":
			return m, m.exportCmd(records, export.FormatCSV)
		case "E":
			return m, m.exportCmd(records, export.FormatJSON)
		}
	}

	return m, nil
}

func (m *Model) View() string {
	snapshot := m.store.Snapshot()
	records := snapshot.Ports.CurrentPorts
	m.clampSelection(records)

	if len(records) == 0 {
		msg := m.theme.Subtle.Render("No open ports reported.")
		return m.wrap(lipgloss.JoinVertical(lipgloss.Left, msg, m.renderStatus()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPortsTable(records),
		m.renderDetail(records),
		m.renderProtocolChart(records),
		m.renderStatus(),
	)
	return m.wrap(body)
}

func (m *Model) Title() string { return "Ports" }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, c := range m.charts {
		c.Resize(max(16, m.contentWidth()-8))
	}
}

func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.charts = make(map[string]*chart.Chart)
}

func (m *Model) exportCmd(records []state.PortRecord, fmtName string) tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	rows := make([]state.PortRecord, len(records))
	copy(rows, records)
	return func() tea.Msg {
		m.exporter.Export(rows, "ports", fmtName)
		return nil
	}
}

func (m *Model) renderPortsTable(records []state.PortRecord) string {
	layout := m.tableColumns()
	start := min(m.tableOffset, max(0, len(records)-1))
	capacity := m.tableCapacity()
	if start > len(records)-capacity {
		start = max(0, len(records)-capacity)
	}
	end := min(len(records), start+capacity)
	moreBelow := end < len(records)
	gap := strings.Repeat(" ", columnGap)

	rows := make([]string, 0, (end-start)+1)
	rows = append(rows, m.renderTableHeader(layout, gap))
	for idx := start; idx < end; idx++ {
		rows = append(rows, m.renderPortRow(layout, records[idx], idx, idx == m.rowIdx, gap))
	}
	if moreBelow {
		tableWidth := layout.total() + columnGap*(layout.count()-1)
		rows = append(rows, table.RenderCaretRow(tableWidth, m.theme.Subtle))
	}

	m.tableMaxWidth = table.ComputeMaxWidth(rows)

	visibleWidth := max(1, m.contentWidth())
	clipped := table.ClipRows(rows, m.tableXOffset, visibleWidth)
	return lipgloss.JoinVertical(lipgloss.Left, clipped...)
}

func (layout tableLayout) columns() []table.Column {
	return []table.Column{
		{Width: layout.cursor},
		{Title: "PORT", Width: layout.port},
		{Title: "PROTO", Width: layout.proto},
		{Title: "STATE", Width: layout.state},
		{Title: "PROCESS", Width: layout.process},
		{Title: "PID", Width: layout.pid},
		{Title: "USER", Width: layout.user},
		{Title: "ADDRESS", Width: layout.address},
		{Title: "TIME", Width: layout.time},
	}
}

func (m *Model) renderTableHeader(layout tableLayout, gap string) string {
	headerStyle := m.theme.Header.Bold(true).Padding(0)
	return table.RenderHeader(layout.columns(), gap, headerStyle)
}

func (m *Model) renderPortRow(layout tableLayout, rec state.PortRecord, rowIdx int, selected bool, gap string) string {
	bg := m.rowStripeColor(rowIdx)
	if selected {
		bg = m.theme.TableRowSelect
	}
	cursor := " "
	if selected {
		cursor = ">"
	}

	cellStyle := m.theme.Body.UnsetBackground().Background(bg).Padding(0)
	portStyle := m.theme.Title.UnsetBackground().Background(bg).Padding(0)
	stateStyle := m.stateStyle(rec.State).UnsetBackground().Background(bg).Padding(0)

	cells := []string{
		cursor,
		fmt.Sprintf("%d", rec.Port),
		util.Fallback(rec.Protocol, "UNKNOWN"),
		util.Fallback(rec.State, "unknown"),
		format.Escape(format.Fallback(rec.ProcessName, "unknown")),
		format.PID(rec.PID),
		format.Escape(format.Fallback(rec.User, "unknown")),
		util.Fallback(rec.LocalAddress, "-"),
		format.Timestamp(rec.Timestamp),
	}
	styles := []lipgloss.Style{
		cellStyle, portStyle, cellStyle, stateStyle,
		cellStyle, cellStyle, cellStyle, cellStyle, cellStyle,
	}

	gapStyle := lipgloss.NewStyle().Background(bg)
	return table.RenderRow(layout.columns(), gap, gapStyle, cells, styles)
}

func (m *Model) renderDetail(records []state.PortRecord) string {
	rec := records[m.rowIdx]
	risk := analyze.AssessPort(rec)
	inner := max(20, m.contentWidth())
	fmtLine := func(label, value string) string {
		return util.TruncateString(fmt.Sprintf("%s: %s", label, value), inner)
	}

	lines := []string{
		fmtLine("Port", fmt.Sprintf("%d/%s", rec.Port, util.Fallback(rec.Protocol, "UNKNOWN"))),
		fmtLine("Process", format.Escape(format.Fallback(rec.ProcessName, "unknown"))),
		fmtLine("Cmdline", format.Escape(format.Fallback(rec.Cmdline, "-"))),
		fmtLine("Exec", format.Escape(format.Fallback(rec.ExecPath, "-"))),
		fmtLine("Remote", util.Fallback(rec.RemoteAddress, "-")),
		fmtLine("Risk", m.riskLine(risk)),
	}
	for _, warning := range risk.Warnings {
		lines = append(lines, util.TruncateString("  - "+warning, inner))
	}
	return m.theme.Body.Render(strings.Join(lines, "\n"))
}

func (m *Model) riskLine(risk analyze.Risk) string {
	style := m.theme.Success
	switch risk.Level {
	case analyze.RiskMedium:
		style = m.theme.Warning
	case analyze.RiskHigh:
		style = m.theme.Danger
	}
	return fmt.Sprintf("%s (score %d)", style.Render(strings.ToUpper(string(risk.Level))), risk.Score)
}

func (m *Model) renderProtocolChart(records []state.PortRecord) string {
	stats := analyze.Statistics(records)
	c := m.ensureChart("ports-protocol")
	c.SetOption(chart.Option{
		Title: "Protocol mix",
		Series: []chart.Point{
			{Name: "TCP", Value: stats.TCP},
			{Name: "UDP", Value: stats.UDP},
			{Name: "Listening", Value: stats.Listening},
		},
		ShowLegend: true,
	})
	return c.View()
}

// ensureChart reuses chart instances keyed by region so repeated renders
// update in place instead of allocating new charts.
func (m *Model) ensureChart(region string) *chart.Chart {
	if c, ok := m.charts[region]; ok {
		return c
	}
	c := chart.New(region, chart.Styles{
		Title:  m.theme.Title,
		Bar:    m.theme.Info,
		Legend: m.theme.Subtle,
		Empty:  m.theme.Subtle,
	})
	c.Resize(max(16, m.contentWidth()-8))
	m.charts[region] = c
	return c
}

// stateStyle maps a connection state onto a fixed severity style.
func (m *Model) stateStyle(portState string) lipgloss.Style {
	switch portState {
	case "LISTEN":
		return m.theme.Success
	case "ESTABLISHED":
		return m.theme.Info
	case "TIME_WAIT", "CLOSE_WAIT":
		return m.theme.Warning
	case "CLOSED":
		return m.theme.Danger
	default:
		return m.theme.Secondary
	}
}

func (m *Model) renderStatus() string {
	return m.theme.Subtle.Render("←/→ scroll · ↑/↓ ports · e export csv · E export json")
}

func (m *Model) wrap(body string) string {
	return m.theme.Body.Width(max(1, m.width)).Height(max(5, m.height)).Render(body)
}

func (m *Model) tableCapacity() int {
	if m.height <= 0 {
		return defaultTableRows
	}
	capacity := m.height - tableChrome
	if capacity < minTableRows {
		capacity = minTableRows
	}
	if capacity > maxTableRows {
		capacity = maxTableRows
	}
	return capacity
}

func (m *Model) tableColumns() tableLayout {
	layout := tableLayout{
		cursor:  minCursorWidth,
		port:    minPortWidth,
		proto:   minProtoWidth,
		state:   minStateWidth,
		process: minProcessWidth,
		pid:     minPIDWidth,
		user:    minUserWidth,
		address: minAddressWidth,
		time:    minTimeWidth,
	}
	inner := max(40, m.contentWidth())
	gapWidth := columnGap * (layout.count() - 1)
	usable := inner - gapWidth
	if usable <= 0 {
		usable = layout.total()
	}
	base := layout.total()
	if usable < base {
		deficit := base - usable
		reducers := []struct {
			field *int
			min   int
		}{
			{&layout.address, 8},
			{&layout.process, 8},
			{&layout.time, 10},
			{&layout.user, 5},
			{&layout.state, 7},
		}
		for deficit > 0 {
			progressed := false
			for i := range reducers {
				if deficit == 0 {
					break
				}
				curr := *reducers[i].field
				if curr <= reducers[i].min {
					continue
				}
				d := min(deficit, curr-reducers[i].min)
				*reducers[i].field -= d
				deficit -= d
				progressed = true
			}
			if !progressed {
				break
			}
		}
	} else if usable > base {
		extra := usable - base
		expanders := []*int{&layout.process, &layout.address, &layout.user}
		for extra > 0 {
			for _, field := range expanders {
				if extra == 0 {
					break
				}
				(*field)++
				extra--
			}
		}
	}
	return layout
}

func (m *Model) clampSelection(records []state.PortRecord) {
	if len(records) == 0 {
		m.rowIdx = 0
		m.tableOffset = 0
		return
	}
	if m.rowIdx >= len(records) {
		m.rowIdx = len(records) - 1
	}
	capacity := m.tableCapacity()
	if len(records) <= capacity {
		m.tableOffset = 0
		return
	}
	if m.rowIdx < m.tableOffset {
		m.tableOffset = m.rowIdx
	}
	if m.rowIdx >= m.tableOffset+capacity {
		m.tableOffset = m.rowIdx - capacity + 1
	}
}

func (m *Model) adjustTableX(delta int) {
	if delta == 0 {
		return
	}
	maxOffset := 0
	visible := m.contentWidth()
	if m.tableMaxWidth > visible {
		maxOffset = m.tableMaxWidth - visible
	}
	newOffset := m.tableXOffset + delta
	if newOffset < 0 {
		newOffset = 0
	}
	if newOffset > maxOffset {
		newOffset = maxOffset
	}
	m.tableXOffset = newOffset
}

func (m *Model) rowStripeColor(rowIdx int) lipgloss.Color {
	if rowIdx%2 == 0 {
		return m.theme.TableRowEven
	}
	return m.theme.TableRowOdd
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.width <= 4 {
		return m.width
	}
	return m.width - 4
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
