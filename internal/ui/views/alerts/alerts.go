package alerts

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/analyze"
	"github.com/AaaBinfinity/PortSentry/internal/controller"
	"github.com/AaaBinfinity/PortSentry/internal/format"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
	"github.com/AaaBinfinity/PortSentry/internal/ui/view"
	"github.com/AaaBinfinity/PortSentry/internal/util"
)

// maxVisibleAlerts caps the list to the first entries in arrival order;
// the header still reports the full unresolved count.
const maxVisibleAlerts = 5

// Model renders unresolved security alerts and lets the user resolve them.
type Model struct {
	store    *state.Store
	theme    theme.Theme
	resolver controller.AlertResolver

	width  int
	height int
	rowIdx int
}

// New constructs the alerts view backed by the shared store.
func New(store *state.Store, th theme.Theme, resolver controller.AlertResolver) view.Model {
	return &Model{store: store, theme: th, resolver: resolver}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	open := analyze.Unresolved(m.store.Snapshot().Alerts)
	visible := min(len(open), maxVisibleAlerts)
	if m.rowIdx >= visible {
		m.rowIdx = max(0, visible-1)
	}

	switch key := msg.(type) {
	case tea.KeyMsg:
		switch key.String() {
		case "up":
			if m.rowIdx > 0 {
				m.rowIdx--
			}
		case "down":
			if m.rowIdx < visible-1 {
				m.rowIdx++
			}
		case "enter":
			if m.rowIdx < visible {
				return m, m.resolveCmd(open[m.rowIdx].ID)
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	snapshot := m.store.Snapshot()
	open := analyze.Unresolved(snapshot.Alerts)
	visible := min(len(open), maxVisibleAlerts)
	if m.rowIdx >= visible {
		m.rowIdx = max(0, visible-1)
	}

	header := m.theme.Title.Render(fmt.Sprintf("Unresolved alerts: %d", len(open)))
	if len(open) == 0 {
		body := lipgloss.JoinVertical(lipgloss.Left, header,
			m.theme.Subtle.Render("No unresolved alerts."))
		return m.wrap(body)
	}

	rows := make([]string, 0, visible+2)
	rows = append(rows, header)
	for idx := 0; idx < visible; idx++ {
		rows = append(rows, m.renderAlert(open[idx], idx == m.rowIdx))
	}
	if len(open) > visible {
		rows = append(rows, m.theme.Subtle.Render(fmt.Sprintf("… %d more", len(open)-visible)))
	}
	rows = append(rows, m.theme.Subtle.Render("↑/↓ select · enter resolve"))

	return m.wrap(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) Title() string { return "Alerts" }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

func (m *Model) resolveCmd(id int) tea.Cmd {
	if m.resolver == nil {
		return nil
	}
	return func() tea.Msg {
		m.resolver.ResolveAlert(id)
		return nil
	}
}

func (m *Model) renderAlert(alert state.Alert, selected bool) string {
	levelStyle := m.theme.Severity(strings.ToLower(alert.Level))
	cursor := "  "
	if selected {
		cursor = "> "
	}
	head := fmt.Sprintf("%s%s %s",
		cursor,
		levelStyle.Render("["+util.Fallback(alert.Level, "INFO")+"]"),
		format.Escape(format.Fallback(alert.Title, "untitled alert")))

	meta := []string{format.Timestamp(alert.Timestamp)}
	if alert.Port > 0 {
		meta = append(meta, fmt.Sprintf("port %d", alert.Port))
	}

	line := lipgloss.JoinVertical(lipgloss.Left,
		util.TruncateString(head, max(20, m.width-6)),
		util.TruncateString("  "+format.Escape(alert.Message), max(20, m.width-6)),
		m.theme.Subtle.Render("  "+strings.Join(meta, " · ")),
	)
	card := m.theme.Card
	if selected {
		card = card.BorderForeground(m.theme.TableRowSelect)
	}
	return card.Width(max(20, m.width-4)).Render(line)
}

func (m *Model) wrap(body string) string {
	return m.theme.Body.Width(m.width).Height(max(3, m.height)).Render(body)
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
