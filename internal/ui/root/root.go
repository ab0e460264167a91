package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AaaBinfinity/PortSentry/internal/controller"
	"github.com/AaaBinfinity/PortSentry/internal/keymap"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
	"github.com/AaaBinfinity/PortSentry/internal/ui/view"
	alertsview "github.com/AaaBinfinity/PortSentry/internal/ui/views/alerts"
	"github.com/AaaBinfinity/PortSentry/internal/ui/views/dashboard"
	portsview "github.com/AaaBinfinity/PortSentry/internal/ui/views/ports"
	"github.com/AaaBinfinity/PortSentry/internal/util"
)

// Options controls how the root model is assembled.
type Options struct {
	Theme     theme.Theme
	KeyMap    *keymap.Global
	Scheduler controller.Scheduler
	Resolver  controller.AlertResolver
	Exporter  controller.DataExporter
}

// Model orchestrates routed Bubble Tea views, the refresh timer, and
// global UI chrome including the toast stack.
type Model struct {
	store     *state.Store
	sub       *state.Subscription
	keymap    keymap.Global
	theme     theme.Theme
	scheduler controller.Scheduler

	views  map[state.ViewKind]view.Model
	order  []state.ViewKind
	active state.ViewKind

	width  int
	height int
}

// New builds the root Bubble Tea model.
func New(store *state.Store, opts Options) *Model {
	keyMap := keymap.DefaultGlobal()
	if opts.KeyMap != nil {
		keyMap = *opts.KeyMap
	}

	views := map[state.ViewKind]view.Model{
		state.ViewDashboard: dashboard.New(store, opts.Theme),
		state.ViewPorts:     portsview.New(store, opts.Theme, opts.Exporter),
		state.ViewAlerts:    alertsview.New(store, opts.Theme, opts.Resolver),
	}

	model := &Model{
		store:     store,
		keymap:    keyMap,
		theme:     opts.Theme,
		scheduler: opts.Scheduler,
		views:     views,
		order:     append([]state.ViewKind{}, state.DefaultViewOrder...),
		active:    state.ViewDashboard,
	}
	if store != nil {
		model.sub = store.Subscribe()
	}
	return model
}

type storeChangeMsg struct{}

type tickMsg time.Time

func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.views)+3)
	for _, v := range m.views {
		cmds = append(cmds, v.Init())
	}
	cmds = append(cmds, m.refreshCmd(), m.scheduleTick(), waitForStoreChanges(m.sub))
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangeMsg:
		return m, waitForStoreChanges(m.sub)

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.scheduleTick())

	case tea.FocusMsg:
		if m.scheduler != nil {
			m.scheduler.SetVisible(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.scheduler != nil {
			m.scheduler.SetVisible(false)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, v := range m.views {
			v.SetSize(msg.Width, max(1, msg.Height-3))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.NextView):
			m.cycle(1)
		case key.Matches(msg, m.keymap.PrevView):
			m.cycle(-1)
		case key.Matches(msg, m.keymap.Refresh):
			return m, m.refreshCmd()
		}

	case tea.QuitMsg:
		m.closeSubscription()
	}

	activeView := m.activeView()
	updated, cmd := activeView.Update(msg)
	if nextView, ok := updated.(view.Model); ok {
		m.views[m.active] = nextView
	}

	return m, cmd
}

func (m *Model) View() string {
	activeView := m.activeView()
	if activeView == nil {
		return ""
	}

	headline := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Title.Render("PortSentry"),
		lipgloss.NewStyle().Padding(0, 1).Render(m.renderTabs()),
	)

	body := activeView.View()
	snapshot := m.store.Snapshot()
	sections := []string{headline, body}
	if toasts := m.renderToasts(snapshot.Toasts); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.theme.Footer.Render(m.footerLine(snapshot)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) activeView() view.Model {
	return m.views[m.active]
}

func (m *Model) cycle(delta int) {
	if len(m.order) == 0 {
		return
	}
	idx := util.WrapIndex(indexOf(m.order, m.active), delta, len(m.order))
	m.active = m.order[idx]
	m.store.SetActiveView(m.active)
}

func (m *Model) closeSubscription() {
	if m.sub != nil {
		m.sub.Close()
		m.sub = nil
	}
}

// scheduleTick keeps the refresh timer running; whether a tick actually
// refreshes is the scheduler's call (it skips ticks while hidden).
func (m *Model) scheduleTick() tea.Cmd {
	interval := pollInterval
	if m.scheduler != nil {
		interval = m.scheduler.Interval()
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

const pollInterval = 3 * time.Second

func (m *Model) tickCmd() tea.Cmd {
	if m.scheduler == nil {
		return nil
	}
	return func() tea.Msg {
		m.scheduler.Tick()
		return nil
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	if m.scheduler == nil {
		return nil
	}
	return func() tea.Msg {
		m.scheduler.Refresh()
		return nil
	}
}

func (m *Model) renderTabs() string {
	labels := make([]string, 0, len(m.order))
	for _, kind := range m.order {
		view := m.views[kind]
		if view == nil {
			continue
		}
		labels = append(labels, m.theme.RenderTab(view.Title(), kind == m.active))
	}
	return strings.Join(labels, " ")
}

// renderToasts stacks active notifications newest-last, styled by severity.
func (m *Model) renderToasts(toasts []state.Toast) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		style := m.theme.Severity(string(toast.Severity))
		lines = append(lines, style.Render("▌ ")+toast.Message)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) footerLine(snapshot state.Snapshot) string {
	ports := len(snapshot.Ports.CurrentPorts)
	line := fmt.Sprintf("View %s · Ports %d · %s", titleCase(string(snapshot.ActiveView)), ports, m.keymap.ShortHelp())
	if snapshot.LastError != "" {
		line = fmt.Sprintf("%s · %s", line, m.theme.Danger.Render(snapshot.LastError))
	}
	return line
}

func indexOf(values []state.ViewKind, target state.ViewKind) int {
	for idx, value := range values {
		if value == target {
			return idx
		}
	}
	return 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func waitForStoreChanges(sub *state.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-sub.Events(); !ok {
			return nil
		}
		return storeChangeMsg{}
	}
}
