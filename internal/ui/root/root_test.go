package root

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
)

type fakeScheduler struct {
	visible   []bool
	ticks     int
	refreshes int
}

func (f *fakeScheduler) Tick()             { f.ticks++ }
func (f *fakeScheduler) SetVisible(v bool) { f.visible = append(f.visible, v) }
func (f *fakeScheduler) Refresh()          { f.refreshes++ }

// a tiny interval keeps the follow-up tea.Tick command from stalling tests
func (f *fakeScheduler) Interval() time.Duration { return time.Millisecond }

func newRoot(store *state.Store, scheduler *fakeScheduler) *Model {
	th := theme.New(theme.Options{Override: "dark"})
	opts := Options{Theme: th}
	if scheduler != nil {
		opts.Scheduler = scheduler
	}
	m := New(store, opts)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func TestRootRendersTabsAndFooter(t *testing.T) {
	store := state.NewStore()
	m := newRoot(store, nil)

	out := m.View()
	for _, want := range []string{"PortSentry", "Dashboard", "Ports", "Alerts", "View Dashboard"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in root view:\n%s", want, out)
		}
	}
}

func TestRootCyclesViews(t *testing.T) {
	store := state.NewStore()
	m := newRoot(store, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.active != state.ViewPorts {
		t.Fatalf("expected ports view, got %s", m.active)
	}
	if store.ActiveView() != state.ViewPorts {
		t.Fatalf("expected store to track the active view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.active != state.ViewDashboard {
		t.Fatalf("expected to cycle back, got %s", m.active)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.active != state.ViewAlerts {
		t.Fatalf("expected wrap-around to alerts, got %s", m.active)
	}
}

func TestRootFocusDrivesVisibility(t *testing.T) {
	scheduler := &fakeScheduler{}
	m := newRoot(state.NewStore(), scheduler)

	m.Update(tea.BlurMsg{})
	m.Update(tea.FocusMsg{})
	if len(scheduler.visible) != 2 || scheduler.visible[0] || !scheduler.visible[1] {
		t.Fatalf("expected blur then focus recorded, got %v", scheduler.visible)
	}
}

func TestRootTickAndRefresh(t *testing.T) {
	scheduler := &fakeScheduler{}
	m := newRoot(state.NewStore(), scheduler)

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("expected follow-up commands from a tick")
	}
	runCmds(cmd)
	if scheduler.ticks != 1 {
		t.Fatalf("expected one scheduler tick, got %d", scheduler.ticks)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	runCmds(cmd)
	if scheduler.refreshes != 1 {
		t.Fatalf("expected a manual refresh, got %d", scheduler.refreshes)
	}
}

func TestRootRendersToasts(t *testing.T) {
	store := state.NewStore()
	store.AddToast(state.Toast{ID: "t1", Message: "Exported ports.csv", Severity: state.SeveritySuccess})

	out := newRoot(store, nil).View()
	if !strings.Contains(out, "Exported ports.csv") {
		t.Fatalf("expected the toast rendered:\n%s", out)
	}
}

func TestRootFooterShowsLastError(t *testing.T) {
	store := state.NewStore()
	store.SetError("backend unreachable")

	out := newRoot(store, nil).View()
	if !strings.Contains(out, "backend unreachable") {
		t.Fatalf("expected the error surfaced in the footer:\n%s", out)
	}
}

// runCmds executes a command tree, ignoring scheduled tea.Tick commands.
func runCmds(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub == nil {
				continue
			}
			sub()
		}
	}
}
