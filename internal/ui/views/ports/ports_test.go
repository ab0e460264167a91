package ports

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AaaBinfinity/PortSentry/internal/export"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
)

type fakeExporter struct {
	filename string
	format   string
	calls    int
}

func (f *fakeExporter) Export(data any, filename, format string) (string, error) {
	f.filename = filename
	f.format = format
	f.calls++
	return "/tmp/" + filename, nil
}

func newModel(store *state.Store, exporter *fakeExporter) *Model {
	th := theme.New(theme.Options{Override: "dark"})
	m := New(store, th, exporter).(*Model)
	m.SetSize(140, 30)
	return m
}

func seedPorts(store *state.Store, records ...state.PortRecord) {
	store.SetPortStatus(state.PortSnapshot{CurrentPorts: records})
}

func TestPortsEmptyState(t *testing.T) {
	m := newModel(state.NewStore(), nil)
	out := m.View()
	if !strings.Contains(out, "No open ports reported.") {
		t.Fatalf("expected empty state, got:\n%s", out)
	}
}

func TestPortsTableRendersRows(t *testing.T) {
	store := state.NewStore()
	seedPorts(store,
		state.PortRecord{Port: 22, Protocol: "TCP", State: "LISTEN", ProcessName: "sshd", PID: 10, User: "root", Timestamp: "2026-08-29 10:00:00"},
		state.PortRecord{Port: 8080, Protocol: "TCP", State: "ESTABLISHED", ProcessName: "node", PID: 0, User: "deploy"},
	)

	out := newModel(store, nil).View()
	for _, want := range []string{"PORT", "STATE", "sshd", "node", "LISTEN", "ESTABLISHED", "2026-08-29 10:00:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	// pid 0 renders as N/A
	if !strings.Contains(out, "N/A") {
		t.Fatalf("expected N/A for missing pid:\n%s", out)
	}
}

func TestPortsEscapesUntrustedFields(t *testing.T) {
	store := state.NewStore()
	seedPorts(store, state.PortRecord{
		Port:        8080,
		Protocol:    "TCP",
		State:       "LISTEN",
		ProcessName: "<script>",
		User:        "deploy",
		Cmdline:     "<script>alert(1)</script>",
	})

	out := newModel(store, nil).View()
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw markup leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped process name:\n%s", out)
	}
}

func TestPortsDetailShowsRisk(t *testing.T) {
	store := state.NewStore()
	seedPorts(store, state.PortRecord{Port: 3389, Protocol: "TCP", State: "LISTEN", ProcessName: "xrdp", User: "root"})

	out := newModel(store, nil).View()
	if !strings.Contains(out, "Risk:") || !strings.Contains(out, "HIGH") {
		t.Fatalf("expected a high risk detail line:\n%s", out)
	}
	if !strings.Contains(out, "well-known service port") {
		t.Fatalf("expected the risk warning listed:\n%s", out)
	}
}

func TestPortsRenderIdempotent(t *testing.T) {
	store := state.NewStore()
	seedPorts(store,
		state.PortRecord{Port: 22, Protocol: "TCP", State: "LISTEN", ProcessName: "sshd", User: "root"},
		state.PortRecord{Port: 53, Protocol: "UDP", State: "LISTEN", ProcessName: "resolved"},
	)

	m := newModel(store, nil)
	if first, second := m.View(), m.View(); first != second {
		t.Fatalf("repeated renders differ")
	}
}

func TestPortsExportKeybindings(t *testing.T) {
	store := state.NewStore()
	seedPorts(store, state.PortRecord{Port: 80, Protocol: "TCP", State: "LISTEN", ProcessName: "nginx"})

	exporter := &fakeExporter{}
	m := newModel(store, exporter)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if cmd == nil {
		t.Fatalf("expected an export command")
	}
	cmd()
	if exporter.calls != 1 || exporter.filename != "ports" || exporter.format != export.FormatCSV {
		t.Fatalf("unexpected export call: %+v", exporter)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'E'}})
	cmd()
	if exporter.format != export.FormatJSON {
		t.Fatalf("expected json export, got %q", exporter.format)
	}
}

func TestPortsSelectionNavigation(t *testing.T) {
	store := state.NewStore()
	seedPorts(store,
		state.PortRecord{Port: 22, Protocol: "TCP", State: "LISTEN", ProcessName: "sshd"},
		state.PortRecord{Port: 80, Protocol: "TCP", State: "LISTEN", ProcessName: "nginx"},
	)

	m := newModel(store, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	out := m.View()
	if !strings.Contains(out, "nginx") {
		t.Fatalf("expected second row visible:\n%s", out)
	}
	if m.rowIdx != 1 {
		t.Fatalf("expected selection on row 1, got %d", m.rowIdx)
	}

	// selection clamps when the snapshot shrinks
	seedPorts(store, state.PortRecord{Port: 22, Protocol: "TCP", State: "LISTEN", ProcessName: "sshd"})
	m.View()
	if m.rowIdx != 0 {
		t.Fatalf("expected clamped selection, got %d", m.rowIdx)
	}
}
