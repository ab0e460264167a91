package dashboard

import (
	"strings"
	"testing"

	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
)

func newModel(store *state.Store) *Model {
	th := theme.New(theme.Options{Override: "dark"})
	m := New(store, th).(*Model)
	m.SetSize(120, 24)
	return m
}

func TestDashboardWaitingState(t *testing.T) {
	m := newModel(state.NewStore())
	out := m.View()
	if !strings.Contains(out, "Waiting for backend data") {
		t.Fatalf("expected waiting line, got:\n%s", out)
	}
}

func TestDashboardCounters(t *testing.T) {
	store := state.NewStore()
	store.SetPortStatus(state.PortSnapshot{
		CurrentPorts: []state.PortRecord{
			{Port: 22, Protocol: "TCP", State: "LISTEN", ProcessName: "sshd", User: "root"},
			{Port: 53, Protocol: "UDP", State: "LISTEN", ProcessName: "resolved"},
			{Port: 443, Protocol: "TCP", State: "ESTABLISHED", ProcessName: "nginx", User: "www-data"},
		},
	})
	store.SetAlerts([]state.Alert{
		{ID: 1, Level: state.LevelWarning, Resolved: false},
		{ID: 2, Level: state.LevelInfo, Resolved: true},
	})

	out := newModel(store).View()
	wants := []string{
		"Open ports", "TCP", "UDP", "Listening",
		"Unresolved 1", "Resolved   1",
		"Ports by process", "sshd",
		"Ports by user", "root", "www-data", "unknown",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in dashboard output:\n%s", want, out)
		}
	}
}

func TestDashboardHealthIndicator(t *testing.T) {
	cases := []struct {
		name   string
		cpu    float64
		memory float64
		expect string
	}{
		{"healthy", 50, 50, "HEALTHY"},
		{"warning", 85, 50, "WARNING"},
		{"cpu critical", 95, 50, "CRITICAL"},
		{"memory critical", 50, 95, "CRITICAL"},
	}

	for _, tc := range cases {
		store := state.NewStore()
		store.SetSystemInfo(state.SystemInfo{
			Load:   map[string]float64{"1min": 0.42},
			System: state.SystemMetrics{CPUPercent: tc.cpu, MemoryPercent: tc.memory},
		})
		out := newModel(store).View()
		if !strings.Contains(out, tc.expect) {
			t.Fatalf("%s: expected %s indicator, got:\n%s", tc.name, tc.expect, out)
		}
	}
}

func TestDashboardMemoryAndUptimeDetail(t *testing.T) {
	store := state.NewStore()
	store.SetSystemInfo(state.SystemInfo{
		Load: map[string]float64{"1min": 0.10},
		System: state.SystemMetrics{
			CPUPercent:    20,
			MemoryPercent: 50,
			MemoryUsed:    4 * 1024 * 1024 * 1024,
			MemoryTotal:   8 * 1024 * 1024 * 1024,
			UptimeSeconds: 3900,
		},
	})

	out := newModel(store).View()
	for _, want := range []string{"4.00 GB", "8.00 GB", "Uptime 1h5m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in dashboard output:\n%s", want, out)
		}
	}
}

func TestDashboardRenderIdempotent(t *testing.T) {
	store := state.NewStore()
	store.SetPortStatus(state.PortSnapshot{
		CurrentPorts: []state.PortRecord{{Port: 80, Protocol: "TCP", State: "LISTEN", ProcessName: "nginx"}},
	})
	store.SetSystemInfo(state.SystemInfo{Load: map[string]float64{"1min": 1}})

	m := newModel(store)
	first := m.View()
	second := m.View()
	if first != second {
		t.Fatalf("repeated renders differ")
	}
}
