// Package demo implements a self-contained backend for exercising the
// client without a real scanner: a synthetic port generator, a sqlite
// alert store, and the HTTP surface the client polls.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

const timeLayout = "2006-01-02 15:04:05"

type baseService struct {
	port     int
	protocol string
	process  string
	user     string
	cmdline  string
	execPath string
}

var baseServices = []baseService{
	{22, "TCP", "sshd", "root", "/usr/sbin/sshd -D", "/usr/sbin/sshd"},
	{80, "TCP", "nginx", "www-data", "nginx: worker process", "/usr/sbin/nginx"},
	{443, "TCP", "nginx", "www-data", "nginx: worker process", "/usr/sbin/nginx"},
	{5432, "TCP", "postgres", "postgres", "/usr/lib/postgresql/16/bin/postgres", "/usr/lib/postgresql/16/bin/postgres"},
	{53, "UDP", "systemd-resolved", "systemd-resolve", "/lib/systemd/systemd-resolved", "/lib/systemd/systemd-resolved"},
}

var ephemeralProcesses = []struct {
	process string
	user    string
}{
	{"node", "deploy"},
	{"python3", "deploy"},
	{"java", "app"},
	{"unknown", ""},
}

// Generator produces synthetic port snapshots and diffs consecutive
// cycles the way a real scanner backend would.
type Generator struct {
	rng      *rand.Rand
	previous map[string]state.PortRecord
}

// NewGenerator seeds a generator; a zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next produces the following scan cycle: the stable base services plus
// a drifting set of ephemeral high ports, diffed against the previous
// cycle keyed by port/protocol.
func (g *Generator) Next(now time.Time) state.PortSnapshot {
	ts := now.Format(timeLayout)
	records := make([]state.PortRecord, 0, len(baseServices)+4)
	for _, svc := range baseServices {
		records = append(records, state.PortRecord{
			Port:         svc.port,
			Protocol:     svc.protocol,
			State:        "LISTEN",
			ProcessName:  svc.process,
			PID:          100 + svc.port%500,
			User:         svc.user,
			Cmdline:      svc.cmdline,
			ExecPath:     svc.execPath,
			LocalAddress: fmt.Sprintf("0.0.0.0:%d", svc.port),
			Timestamp:    ts,
		})
	}

	count := 1 + g.rng.Intn(4)
	for i := 0; i < count; i++ {
		port := 30000 + g.rng.Intn(20000)
		proc := ephemeralProcesses[g.rng.Intn(len(ephemeralProcesses))]
		records = append(records, state.PortRecord{
			Port:         port,
			Protocol:     "TCP",
			State:        pickState(g.rng),
			ProcessName:  proc.process,
			PID:          1000 + g.rng.Intn(30000),
			User:         proc.user,
			LocalAddress: fmt.Sprintf("127.0.0.1:%d", port),
			Timestamp:    ts,
		})
	}

	changes := g.diff(records)
	return state.PortSnapshot{CurrentPorts: records, Changes: changes, Timestamp: ts}
}

// diff compares against the previous cycle keyed by port/protocol.
// State flips on a surviving key land in ChangedPorts.
func (g *Generator) diff(current []state.PortRecord) state.PortChangeSet {
	curr := make(map[string]state.PortRecord, len(current))
	for _, rec := range current {
		curr[recordKey(rec)] = rec
	}

	var changes state.PortChangeSet
	if g.previous != nil {
		for key, rec := range curr {
			prev, ok := g.previous[key]
			if !ok {
				changes.NewPorts = append(changes.NewPorts, rec)
				continue
			}
			if prev.State != rec.State || prev.PID != rec.PID {
				changes.ChangedPorts = append(changes.ChangedPorts, state.PortTransition{
					Current:  rec,
					Previous: prev,
				})
			}
		}
		for key, rec := range g.previous {
			if _, ok := curr[key]; !ok {
				changes.ClosedPorts = append(changes.ClosedPorts, rec)
			}
		}
	}

	g.previous = curr
	return changes
}

// AlertsFor turns a change set into alert rows: INFO for opens and
// closes, WARNING when the opened port looks risky.
func AlertsFor(changes state.PortChangeSet, now time.Time) []state.Alert {
	ts := now.Format(timeLayout)
	var alerts []state.Alert
	for _, rec := range changes.NewPorts {
		level := state.LevelInfo
		title := fmt.Sprintf("Port opened: %d", rec.Port)
		if rec.ProcessName == "unknown" || rec.ProcessName == "" {
			level = state.LevelWarning
			title = fmt.Sprintf("Unknown process opened port %d", rec.Port)
		}
		alerts = append(alerts, state.Alert{
			Level:     level,
			Title:     title,
			Message:   fmt.Sprintf("%s/%s now %s (process %s)", rec.Protocol, rec.LocalAddress, rec.State, orUnknown(rec.ProcessName)),
			Port:      rec.Port,
			Timestamp: ts,
		})
	}
	for _, rec := range changes.ClosedPorts {
		alerts = append(alerts, state.Alert{
			Level:     state.LevelInfo,
			Title:     fmt.Sprintf("Port closed: %d", rec.Port),
			Message:   fmt.Sprintf("%s/%s no longer open", rec.Protocol, rec.LocalAddress),
			Port:      rec.Port,
			Timestamp: ts,
		})
	}
	return alerts
}

func recordKey(rec state.PortRecord) string {
	return fmt.Sprintf("%d/%s", rec.Port, rec.Protocol)
}

func pickState(rng *rand.Rand) string {
	states := []string{"LISTEN", "ESTABLISHED", "TIME_WAIT", "CLOSE_WAIT"}
	return states[rng.Intn(len(states))]
}

func orUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
