package state

import "time"

// ViewKind identifies a top-level view inside the TUI router.
type ViewKind string

const (
	ViewDashboard ViewKind = "dashboard"
	ViewPorts     ViewKind = "ports"
	ViewAlerts    ViewKind = "alerts"
)

// DefaultViewOrder drives the tab navigation order across the application.
var DefaultViewOrder = []ViewKind{
	ViewDashboard,
	ViewPorts,
	ViewAlerts,
}

// PortRecord is one row of the backend's port snapshot. Records are
// replaced wholesale each refresh cycle and never mutated in place.
type PortRecord struct {
	Port          int    `json:"port"`
	Protocol      string `json:"protocol"`
	State         string `json:"state"`
	ProcessName   string `json:"process_name"`
	PID           int    `json:"pid"`
	User          string `json:"user"`
	Cmdline       string `json:"cmdline"`
	ExecPath      string `json:"exec_path"`
	LocalAddress  string `json:"local_address"`
	RemoteAddress string `json:"remote_address"`
	Timestamp     string `json:"timestamp"`
}

// PortTransition pairs a port's current record with its previous one.
type PortTransition struct {
	Current  PortRecord `json:"port_data"`
	Previous PortRecord `json:"previous_state"`
}

// PortChangeSet is the backend-computed diff for one scan cycle. It is
// consumed read-only; the client never diffs snapshots itself.
type PortChangeSet struct {
	NewPorts     []PortRecord     `json:"new_ports"`
	ClosedPorts  []PortRecord     `json:"closed_ports"`
	ChangedPorts []PortTransition `json:"changed_ports"`
}

// Empty reports whether the change set carries no new or closed ports.
func (c PortChangeSet) Empty() bool {
	return len(c.NewPorts) == 0 && len(c.ClosedPorts) == 0
}

// PortSnapshot is the full port-status payload for one cycle.
type PortSnapshot struct {
	CurrentPorts []PortRecord  `json:"current_ports"`
	Changes      PortChangeSet `json:"changes"`
	Timestamp    string        `json:"timestamp"`
}

// Alert levels reported by the backend.
const (
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
)

// Alert is a backend alert entry. ID is the stable identity; Resolved is
// the only field the client ever asks the backend to mutate.
type Alert struct {
	ID        int    `json:"id"`
	Level     string `json:"level"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Port      int    `json:"port"`
	Timestamp string `json:"timestamp"`
	Resolved  bool   `json:"resolved"`
}

// SystemMetrics carries host utilization percentages.
type SystemMetrics struct {
	CPUPercent    float64  `json:"cpu_percent"`
	MemoryPercent float64  `json:"memory_percent"`
	MemoryUsed    float64  `json:"memory_used"`
	MemoryTotal   float64  `json:"memory_total"`
	DiskUsage     float64  `json:"disk_usage"`
	BootTime      string   `json:"boot_time"`
	UptimeSeconds int      `json:"uptime_seconds"`
	Users         []string `json:"users"`
}

// SystemInfo is the ephemeral host snapshot, fully replaced each cycle.
// Load is keyed "1min", "5min", "15min".
type SystemInfo struct {
	Load   map[string]float64 `json:"load"`
	System SystemMetrics      `json:"system"`
}

// Severity classifies a toast notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Toast is a transient user-visible message. Toasts stack freely and
// self-expire; the ID only serves as a removal handle.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Snapshot is a threadsafe copy of the application's state tree.
type Snapshot struct {
	ActiveView      ViewKind
	Ports           PortSnapshot
	PortsUpdatedAt  time.Time
	Alerts          []Alert
	AlertsUpdatedAt time.Time
	System          SystemInfo
	SystemUpdatedAt time.Time
	Toasts          []Toast
	LastError       string
}
