// Package format holds the pure display conversions: escaping untrusted
// strings, formatting timestamps and figures, and classifying health.
package format

import (
	"fmt"
	"strings"
	"time"
)

// wireTimeLayout is the timestamp format the backend emits.
const wireTimeLayout = "2006-01-02 15:04:05"

// Health classifies host utilization for the dashboard indicator.
type Health string

const (
	HealthHealthy  Health = "healthy"
	HealthWarning  Health = "warning"
	HealthCritical Health = "critical"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape neutralizes the five markup metacharacters in untrusted text
// before it is interpolated into rendered output. The ampersand must be
// rewritten first, which the single-pass replacer guarantees.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Timestamp renders a backend timestamp for display. The backend emits
// "2006-01-02 15:04:05"; RFC 3339 is accepted as a fallback. Anything
// unparseable renders as "unknown time".
func Timestamp(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown time"
	}
	if ts, err := time.Parse(wireTimeLayout, trimmed); err == nil {
		return ts.Format(wireTimeLayout)
	}
	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts.Local().Format(wireTimeLayout)
	}
	return "unknown time"
}

// Load renders the 1-minute load average with two decimal places.
// Missing values render as "0.00".
func Load(load map[string]float64) string {
	return fmt.Sprintf("%.2f", load["1min"])
}

// Classify derives the discrete health level from cpu/memory
// percentages. The thresholds are sequential overrides, not bands: the
// critical check runs after the warning check and replaces it.
func Classify(cpuPercent, memoryPercent float64) Health {
	health := HealthHealthy
	if cpuPercent > 80 || memoryPercent > 80 {
		health = HealthWarning
	}
	if cpuPercent > 90 || memoryPercent > 90 {
		health = HealthCritical
	}
	return health
}

// Bytes renders a byte count with a binary-scaled unit suffix.
func Bytes(size float64) string {
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", size)
}

// Duration renders a second count as a compact h/m/s figure.
func Duration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh%dm", seconds/3600, (seconds%3600)/60)
	}
}

// Fallback returns def when value is empty or whitespace only.
func Fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// PID renders a process id, or "N/A" when the backend had none.
func PID(pid int) string {
	if pid <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", pid)
}
