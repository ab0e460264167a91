// Package controller defines the narrow interfaces interactive views
// depend on. Implementations are injected at startup; views never reach
// for ambient globals.
package controller

import "time"

// Scheduler exposes the refresh triggers. Every trigger funnels into
// the same idempotent refresh operation.
type Scheduler interface {
	// Tick fires the periodic trigger; ticks while hidden are
	// skipped, not queued.
	Tick()
	// SetVisible records terminal focus. Regaining visibility
	// triggers an immediate refresh.
	SetVisible(visible bool)
	// Refresh fires the manual trigger.
	Refresh()
	// Interval returns the configured tick period.
	Interval() time.Duration
}

// AlertResolver routes an alert-resolution command to the backend,
// followed by a targeted re-fetch of the alerts source only.
type AlertResolver interface {
	ResolveAlert(id int) error
}

// DataExporter serializes a payload to a local file.
type DataExporter interface {
	Export(data any, filename, format string) (string, error)
}
