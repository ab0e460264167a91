// Package analyze derives display-only statistics from backend
// payloads: per-process/per-user port distributions, per-port risk
// assessments, and alert tallies. Everything here is a pure projection
// of one refresh cycle's data.
package analyze

import (
	"fmt"
	"sort"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

// Bucket is one labeled count in a distribution.
type Bucket struct {
	Label string
	Value int
}

// PortStatistics tallies one port snapshot.
type PortStatistics struct {
	Total       int
	TCP         int
	UDP         int
	Listening   int
	CommonPorts int
	ByProcess   []Bucket
	ByUser      []Bucket
}

var commonPorts = map[int]bool{22: true, 80: true, 443: true, 3306: true, 5432: true}

// Statistics computes the distribution summary for a port list. Buckets
// are sorted by descending count, ties broken by label, so identical
// input always yields identical output.
func Statistics(ports []state.PortRecord) PortStatistics {
	stats := PortStatistics{Total: len(ports)}
	byProcess := make(map[string]int)
	byUser := make(map[string]int)
	for _, rec := range ports {
		switch rec.Protocol {
		case "TCP":
			stats.TCP++
		case "UDP":
			stats.UDP++
		}
		if rec.State == "LISTEN" {
			stats.Listening++
		}
		if commonPorts[rec.Port] {
			stats.CommonPorts++
		}
		byProcess[fallback(rec.ProcessName, "unknown")]++
		byUser[fallback(rec.User, "unknown")]++
	}
	stats.ByProcess = sortBuckets(byProcess)
	stats.ByUser = sortBuckets(byUser)
	return stats
}

// RiskLevel grades a port's exposure.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk is the assessment for a single port record.
type Risk struct {
	Level    RiskLevel
	Warnings []string
	Score    int
}

var highRiskPorts = map[int]bool{
	21: true, 23: true, 135: true, 139: true, 445: true,
	1433: true, 3306: true, 3389: true, 5432: true,
}

// Port 27017/28017 are expected MongoDB listeners, not flagged as
// non-standard.
var nonStandardExempt = map[int]bool{27017: true, 28017: true}

// AssessPort grades one record: well-known service ports, privileged
// users, and unknown processes raise the level to high; bare high ports
// raise it to medium. The score adds 10 per warning on top of the level
// base, capped at 100.
func AssessPort(rec state.PortRecord) Risk {
	level := RiskLow
	var warnings []string

	if highRiskPorts[rec.Port] {
		level = RiskHigh
		warnings = append(warnings, fmt.Sprintf("port %d is a well-known service port", rec.Port))
	}
	if rec.User == "root" || rec.User == "Administrator" {
		level = RiskHigh
		warnings = append(warnings, fmt.Sprintf("process runs as privileged user %s", rec.User))
	}
	if rec.ProcessName == "" || rec.ProcessName == "unknown" {
		level = RiskHigh
		warnings = append(warnings, "unknown process is listening")
	}
	if rec.Port > 10000 && !nonStandardExempt[rec.Port] {
		if level == RiskLow {
			level = RiskMedium
		}
		warnings = append(warnings, fmt.Sprintf("port %d is non-standard", rec.Port))
	}

	return Risk{Level: level, Warnings: warnings, Score: riskScore(level, len(warnings))}
}

func riskScore(level RiskLevel, warningCount int) int {
	base := 0
	switch level {
	case RiskMedium:
		base = 50
	case RiskHigh:
		base = 80
	}
	score := base + warningCount*10
	if score > 100 {
		score = 100
	}
	return score
}

// AlertStatistics tallies one alerts payload.
type AlertStatistics struct {
	Total      int
	Resolved   int
	Unresolved int
	ByLevel    map[string]int
}

// AlertStats summarizes the alert list as received, without reordering.
func AlertStats(alerts []state.Alert) AlertStatistics {
	stats := AlertStatistics{Total: len(alerts), ByLevel: make(map[string]int)}
	for _, alert := range alerts {
		if alert.Resolved {
			stats.Resolved++
		} else {
			stats.Unresolved++
		}
		stats.ByLevel[alert.Level]++
	}
	return stats
}

// Unresolved filters to the alerts still open, in arrival order.
func Unresolved(alerts []state.Alert) []state.Alert {
	var open []state.Alert
	for _, alert := range alerts {
		if !alert.Resolved {
			open = append(open, alert)
		}
	}
	return open
}

func sortBuckets(values map[string]int) []Bucket {
	if len(values) == 0 {
		return nil
	}
	buckets := make([]Bucket, 0, len(values))
	for key, value := range values {
		buckets = append(buckets, Bucket{Label: key, Value: value})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value == buckets[j].Value {
			return buckets[i].Label < buckets[j].Label
		}
		return buckets[i].Value > buckets[j].Value
	})
	return buckets
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
