// Package api wraps the PortSentry backend's JSON/HTTP surface. Each
// call performs exactly one request, validates the transport outcome,
// decodes and normalizes the payload, and reports failures as typed
// *FetchError values. No retries, no caching.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

// Default endpoint paths, matching the backend's route table.
const (
	DefaultPortStatusPath   = "/api/port-status"
	DefaultAlertsPath       = "/api/alerts"
	DefaultSystemInfoPath   = "/api/system-info"
	DefaultResolveAlertPath = "/api/resolve-alert"
)

// Options configure the backend client. All fields are read once at
// construction; empty paths fall back to the defaults above.
type Options struct {
	BaseURL          string
	PortStatusPath   string
	AlertsPath       string
	SystemInfoPath   string
	ResolveAlertPath string
}

// Client issues requests against one configured backend.
type Client struct {
	base  string
	paths Options
	http  *http.Client
}

// New builds a client for the given backend. The underlying HTTP client
// carries no timeout: in-flight fetches are never cancelled, a request
// that never resolves simply never publishes (see the poller contract).
func New(opts Options) *Client {
	if opts.PortStatusPath == "" {
		opts.PortStatusPath = DefaultPortStatusPath
	}
	if opts.AlertsPath == "" {
		opts.AlertsPath = DefaultAlertsPath
	}
	if opts.SystemInfoPath == "" {
		opts.SystemInfoPath = DefaultSystemInfoPath
	}
	if opts.ResolveAlertPath == "" {
		opts.ResolveAlertPath = DefaultResolveAlertPath
	}
	return &Client{
		base:  strings.TrimRight(opts.BaseURL, "/"),
		paths: opts,
		http:  &http.Client{},
	}
}

// PortStatus fetches the current port snapshot and backend-computed
// change set.
func (c *Client) PortStatus(ctx context.Context) (state.PortSnapshot, error) {
	const source = "portStatus"
	var payload state.PortSnapshot
	if err := c.getJSON(ctx, source, c.paths.PortStatusPath, &payload); err != nil {
		return state.PortSnapshot{}, err
	}
	payload.CurrentPorts = normalizePorts(payload.CurrentPorts)
	payload.Changes.NewPorts = normalizePorts(payload.Changes.NewPorts)
	payload.Changes.ClosedPorts = normalizePorts(payload.Changes.ClosedPorts)
	return payload, nil
}

// Alerts fetches the unresolved alert list.
func (c *Client) Alerts(ctx context.Context) ([]state.Alert, error) {
	const source = "alerts"
	var payload []state.Alert
	if err := c.getJSON(ctx, source, c.paths.AlertsPath, &payload); err != nil {
		return nil, err
	}
	for idx := range payload {
		payload[idx].Level = strings.ToUpper(strings.TrimSpace(payload[idx].Level))
	}
	return payload, nil
}

// SystemInfo fetches the host metrics snapshot.
func (c *Client) SystemInfo(ctx context.Context) (state.SystemInfo, error) {
	const source = "systemInfo"
	var payload state.SystemInfo
	if err := c.getJSON(ctx, source, c.paths.SystemInfoPath, &payload); err != nil {
		return state.SystemInfo{}, err
	}
	payload.System.CPUPercent = clampPercent(payload.System.CPUPercent)
	payload.System.MemoryPercent = clampPercent(payload.System.MemoryPercent)
	payload.System.DiskUsage = clampPercent(payload.System.DiskUsage)
	if payload.System.UptimeSeconds < 0 {
		payload.System.UptimeSeconds = 0
	}
	return payload, nil
}

type resolveReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ResolveAlert asks the backend to mark one alert resolved. A 2xx
// response carrying success:false is a business failure, distinct from
// transport success.
func (c *Client) ResolveAlert(ctx context.Context, id int) error {
	const source = "resolveAlert"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s/%d", c.base, c.paths.ResolveAlertPath, id), strings.NewReader("{}"))
	if err != nil {
		return newFetchError(source, KindTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return newFetchError(source, KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newFetchError(source, KindTransport, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var reply resolveReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return newFetchError(source, KindParse, err)
	}
	if !reply.Success {
		msg := reply.Error
		if msg == "" {
			msg = "alert could not be resolved"
		}
		return newFetchError(source, KindBusiness, errors.New(msg))
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, source, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return newFetchError(source, KindTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return newFetchError(source, KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return newFetchError(source, KindTransport, fmt.Errorf("unexpected status %s", resp.Status))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return newFetchError(source, KindParse, err)
	}
	return nil
}

// normalizePorts defaults malformed fields at the boundary instead of
// letting holes propagate into rendering.
func normalizePorts(records []state.PortRecord) []state.PortRecord {
	for idx := range records {
		rec := &records[idx]
		rec.Protocol = strings.ToUpper(strings.TrimSpace(rec.Protocol))
		if rec.Protocol != "TCP" && rec.Protocol != "UDP" {
			rec.Protocol = "UNKNOWN"
		}
		rec.State = strings.ToUpper(strings.TrimSpace(rec.State))
		if rec.Port < 0 || rec.Port > 65535 {
			rec.Port = 0
		}
		if rec.PID < 0 {
			rec.PID = 0
		}
	}
	return records
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
