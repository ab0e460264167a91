// Package poller owns the refresh cycle: it fans out the three backend
// fetches concurrently, publishes each source into the store the moment
// it completes, aggregates partial failures into a single notification,
// and exposes the tick / visibility / manual triggers that all funnel
// into the same idempotent refresh.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AaaBinfinity/PortSentry/internal/api"
	"github.com/AaaBinfinity/PortSentry/internal/notify"
	"github.com/AaaBinfinity/PortSentry/internal/state"
)

// DefaultInterval is the periodic refresh cadence.
const DefaultInterval = 3000 * time.Millisecond

// Options configure a Poller.
type Options struct {
	Interval time.Duration
}

// Poller drives the polling / reconciliation pipeline. Overlapping
// refreshes are tolerated rather than prevented: renders are idempotent
// and the store takes last-writer-wins, so a stale response arriving
// after a newer one may briefly win. That ordering gap is a documented
// limitation, not corrected here.
type Poller struct {
	ctx      context.Context
	client   *api.Client
	store    *state.Store
	notifier *notify.Notifier
	interval time.Duration

	mu      sync.Mutex
	visible bool
}

// New builds a poller. The context bounds the poller's lifetime; it is
// the only cancellation in play, individual fetches carry no timeout.
func New(ctx context.Context, client *api.Client, store *state.Store, notifier *notify.Notifier, opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		ctx:      ctx,
		client:   client,
		store:    store,
		notifier: notifier,
		interval: interval,
		visible:  true,
	}
}

// Interval returns the periodic trigger cadence.
func (p *Poller) Interval() time.Duration { return p.interval }

// Tick fires the periodic trigger. Ticks while hidden are skipped, not
// queued.
func (p *Poller) Tick() {
	p.mu.Lock()
	visible := p.visible
	p.mu.Unlock()
	if !visible {
		return
	}
	p.RefreshAll()
}

// SetVisible records terminal focus and refreshes immediately when
// visibility is regained.
func (p *Poller) SetVisible(visible bool) {
	p.mu.Lock()
	regained := visible && !p.visible
	p.visible = visible
	p.mu.Unlock()
	if regained {
		p.RefreshAll()
	}
}

// Refresh fires the manual trigger.
func (p *Poller) Refresh() {
	p.RefreshAll()
}

// RefreshAll issues the three fetches concurrently. Each success
// publishes into the store immediately on its own completion; there is
// no barrier requiring all three before any render. Failures are
// collected and reported as one aggregate notification, without
// suppressing the partial successes. No asynchronous path may leave
// here unreported.
func (p *Poller) RefreshAll() {
	var (
		errMu  sync.Mutex
		failed []error
	)
	record := func(err error) {
		errMu.Lock()
		failed = append(failed, err)
		errMu.Unlock()
	}

	group := errgroup.Group{}
	group.Go(func() error {
		ports, err := p.client.PortStatus(p.ctx)
		if err != nil {
			record(err)
			return nil
		}
		p.store.SetPortStatus(ports)
		p.notifyPortChanges(ports.Changes)
		return nil
	})
	group.Go(func() error {
		alerts, err := p.client.Alerts(p.ctx)
		if err != nil {
			record(err)
			return nil
		}
		p.store.SetAlerts(alerts)
		return nil
	})
	group.Go(func() error {
		info, err := p.client.SystemInfo(p.ctx)
		if err != nil {
			record(err)
			return nil
		}
		p.store.SetSystemInfo(info)
		return nil
	})
	_ = group.Wait()

	if len(failed) > 0 {
		p.notifier.ShowError("refresh failed", errors.Join(failed...))
	}
}

// ResolveAlert asks the backend to resolve one alert and then re-fetches
// the alerts source only. A failure is reported individually and not
// retried.
func (p *Poller) ResolveAlert(id int) error {
	if err := p.client.ResolveAlert(p.ctx, id); err != nil {
		p.notifier.ShowError("resolve alert", err)
		return err
	}
	p.notifier.ShowToast(fmt.Sprintf("Alert %d resolved", id), state.SeveritySuccess)
	p.RefreshAlerts()
	return nil
}

// RefreshAlerts re-fetches and publishes the alerts source alone.
func (p *Poller) RefreshAlerts() {
	alerts, err := p.client.Alerts(p.ctx)
	if err != nil {
		p.notifier.ShowError("refresh alerts", err)
		return
	}
	p.store.SetAlerts(alerts)
}

// notifyPortChanges emits exactly one info toast when the
// backend-supplied change set has any new or closed ports, and none
// otherwise.
func (p *Poller) notifyPortChanges(changes state.PortChangeSet) {
	if changes.Empty() {
		return
	}
	msg := fmt.Sprintf("Port changes: %d new, %d closed", len(changes.NewPorts), len(changes.ClosedPorts))
	p.notifier.ShowToast(msg, state.SeverityInfo)
}
