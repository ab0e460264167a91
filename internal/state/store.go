package state

import (
	"sync"
	"time"
)

// Store guards shared application state needed by multiple Bubble Tea models.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     map[int]*Subscription
	nextSub  int
}

// Subscription delivers notifications when the store mutates.
type Subscription struct {
	id     int
	store  *Store
	events chan struct{}
}

// NewStore creates a state store seeded with default values.
func NewStore() *Store {
	return &Store{
		snapshot: Snapshot{
			ActiveView: ViewDashboard,
		},
		subs: make(map[int]*Subscription),
	}
}

// Snapshot returns a copy of the current application state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copySnap := s.snapshot
	copySnap.Ports = clonePortSnapshot(s.snapshot.Ports)
	copySnap.Alerts = cloneAlerts(s.snapshot.Alerts)
	copySnap.System = cloneSystemInfo(s.snapshot.System)
	copySnap.Toasts = cloneToasts(s.snapshot.Toasts)
	return copySnap
}

// SetPortStatus replaces the cached port snapshot. The previous snapshot
// is discarded wholesale; a stale write simply becomes the new truth
// until the next refresh (last writer wins).
func (s *Store) SetPortStatus(ports PortSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Ports = clonePortSnapshot(ports)
	s.snapshot.PortsUpdatedAt = time.Now()
	s.notifyLocked()
}

// SetAlerts replaces the cached alert list.
func (s *Store) SetAlerts(alerts []Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Alerts = cloneAlerts(alerts)
	s.snapshot.AlertsUpdatedAt = time.Now()
	s.notifyLocked()
}

// SetSystemInfo replaces the cached host metrics snapshot.
func (s *Store) SetSystemInfo(info SystemInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.System = cloneSystemInfo(info)
	s.snapshot.SystemUpdatedAt = time.Now()
	s.notifyLocked()
}

// AddToast appends a toast to the visible stack.
func (s *Store) AddToast(toast Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Toasts = append(s.snapshot.Toasts, toast)
	s.notifyLocked()
}

// RemoveToast drops the toast with the given handle, if still present.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, toast := range s.snapshot.Toasts {
		if toast.ID == id {
			s.snapshot.Toasts = append(s.snapshot.Toasts[:idx], s.snapshot.Toasts[idx+1:]...)
			s.notifyLocked()
			return
		}
	}
}

// SetActiveView updates the router's active view.
func (s *Store) SetActiveView(kind ViewKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.ActiveView = kind
	s.notifyLocked()
}

// ActiveView returns the currently selected view.
func (s *Store) ActiveView() ViewKind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.ActiveView
}

// SetError records a user-visible error message for the footer.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = msg
	s.notifyLocked()
}

// Subscribe returns a subscription that receives a signal whenever the store mutates.
func (s *Store) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		id:     s.nextSub,
		store:  s,
		events: make(chan struct{}, 1),
	}
	s.nextSub++
	s.subs[sub.id] = sub
	return sub
}

func (s *Store) notifyLocked() {
	for _, sub := range s.subs {
		select {
		case sub.events <- struct{}{}:
		default:
		}
	}
}

func (s *Store) removeSubscription(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(sub.events)
	}
}

// Events returns a channel that receives a signal for each store mutation.
func (sub *Subscription) Events() <-chan struct{} {
	if sub == nil {
		return nil
	}
	return sub.events
}

// Close stops the subscription and releases associated resources.
func (sub *Subscription) Close() {
	if sub == nil || sub.store == nil {
		return
	}
	sub.store.removeSubscription(sub.id)
	sub.store = nil
}

func clonePortSnapshot(ports PortSnapshot) PortSnapshot {
	copySnap := ports
	copySnap.CurrentPorts = clonePortRecords(ports.CurrentPorts)
	copySnap.Changes.NewPorts = clonePortRecords(ports.Changes.NewPorts)
	copySnap.Changes.ClosedPorts = clonePortRecords(ports.Changes.ClosedPorts)
	if len(ports.Changes.ChangedPorts) > 0 {
		copied := make([]PortTransition, len(ports.Changes.ChangedPorts))
		copy(copied, ports.Changes.ChangedPorts)
		copySnap.Changes.ChangedPorts = copied
	} else {
		copySnap.Changes.ChangedPorts = nil
	}
	return copySnap
}

func clonePortRecords(records []PortRecord) []PortRecord {
	if len(records) == 0 {
		return nil
	}
	copied := make([]PortRecord, len(records))
	copy(copied, records)
	return copied
}

func cloneAlerts(alerts []Alert) []Alert {
	if len(alerts) == 0 {
		return nil
	}
	copied := make([]Alert, len(alerts))
	copy(copied, alerts)
	return copied
}

func cloneSystemInfo(info SystemInfo) SystemInfo {
	copySnap := info
	if len(info.Load) > 0 {
		load := make(map[string]float64, len(info.Load))
		for key, value := range info.Load {
			load[key] = value
		}
		copySnap.Load = load
	} else {
		copySnap.Load = nil
	}
	if len(info.System.Users) > 0 {
		users := make([]string, len(info.System.Users))
		copy(users, info.System.Users)
		copySnap.System.Users = users
	} else {
		copySnap.System.Users = nil
	}
	return copySnap
}

func cloneToasts(toasts []Toast) []Toast {
	if len(toasts) == 0 {
		return nil
	}
	copied := make([]Toast, len(toasts))
	copy(copied, toasts)
	return copied
}
