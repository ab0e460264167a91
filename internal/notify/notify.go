// Package notify implements the transient toast service used by every
// other component to report outcomes.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

// DefaultTTL is how long a toast stays on screen.
const DefaultTTL = 3000 * time.Millisecond

// Options configure a Notifier.
type Options struct {
	TTL    time.Duration
	Logger *log.Logger
}

// Notifier publishes auto-expiring toasts into the state store. Toasts
// stack freely; there is no dedup and no queue limit.
type Notifier struct {
	store  *state.Store
	ttl    time.Duration
	logger *log.Logger
}

// New builds a notifier bound to the given store.
func New(store *state.Store, opts Options) *Notifier {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{store: store, ttl: ttl, logger: logger}
}

// ShowToast raises one toast and schedules its removal after the TTL.
func (n *Notifier) ShowToast(message string, severity state.Severity) {
	toast := state.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	n.store.AddToast(toast)
	time.AfterFunc(n.ttl, func() {
		n.store.RemoveToast(toast.ID)
	})
}

// ShowError logs the error for diagnostics and raises a danger toast
// combining title and the error's message text.
func (n *Notifier) ShowError(title string, err error) {
	n.logger.Printf("%s: %v", title, err)
	n.ShowToast(fmt.Sprintf("%s: %v", title, err), state.SeverityDanger)
}
