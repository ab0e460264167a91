package export

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/AaaBinfinity/PortSentry/internal/notify"
	"github.com/AaaBinfinity/PortSentry/internal/state"
)

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore()
	notifier := notify.New(store, notify.Options{TTL: time.Minute, Logger: log.New(io.Discard, "", 0)})
	return &Service{Dir: t.TempDir(), Notifier: notifier}, store
}

func TestServiceExportSuccessToast(t *testing.T) {
	service, store := newService(t)

	path, err := service.Export([]state.PortRecord{{Port: 22, Protocol: "TCP"}}, "ports", FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Fatalf("unexpected path %q", path)
	}

	toasts := store.Snapshot().Toasts
	if len(toasts) != 1 || toasts[0].Severity != state.SeveritySuccess {
		t.Fatalf("expected a success toast, got %+v", toasts)
	}
	if !strings.Contains(toasts[0].Message, "Exported") {
		t.Fatalf("unexpected toast message %q", toasts[0].Message)
	}
}

func TestServiceExportFailureToast(t *testing.T) {
	service, store := newService(t)

	if _, err := service.Export([]state.PortRecord{{Port: 22}}, "ports", "xml"); err == nil {
		t.Fatalf("expected an error for xml")
	}

	toasts := store.Snapshot().Toasts
	if len(toasts) != 1 || toasts[0].Severity != state.SeverityDanger {
		t.Fatalf("expected a danger toast, got %+v", toasts)
	}
}
