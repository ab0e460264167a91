package export

import (
	"fmt"

	"github.com/AaaBinfinity/PortSentry/internal/notify"
	"github.com/AaaBinfinity/PortSentry/internal/state"
)

// Service is the injectable exporter handed to interactive views. It
// reports outcomes through the notification service.
type Service struct {
	Dir      string
	Notifier *notify.Notifier
}

// Export flattens data and writes it under the configured directory.
// Failures, including unsupported formats, surface as notifications.
func (s *Service) Export(data any, filename, format string) (string, error) {
	rows, err := Rows(data)
	if err != nil {
		s.Notifier.ShowError("export failed", err)
		return "", err
	}
	path, err := Export(rows, s.Dir, filename, format)
	if err != nil {
		s.Notifier.ShowError("export failed", err)
		return "", err
	}
	s.Notifier.ShowToast(fmt.Sprintf("Exported %s", path), state.SeveritySuccess)
	return path, nil
}
