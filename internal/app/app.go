package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/AaaBinfinity/PortSentry/internal/api"
	"github.com/AaaBinfinity/PortSentry/internal/config"
	"github.com/AaaBinfinity/PortSentry/internal/export"
	"github.com/AaaBinfinity/PortSentry/internal/keymap"
	"github.com/AaaBinfinity/PortSentry/internal/notify"
	"github.com/AaaBinfinity/PortSentry/internal/poller"
	"github.com/AaaBinfinity/PortSentry/internal/state"
	"github.com/AaaBinfinity/PortSentry/internal/theme"
	root "github.com/AaaBinfinity/PortSentry/internal/ui/root"
)

// Options control how the application is executed.
type Options struct {
	ConfigPath string
	Theme      string
	ServerURL  string
}

// Run loads configuration, prepares state, and starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	palette := theme.New(theme.Options{Override: opts.Theme, Preferred: cfg.Theme})
	store := state.NewStore()
	notifier := notify.New(store, notify.Options{})

	client := api.New(api.Options{
		BaseURL:          cfg.ServerURL,
		PortStatusPath:   cfg.Endpoints.PortStatus,
		AlertsPath:       cfg.Endpoints.Alerts,
		SystemInfoPath:   cfg.Endpoints.SystemInfo,
		ResolveAlertPath: cfg.Endpoints.ResolveAlert,
	})

	runnerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	poll := poller.New(runnerCtx, client, store, notifier, poller.Options{
		Interval: cfg.Interval(),
	})
	exporter := &export.Service{Dir: cfg.ExportDir, Notifier: notifier}

	km := keymap.DefaultGlobal()
	rootModel := root.New(store, root.Options{
		Theme:     palette,
		KeyMap:    &km,
		Scheduler: poll,
		Resolver:  poll,
		Exporter:  exporter,
	})

	prog := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithReportFocus())

	group, groupCtx := errgroup.WithContext(runnerCtx)
	group.Go(func() error {
		<-groupCtx.Done()
		prog.Quit()
		return nil
	})
	group.Go(func() error {
		defer cancel()
		_, err := prog.Run()
		return err
	})

	if err := group.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
