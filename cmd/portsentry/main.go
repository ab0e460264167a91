package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AaaBinfinity/PortSentry/internal/app"
)

func main() {
	var (
		configPath string
		themeName  string
		serverURL  string
	)

	flag.StringVar(&configPath, "config", "", "Path to the config file (defaults to XDG config dir)")
	flag.StringVar(&themeName, "theme", "", "Override theme (light, dark, auto)")
	flag.StringVar(&serverURL, "server", "", "Backend base URL (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: configPath,
		Theme:      themeName,
		ServerURL:  serverURL,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "portsentry: %v\n", err)
		os.Exit(1)
	}
}
