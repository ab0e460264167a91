package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/AaaBinfinity/PortSentry/internal/demo"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("PORTSENTRY_ADDR", "127.0.0.1:5000"), "listen address")
	dbPath := flag.String("db", envOr("PORTSENTRY_DB", "portsentry-demo.db"), "sqlite alert database path")
	seed := flag.Int64("seed", 0, "generator seed (0 = time-based)")
	flag.Parse()

	logger := log.New(os.Stderr, "portsentryd ", log.LstdFlags)

	alerts, err := demo.OpenAlertStore(*dbPath)
	if err != nil {
		logger.Fatalf("open alert store: %v", err)
	}
	defer alerts.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := demo.NewServer(demo.NewGenerator(*seed), alerts, logger)
	if err := server.Run(ctx, *addr); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}

func envOr(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
