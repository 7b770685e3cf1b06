package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	"github.com/vadimtrunov/MovieFinder/internal/server"
)

// newServeCmd returns the "serve" subcommand that runs the HTTP API.
func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: "Start a JSON HTTP API exposing movie search and trending terms:\n" +
			"  GET /api/v1/health\n" +
			"  GET /api/v1/movies?query=...\n" +
			"  GET /api/v1/trending?limit=N",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger := config.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := initServices(ctx, cfg, logger)
	defer func() { _ = svc.Close() }()

	return server.New(svc.finder, version, logger).Listen(ctx, addr)
}
