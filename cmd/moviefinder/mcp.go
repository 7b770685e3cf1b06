package main

import (
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	mcpserver "github.com/vadimtrunov/MovieFinder/internal/mcp"
)

// newMCPServeCmd returns the "mcp-serve" subcommand.
// It starts an MCP server over stdin/stdout so assistants can search movies
// and read trending terms.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Start MCP server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// stdout carries the protocol; logs stay on stderr.
			logger := config.SetupLogger(cfg.App.LogLevel)

			svc := initServices(cmd.Context(), cfg, logger)
			defer func() { _ = svc.Close() }()

			return mcpserver.NewServer(svc.finder, version, logger).ServeStdio(cmd.Context())
		},
	}
}
