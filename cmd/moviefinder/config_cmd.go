package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCmd returns the "config" subcommand group for configuration management.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

// newConfigValidateCmd returns the "config validate" subcommand that checks config validity.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Println(styleSuccess.Render("✓ Configuration is valid"))
			fmt.Printf("  %s %s\n", styleDim.Render("catalog:"), sanitizeURL(cfg.Catalog.BaseURL))
			fmt.Printf("  %s %s\n", styleDim.Render("store:  "), cfg.Store.Backend)
			if cfg.Catalog.APIKey == "" {
				fmt.Println(styleError.Render("  ! catalog API key is not set"))
			}
			return nil
		},
	}
}
