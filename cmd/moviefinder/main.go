package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieFinder/internal/config"
)

const version = "0.1.0"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running without a subcommand opens the
// search screen.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moviefinder",
		Short: "Find movies you will enjoy without the hassle",
		Long: "MovieFinder searches the TMDb movie catalog as you type and keeps\n" +
			"track of the most popular search terms.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSearch()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newSearchCmd(),
		newMoviesCmd(),
		newTrendingCmd(),
		newServeCmd(),
		newMCPServeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("MovieFinder v%s\n", version)
		},
	}
}
