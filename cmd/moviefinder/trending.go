package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

func newTrendingCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the most searched terms",
		Long:  "Display the top search terms recorded in the trending store.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTrending(limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", trending.DefaultLimit, "number of entries to show")
	return cmd
}

func runTrending(limit int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := initServices(ctx, cfg, logger)
	defer func() { _ = svc.Close() }()

	entries := svc.finder.TrendingN(ctx, limit)
	if len(entries) == 0 {
		fmt.Println(styleDim.Render("No trending searches yet."))
		return nil
	}

	fmt.Println(styleHeader.Render("Trending Movies"))
	for i, e := range entries {
		printTrendingEntry(i+1, e)
	}
	return nil
}

func printTrendingEntry(rank int, e core.TrendingEntry) {
	fmt.Printf("%s %s  %s\n",
		styleRank.Render(fmt.Sprintf("%2d.", rank)),
		styleTitle.Render(e.Term),
		styleDim.Render(formatSearches(e.Count)),
	)
	fmt.Printf("    %s\n", styleDim.Render(e.PosterURL))
}

func formatSearches(n int) string {
	if n == 1 {
		return "1 search"
	}
	return fmt.Sprintf("%d searches", n)
}
