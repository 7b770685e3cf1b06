package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

const defaultTermWidth = 80

func newMoviesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movies [query]",
		Short: "Run a single movie search",
		Long: "Fetch movies for a query and print the result grid. Without a query\n" +
			"the most popular movies are shown.",
		Example: `  moviefinder movies batman
  moviefinder movies "the dark knight"
  moviefinder movies`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runMovies(strings.Join(args, " "))
		},
	}
}

func runMovies(query string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := initServices(ctx, cfg, logger)
	defer func() { _ = svc.Close() }()

	p := tea.NewProgram(newMoviesModel(ctx, svc.finder, query, terminalWidth()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run movies: %w", err)
	}
	return nil
}

// terminalWidth returns the width of stdout, or defaultTermWidth when stdout
// is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

type moviesModel struct {
	ctx     context.Context
	finder  *finder.Service
	query   string
	width   int
	seq     uint64
	state   finder.State
	spinner spinner.Model
	done    bool
}

func newMoviesModel(ctx context.Context, f *finder.Service, query string, width int) moviesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo
	m := moviesModel{
		ctx:     ctx,
		finder:  f,
		query:   query,
		width:   width,
		spinner: s,
	}
	m.seq = m.state.BeginFetch()
	return m
}

func (m moviesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m moviesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case fetchResultMsg:
		m.state.ApplyFetch(msg.outcome)
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m moviesModel) View() string {
	if m.done {
		return renderState(m.state, "", m.width) + "\n"
	}
	return m.spinner.View() + styleDim.Render(" Loading...") + "\n"
}

func (m moviesModel) fetch() tea.Cmd {
	return func() tea.Msg {
		out := m.finder.Search(m.ctx, m.query)
		out.Seq = m.seq
		return fetchResultMsg{outcome: out}
	}
}
