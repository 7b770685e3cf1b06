package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieFinder/internal/config"
	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/debounce"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

const logFileName = "moviefinder.log"

// newSearchCmd returns the "search" subcommand for the interactive search screen.
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Open the interactive search screen",
		Long: "Search the movie catalog as you type. Results refresh once typing pauses.\n" +
			"Use PgUp/PgDown to scroll, Esc or Ctrl+C to exit.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSearch()
		},
	}
}

// runSearch initializes services and starts the Bubble Tea search TUI.
func runSearch() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := os.MkdirAll(cfg.App.DataDir, 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.App.DataDir, logFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	logger := config.SetupLoggerTo(cfg.App.LogLevel, logFile)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := initServices(ctx, cfg, logger)
	defer func() { _ = svc.Close() }()

	var p *tea.Program
	debouncer := debounce.New(cfg.Search.Debounce, func(term string) {
		p.Send(settledMsg{term: term})
	})
	defer debouncer.Stop()

	p = tea.NewProgram(newSearchModel(ctx, svc.finder, debouncer), tea.WithAltScreen())

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run search: %w", err)
	}
	return nil
}

// settledMsg carries a search term that stopped changing for the debounce delay.
type settledMsg struct {
	term string
}

// fetchResultMsg carries a finished catalog fetch back to the TUI.
type fetchResultMsg struct {
	outcome finder.Outcome
}

// trendingMsg carries the trending list loaded at startup.
type trendingMsg struct {
	entries []core.TrendingEntry
}

// searchModel is the Bubble Tea model for the search screen.
type searchModel struct {
	ctx       context.Context
	finder    *finder.Service
	debouncer *debounce.Debouncer[string]
	state     finder.State
	initSeq   uint64 // sequence number of the startup discover fetch
	textinput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	width     int
	height    int
	ready     bool
}

// newSearchModel creates a searchModel with the startup fetch already begun.
func newSearchModel(ctx context.Context, f *finder.Service, d *debounce.Debouncer[string]) searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.Prompt = "🔍 "
	ti.Focus()
	ti.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo

	m := searchModel{
		ctx:       ctx,
		finder:    f,
		debouncer: d,
		textinput: ti,
		spinner:   s,
	}
	m.initSeq = m.state.BeginFetch()
	return m
}

// Init loads trending terms and runs the discover fetch for the empty term.
func (m searchModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.loadTrending(),
		m.fetch(m.initSeq, ""),
	)
}

// Update handles incoming messages and user input.
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		var tiCmd tea.Cmd
		m.textinput, tiCmd = m.textinput.Update(msg)
		cmds = append(cmds, tiCmd)
		if v := m.textinput.Value(); v != m.state.SearchTerm {
			m.state.SearchTerm = v
			m.debouncer.Start(v)
		}

	case settledMsg:
		if m.state.Settle(msg.term) {
			seq := m.state.BeginFetch()
			cmds = append(cmds, m.fetch(seq, msg.term), m.spinner.Tick)
		}

	case fetchResultMsg:
		m.state.ApplyFetch(msg.outcome)

	case trendingMsg:
		m.state.Trending = msg.entries

	case spinner.TickMsg:
		if m.state.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var tiCmd tea.Cmd
		m.textinput, tiCmd = m.textinput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	if m.ready {
		m.viewport.SetContent(renderState(m.state, m.spinner.View(), m.width))
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleResize adjusts viewport and text input dimensions on terminal resize.
func (m *searchModel) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	headerHeight := 2
	inputHeight := 3
	vpHeight := max(m.height-headerHeight-inputHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textinput.Width = m.width - 8
}

// scrollKeys limits viewport bindings to keys that cannot be typed into the
// search box.
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("ctrl+up")),
		Down:     key.NewBinding(key.WithKeys("ctrl+down")),
	}
}

// View renders the header, the search box and the scrollable results.
func (m searchModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	header := styleTitle.Render("Find ") + styleAccent.Render("Movies") +
		styleTitle.Render(" You'll Enjoy Without the Hassle")
	input := styleCard.Width(max(m.width-2, 10)).Render(m.textinput.View())
	return header + "\n\n" + input + "\n" + m.viewport.View()
}

func (m searchModel) fetch(seq uint64, term string) tea.Cmd {
	return func() tea.Msg {
		out := m.finder.Search(m.ctx, term)
		out.Seq = seq
		return fetchResultMsg{outcome: out}
	}
}

func (m searchModel) loadTrending() tea.Cmd {
	return func() tea.Msg {
		return trendingMsg{entries: m.finder.Trending(m.ctx)}
	}
}
