package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/dex/internal/adapter"
	"github.com/mmcdole/dex/internal/tui"
)

// app holds global flag values and the dependencies built from them
type app struct {
	configPath string
	verbose    bool
	fixture    bool

	// stdoutIsTerminal decides whether the bare command starts the TUI
	stdoutIsTerminal func() bool

	cfg       *adapter.Config
	logger    *slog.Logger
	container *adapter.Container
}

func newApp() *app {
	return &app{
		stdoutIsTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dex",
		Short: "Browse the Pokémon catalog",
		Long: `dex browses the PokeAPI catalog.

Run without a subcommand to open the interactive browser. When stdout is
not a terminal it prints the first page of the catalog instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		RunE: a.runDefault,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ~/.config/dex/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.fixture, "fixture", false, "Use built-in fixture data instead of the network (env: DEX_FIXTURE)")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newSpriteCmd(a))
	rootCmd.AddCommand(newPrefetchCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// initialize loads configuration and sets up logging
func (a *app) initialize() error {
	cfg, err := adapter.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.fixture {
		cfg.Fixture = true
	}
	if a.verbose {
		cfg.Logging.Level = "DEBUG"
	}
	a.cfg = cfg

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	a.logger = logger

	logger.Debug("starting dex", "version", Version, "fixture", cfg.Fixture, "base_url", cfg.API.BaseURL)
	return nil
}

// services returns the dependency container, building it on first use
func (a *app) services() *adapter.Container {
	if a.container == nil {
		a.container = adapter.NewContainer(a.cfg, a.logger)
	}
	return a.container
}

func (a *app) close() {
	if a.container != nil {
		a.container.Close()
	}
}

func (a *app) runDefault(cmd *cobra.Command, _ []string) error {
	if !a.stdoutIsTerminal() {
		return a.runList(cmd, listOptions{pages: 1})
	}
	return a.runTUI(cmd)
}

func (a *app) runTUI(cmd *cobra.Command) error {
	// Terminal log output would draw over the TUI
	if a.cfg.Logging.File == "" {
		a.logger = adapter.NullLogger()
	}
	c := a.services()

	model := tui.NewModel(cmd.Context(), c.Repository, c.Images, a.logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}
