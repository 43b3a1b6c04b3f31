package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/pagedeck/internal/app"
	"github.com/zjrosen/pagedeck/internal/config"
	"github.com/zjrosen/pagedeck/internal/deck"
	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/tracing"
	"github.com/zjrosen/pagedeck/internal/ui/markdown"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can leak into the input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pagedeck",
	Short: "A terminal simulator for a page-navigating display",
	Long: `pagedeck registers display pages under friendly names, navigates between
them with next/previous buttons, a select entity and scripted actions, and plays
the page transitions on a simulated display.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .pagedeck/config.yaml, then ~/.config/pagedeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to PAGEDECK_LOG (default: debug.log)")
	rootCmd.Flags().Bool("show-log", false, "open the diagnostics panel at start")
}

// initLogging attaches the debug log file when --debug or PAGEDECK_DEBUG is set.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("PAGEDECK_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("PAGEDECK_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if level := os.Getenv("PAGEDECK_LOG_LEVEL"); level != "" {
		log.SetMinLevel(log.ParseLevel(level))
	}
	log.Info(log.CatConfig, "Logging initialized", "path", logPath)
	return cleanup, nil
}

// buildDeck loads config, starts tracing and wires the deck. The returned
// shutdown flushes traces.
func buildDeck(opts ...deck.Option) (*deck.Deck, config.Config, string, func(), error) {
	cfg, path, err := loadConfig(cfgFile)
	if err != nil {
		return nil, cfg, path, nil, err
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, cfg, path, nil, fmt.Errorf("starting tracing: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}

	opts = append([]deck.Option{deck.WithTracer(provider.Tracer())}, opts...)
	d, err := deck.Build(cfg, path, opts...)
	if err != nil {
		shutdown()
		return nil, cfg, path, nil, err
	}
	return d, cfg, path, shutdown, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging("pagedeck")
	if err != nil {
		return err
	}
	defer cleanup()

	d, cfg, path, shutdown, err := buildDeck()
	if err != nil {
		return err
	}
	defer shutdown()
	defer d.Close()

	if showLog, _ := cmd.Flags().GetBool("show-log"); showLog {
		cfg.UI.ShowLog = true
	}

	var content *markdown.Renderer
	content, err = markdown.New(cfg.Display.Width, cfg.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatRender, "Markdown renderer unavailable; showing raw content", err)
		content = nil
	}

	d.Manager.DumpConfig()
	d.Setup(context.Background())

	svc := app.Services{
		Manager:    d.Manager,
		Selector:   d.Selector,
		Screen:     d.Screen,
		NextButton: d.NextButton,
		PrevButton: d.PrevButton,
		Runner:     d.Runner,
		Loader:     d.Loader,
		Config:     cfg,
		ConfigPath: path,
	}
	if content != nil {
		svc.Content = content
	}
	model := app.New(svc)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
