package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gymclock/internal"
	"gymclock/internal/config"
	"gymclock/internal/metrics"
	"gymclock/internal/store"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "gymclock",
		Short:         "Gym session timer and attendance calendar",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "gymclock.yaml", "Path to configuration file")

	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newHistoryCmd(&configPath))
	root.AddCommand(newCalendarCmd(&configPath))
	root.AddCommand(newCycleCmd())
	return root
}

type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	repo   *store.Repository
	logs   io.Closer
}

func (a *app) Close() error {
	return errors.Join(a.repo.Close(), a.logs.Close())
}

func loadApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, logs, err := setupLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("version", version).
		Str("config", configPath).
		Msg("Starting gymclock")

	repo, err := store.Open(ctx, cfg.Storage.Path, logger)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &app{cfg: cfg, logger: logger, repo: repo, logs: logs}, nil
}

func runTUI(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := loadApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.logs.Close()

	if a.cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(a.cfg.Metrics.Addr, a.logger)
		srv.Start()
		defer func() {
			if err := srv.Stop(); err != nil {
				a.logger.Error().Err(err).Msg("Failed to stop metrics server")
			}
		}()
	}

	interval, err := a.cfg.Timer.Interval()
	if err != nil {
		_ = a.repo.Close()
		return err
	}

	m, err := internal.NewModel(ctx, internal.Options{
		Repo:         a.repo,
		Goal:         a.cfg.Goal.Sessions,
		TickInterval: interval,
		Logger:       a.logger,
	})
	if err != nil {
		_ = a.repo.Close()
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()
	if runErr != nil {
		runErr = fmt.Errorf("error running program: %w", runErr)
	}
	return errors.Join(runErr, m.Close())
}

// setupLogger writes to the configured file so log lines never land on the TUI.
func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := cfg.ParsedLevel()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	zerolog.SetGlobalLevel(level)

	if cfg.File == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true}).With().Timestamp().Logger(), f, nil
	}

	// Default to JSON
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}
