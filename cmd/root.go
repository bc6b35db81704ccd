// Package cmd implements the milo CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/cli"
	"github.com/theirongolddev/milo/internal/config"
	"github.com/theirongolddev/milo/internal/settings"
	"github.com/theirongolddev/milo/internal/store"
)

var (
	flagConfig  string
	flagDataDir string
	flagBackend string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "milo",
	Short:        "Personal vehicle mileage allowance tracker",
	Long:         "Record odometer readings and see how your driving tracks against a yearly kilometer allowance.",
	RunE:         runDashboard,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the record store")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Record store backend: sqlite or disk")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

// app bundles what every command needs once configuration is resolved.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	settings *settings.Service
	now      func() time.Time
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// loadConfig resolves the config file, environment, and flags, in that
// order of increasing precedence.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(level slog.Level) *slog.Logger {
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openApp loads configuration, opens the record store, and reads the
// current settings. Callers must Close the returned app.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	kv, err := store.Open(cfg.General.Backend, cfg.General.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}
	logger.Debug("opened record store", "backend", cfg.General.Backend, "dir", cfg.General.DataDir)

	st := store.New(kv, logger)
	svc := settings.New(st, time.Now)
	svc.OnChange(cli.Apply)
	cli.Apply(svc.Load())

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		settings: svc,
		now:      time.Now,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp runs fn against an opened app and closes it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

// parseDate reads a calendar date in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(cli.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
