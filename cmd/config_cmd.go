package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/milo/internal/config"
	"github.com/theirongolddev/milo/internal/store"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the resolved values",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := configPath()
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.General.DataDir)
	fmt.Printf("    Backend:        %s\n", cfg.General.Backend)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level: %s\n", cfg.Logging.Level)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Chart points: %d\n", cfg.History.ChartPoints)
	fmt.Println()

	kv, err := store.Open(cfg.General.Backend, cfg.General.DataDir)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	keys, err := kv.Keys()
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}
	fmt.Println("  [Records]")
	if len(keys) == 0 {
		fmt.Println("    none")
	} else {
		fmt.Printf("    %s\n", strings.Join(keys, ", "))
	}
	fmt.Println()

	fmt.Println("  Run `milo config init` to write these values to the config file.")
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := configPath()
	if config.Exists(path) && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.SaveTo(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", path)
	return nil
}
