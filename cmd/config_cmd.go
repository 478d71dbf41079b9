// Package cmd implements the moneylens CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmellea/moneylens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:       %s\n", cfg.DatabasePath())
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	if cfg.General.DefaultMonths > 0 {
		fmt.Printf("    Default window: last %d months\n", cfg.General.DefaultMonths)
	} else {
		fmt.Println("    Default window: all history")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Import]")
	if cfg.Import.DefaultFormat != "" {
		fmt.Printf("    Default format: %s\n", cfg.Import.DefaultFormat)
	} else {
		fmt.Println("    Default format: auto-detect")
	}
	fmt.Println()

	fmt.Println("  Run `moneylens setup` to reconfigure.")
	return nil
}
