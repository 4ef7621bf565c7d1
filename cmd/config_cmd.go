package cmd

import (
	"fmt"

	"github.com/dave-doty/aggie-unterprise/internal/config"

	"github.com/spf13/cobra"
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
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.ReportsDir != "" {
		fmt.Printf("    Reports directory: %s\n", cfg.General.ReportsDir)
	} else {
		fmt.Println("    Reports directory: not set (uses cwd)")
	}
	fmt.Printf("    Show cents:        %v\n", cfg.General.ShowCents)
	fmt.Printf("    Ascending order:   %v\n", cfg.General.Ascending)
	fmt.Printf("    Format:            %s\n", cfg.General.Format)
	fmt.Println()

	fmt.Println("  [Clean]")
	fmt.Printf("    Renames:    %d\n", len(cfg.Clean.Renames))
	fmt.Printf("    Substrings: %d\n", len(cfg.Clean.Substrings))
	fmt.Printf("    Suffixes:   %d\n", len(cfg.Clean.Suffixes))
	for _, sub := range cfg.Clean.Substrings {
		fmt.Printf("      strip %q\n", sub)
	}
	for _, suf := range cfg.Clean.Suffixes {
		fmt.Printf("      truncate at %q\n", suf)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `aggie setup` to reconfigure.")
	return nil
}
