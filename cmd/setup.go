package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dave-doty/aggie-unterprise/internal/config"
	"github.com/dave-doty/aggie-unterprise/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	dir := cfg.General.ReportsDir
	if flagDir != "" {
		dir = flagDir
	}
	if dir == "" {
		dir = "."
	}

	fmt.Println()
	fmt.Println("  Welcome to aggie!")
	if files, err := source.ScanDir(dir); err == nil {
		fmt.Printf("  Found %d reports in %s\n", len(files), dir)
	}
	fmt.Println()

	reportsDir := cfg.General.ReportsDir
	format := cfg.General.Format
	if format == "" {
		format = "text"
	}
	theme := cfg.Appearance.Theme
	if theme == "" {
		theme = "flexoki-dark"
	}
	showCents := cfg.General.ShowCents
	ascending := cfg.General.Ascending

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reports directory").
				Description("Where AggieEnterprise .xlsx exports are saved. Blank uses the current directory.").
				Placeholder("~/grant-reports").
				Value(&reportsDir),

			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("Text tables", "text"),
					huh.NewOption("Markdown", "markdown"),
				).
				Value(&format),

			huh.NewConfirm().
				Title("Show cents in dollar amounts?").
				Value(&showCents),

			huh.NewConfirm().
				Title("Oldest report first?").
				Value(&ascending),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Tokyo Night", "tokyo-night"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if reportsDir != "" {
		if _, err := os.Stat(reportsDir); err != nil {
			fmt.Printf("  Note: %s does not exist yet.\n", reportsDir)
		}
	}

	cfg.General.ReportsDir = reportsDir
	cfg.General.Format = format
	cfg.General.ShowCents = showCents
	cfg.General.Ascending = ascending
	cfg.Appearance.Theme = theme

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `aggie setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
