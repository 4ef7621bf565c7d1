// Package cmd implements the aggie CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
	"github.com/dave-doty/aggie-unterprise/internal/config"
	"github.com/dave-doty/aggie-unterprise/internal/pipeline"
	"github.com/dave-doty/aggie-unterprise/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDir            string
	flagFiles          []string
	flagOut            string
	flagNoDiffs        bool
	flagNoIndividual   bool
	flagAscending      bool
	flagShowCents      bool
	flagFormat         string
	flagSubstrings     []string
	flagSuffixes       []string
	flagSubstringsFile string
	flagSuffixesFile   string
	flagNoCache        bool
	flagQuiet          bool
)

var rootCmd = &cobra.Command{
	Use:   "aggie",
	Short: "Grant expense reports from AggieEnterprise spreadsheets",
	Long: "Extract expense summaries from AggieEnterprise .xlsx exports and render\n" +
		"per-project tables plus month-over-month comparisons.",
	RunE: runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "Directory to scan for .xlsx reports (default: config, then cwd)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagFiles, "files", "f", nil, "Explicit report files (skips directory scan)")
	rootCmd.PersistentFlags().StringVarP(&flagOut, "out", "o", "", "Write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagAscending, "ascending", "a", false, "Oldest report first")
	rootCmd.PersistentFlags().BoolVarP(&flagShowCents, "show-cents", "c", false, "Show cents in dollar amounts")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Output format: text or markdown")
	rootCmd.PersistentFlags().StringArrayVar(&flagSubstrings, "substring", nil, "Substring to strip from project names (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&flagSuffixes, "suffix", nil, "Suffix to truncate project names at (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagSubstringsFile, "substrings-file", "", "File of whitespace-separated substrings to strip")
	rootCmd.PersistentFlags().StringVar(&flagSuffixesFile, "suffixes-file", "", "File of whitespace-separated suffixes to truncate at")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.MarkFlagsMutuallyExclusive("dir", "files")

	rootCmd.Flags().BoolVar(&flagNoDiffs, "no-diffs", false, "Only individual report tables, no comparisons")
	rootCmd.Flags().BoolVar(&flagNoIndividual, "no-individual", false, "Only comparison tables, no individual reports")
	rootCmd.MarkFlagsMutuallyExclusive("no-diffs", "no-individual")
}

// settings is the merged view of config file and flags. Flags win when set.
type settings struct {
	Dir       string
	Ascending bool
	ShowCents bool
	Markdown  bool
	Cleaner   clean.Cleaner
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Dir:       cfg.General.ReportsDir,
		Ascending: cfg.General.Ascending,
		ShowCents: cfg.General.ShowCents,
		Markdown:  cfg.General.Format == "markdown",
	}

	if flagDir != "" {
		s.Dir = flagDir
	}
	if s.Dir == "" {
		s.Dir = "."
	}
	if cmd.Flags().Changed("ascending") {
		s.Ascending = flagAscending
	}
	if cmd.Flags().Changed("show-cents") {
		s.ShowCents = flagShowCents
	}
	if flagFormat != "" {
		switch flagFormat {
		case "text":
			s.Markdown = false
		case "markdown":
			s.Markdown = true
		default:
			return settings{}, fmt.Errorf("unknown format %q (want text or markdown)", flagFormat)
		}
	}

	s.Cleaner, err = buildCleaner(cfg)
	if err != nil {
		return settings{}, err
	}
	return s, nil
}

// buildCleaner merges name-cleaning rules from the config file, flag
// arguments, and rule files.
func buildCleaner(cfg config.Config) (clean.Cleaner, error) {
	cleaner := cfg.Cleaner()
	cleaner = cleaner.Merge(clean.Cleaner{
		Substrings: flagSubstrings,
		Suffixes:   flagSuffixes,
	})

	substrings, err := clean.ReadRuleFile(flagSubstringsFile)
	if err != nil {
		return clean.Cleaner{}, fmt.Errorf("reading substrings file: %w", err)
	}
	suffixes, err := clean.ReadRuleFile(flagSuffixesFile)
	if err != nil {
		return clean.Cleaner{}, fmt.Errorf("reading suffixes file: %w", err)
	}
	cleaner = cleaner.Merge(clean.Cleaner{Substrings: substrings, Suffixes: suffixes})
	return cleaner, nil
}

// loadData is the shared loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData(s settings) (*pipeline.LoadResult, error) {
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}

	opts := pipeline.Options{
		Dir:       s.Dir,
		Files:     flagFiles,
		Cleaner:   s.Cleaner,
		Ascending: s.Ascending,
		Progress:  progressFn,
	}

	// Explicit file lists bypass the cache: they may live anywhere and
	// tracking them would poison directory-scan results.
	if !flagNoCache && len(flagFiles) == 0 {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			cr, err := pipeline.LoadWithCache(opts, cache, progressFn)
			if err != nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "\n  Cache error, falling back to full parse\n")
				}
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %d reports from cache    \n", len(cr.Summaries))
					} else {
						fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed    \n", cr.CacheHits, cr.Reparsed)
					}
				}
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(opts)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d of %d reports    \n", result.ParsedFiles, result.TotalFiles)
	}
	return result, nil
}

// openOutput returns the writer selected by --out, plus a close func.
func openOutput() (*os.File, func(), error) {
	if flagOut == "" {
		return os.Stdout, func() {}, nil
	}
	if dir := filepath.Dir(flagOut); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func printWarnings(result *pipeline.LoadResult) {
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
	}
	for _, e := range result.FileErrors {
		fmt.Fprintf(os.Stderr, "  error: %v\n", e)
	}
}
