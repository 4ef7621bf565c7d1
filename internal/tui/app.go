// Package tui provides the interactive Bubble Tea dashboard for aggie.
package tui

import (
	"time"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
	"github.com/dave-doty/aggie-unterprise/internal/config"
	"github.com/dave-doty/aggie-unterprise/internal/model"
	"github.com/dave-doty/aggie-unterprise/internal/pipeline"
	"github.com/dave-doty/aggie-unterprise/internal/store"
	"github.com/dave-doty/aggie-unterprise/internal/tui/components"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the report pipeline finishes.
type DataLoadedMsg struct {
	Summaries []model.Summary
	Warnings  []string
	LoadTime  time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background reload completes.
type RefreshDataMsg struct {
	Summaries []model.Summary
	Warnings  []string
	LoadTime  time.Duration
}

type tickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	// Data
	summaries []model.Summary
	pairs     []pipeline.DiffPair
	warnings  []string
	loaded    bool
	loadTime  time.Duration

	lastRefresh time.Time
	refreshing  bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab cursors
	reportCursor int
	changeCursor int
	themeCursor  int

	showCents bool

	// Loading state, fed by the loader goroutine
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine

	// Pipeline inputs
	dir     string
	cleaner clean.Cleaner
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dir string, cleaner clean.Cleaner, showCents bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	themeCursor := 0
	for i, t := range theme.All {
		if t.Name == theme.Active.Name {
			themeCursor = i
		}
	}

	return App{
		dir:         dir,
		cleaner:     cleaner,
		showCents:   showCents,
		themeCursor: themeCursor,
		spinner:     sp,
		loadSub:     make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.dir, a.cleaner, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		return a, tickCmd()

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		a.summaries = msg.Summaries
		a.warnings = msg.Warnings
		a.pairs = pipeline.Pairs(msg.Summaries)
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.clampCursors()
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		if msg.Summaries != nil {
			a.summaries = msg.Summaries
			a.warnings = msg.Warnings
			a.pairs = pipeline.Pairs(msg.Summaries)
			a.lastRefresh = time.Now()
			a.clampCursors()
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "?":
		a.showHelp = true
		return a, nil

	case "tab", "l", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case "shift+tab", "h", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case "j", "down":
		a.moveCursor(1)
		return a, nil

	case "k", "up":
		a.moveCursor(-1)
		return a, nil

	case "enter":
		if a.activeTab == 3 {
			return a.applyTheme()
		}
		return a, nil

	case " ":
		if a.activeTab == 3 {
			a.showCents = !a.showCents
			cfg, err := config.Load()
			if err != nil {
				cfg = config.DefaultConfig()
			}
			cfg.General.ShowCents = a.showCents
			_ = config.Save(cfg)
		}
		return a, nil

	case "R":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.dir, a.cleaner)
		}
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case 1:
		a.reportCursor = clamp(a.reportCursor+delta, 0, len(a.summaries)-1)
	case 2:
		a.changeCursor = clamp(a.changeCursor+delta, 0, len(a.pairs)-1)
	case 3:
		a.themeCursor = clamp(a.themeCursor+delta, 0, len(theme.All)-1)
	}
}

func (a App) applyTheme() (tea.Model, tea.Cmd) {
	selected := theme.All[a.themeCursor]
	theme.SetActive(selected.Name)

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.Appearance.Theme = selected.Name
	_ = config.Save(cfg)
	return a, nil
}

func (a *App) clampCursors() {
	a.reportCursor = clamp(a.reportCursor, 0, len(a.summaries)-1)
	a.changeCursor = clamp(a.changeCursor, 0, len(a.pairs)-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd starts the report pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(dir string, cleaner clean.Cleaner, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Progress callback: non-blocking send so workers aren't stalled.
			// If the channel is full, we skip this update and the next one
			// catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			opts := pipeline.Options{Dir: dir, Cleaner: cleaner, Progress: progressFn}

			// Try cached load
			cache, err := store.Open(pipeline.CachePath())
			if err == nil {
				cr, loadErr := pipeline.LoadWithCache(opts, cache, progressFn)
				_ = cache.Close()
				if loadErr == nil {
					sub <- DataLoadedMsg{
						Summaries: cr.Summaries,
						Warnings:  cr.Warnings,
						LoadTime:  time.Since(start),
					}
					return
				}
			}

			// Fallback: uncached load
			result, err := pipeline.Load(opts)
			if err != nil {
				sub <- DataLoadedMsg{LoadTime: time.Since(start)}
				return
			}
			sub <- DataLoadedMsg{
				Summaries: result.Summaries,
				Warnings:  result.Warnings,
				LoadTime:  time.Since(start),
			}
		}()

		return <-sub
	}
}

func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads reports in the background (no progress UI).
func refreshDataCmd(dir string, cleaner clean.Cleaner) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		opts := pipeline.Options{Dir: dir, Cleaner: cleaner}

		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(opts, cache, nil)
			_ = cache.Close()
			if loadErr == nil {
				return RefreshDataMsg{
					Summaries: cr.Summaries,
					Warnings:  cr.Warnings,
					LoadTime:  time.Since(start),
				}
			}
		}

		result, err := pipeline.Load(opts)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start)}
		}
		return RefreshDataMsg{
			Summaries: result.Summaries,
			Warnings:  result.Warnings,
			LoadTime:  time.Since(start),
		}
	}
}
