// Package pipeline orchestrates report discovery, parsing, caching, name
// cleaning, and diffing.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
	"github.com/dave-doty/aggie-unterprise/internal/model"
	"github.com/dave-doty/aggie-unterprise/internal/source"
)

// Options controls a pipeline load.
type Options struct {
	// Dir is scanned for *.xlsx reports when Files is empty.
	Dir string
	// Files is an explicit report list; mutually exclusive with Dir.
	Files []string
	// Cleaner normalizes project names after parsing.
	Cleaner clean.Cleaner
	// Ascending sorts summaries oldest-first instead of newest-first.
	Ascending bool
	// Progress is called as files finish parsing; may be nil.
	Progress ProgressFunc
}

// ProgressFunc is called during loading to report progress.
type ProgressFunc func(current, total int)

// LoadResult holds the output of the full report loading pipeline.
type LoadResult struct {
	Summaries   []model.Summary
	TotalFiles  int
	ParsedFiles int
	FileErrors  []error  // per-file parse failures; loading continues past them
	Warnings    []string // non-fatal parse oddities
}

// Load discovers and parses all report files, cleans project names, and
// sorts the summaries by report date. Files are parsed through a bounded
// worker pool.
func Load(opts Options) (*LoadResult, error) {
	files, err := discover(opts)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{TotalFiles: len(files)}
	results := parseAll(files, opts.Progress)

	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors = append(result.FileErrors, pr.Err)
			continue
		}
		result.ParsedFiles++
		result.Warnings = append(result.Warnings, pr.Warnings...)
		result.Summaries = append(result.Summaries, pr.Summary)
	}

	finalize(result, opts)
	return result, nil
}

func discover(opts Options) ([]source.DiscoveredFile, error) {
	if len(opts.Files) > 0 {
		return source.FromPaths(opts.Files)
	}
	return source.ScanDir(opts.Dir)
}

// parseAll runs ParseFile over the files with a bounded worker pool,
// preserving input order in the result slice.
func parseAll(files []source.DiscoveredFile, progress ProgressFunc) []source.ParseResult {
	if len(files) == 0 {
		return nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progress != nil {
					progress(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()
	return results
}

// finalize applies name cleaning and date ordering to parsed summaries.
func finalize(result *LoadResult, opts Options) {
	for i := range result.Summaries {
		applyCleaner(&result.Summaries[i], opts.Cleaner, result)
	}

	sort.SliceStable(result.Summaries, func(i, j int) bool {
		if opts.Ascending {
			return result.Summaries[i].Date.Before(result.Summaries[j].Date)
		}
		return result.Summaries[j].Date.Before(result.Summaries[i].Date)
	})
}

// applyCleaner rewrites record names through the cleaner. If cleaning
// collapses two projects onto one name the summary's name-uniqueness
// invariant is broken, so the collision is reported and the later record
// keeps its raw name.
func applyCleaner(s *model.Summary, cleaner clean.Cleaner, result *LoadResult) {
	seen := make(map[string]struct{}, len(s.Records))
	for i := range s.Records {
		cleaned := cleaner.Clean(s.Records[i].Name)
		if cleaned == "" {
			cleaned = s.Records[i].Name
		}
		if _, dup := seen[cleaned]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"cleaning rules collapse %q onto existing project %q in %s; keeping raw name",
				s.Records[i].Name, cleaned, filepath.Base(s.FilePath)))
		} else {
			s.Records[i].Name = cleaned
		}
		seen[s.Records[i].Name] = struct{}{}
	}
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "aggie")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "aggie")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "reports.db")
}
