package pipeline

import (
	"os"

	"github.com/dave-doty/aggie-unterprise/internal/source"
	"github.com/dave-doty/aggie-unterprise/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache discovers report files, diffs them against the cache by
// mtime and size, parses only changed files, and returns the combined
// result. Cached summaries carry raw names, so cleaning is applied here the
// same way Load applies it to fresh parses.
func LoadWithCache(opts Options, cache *store.Cache, progress ProgressFunc) (*CachedLoadResult, error) {
	files, err := discover(opts)
	if err != nil {
		return nil, err
	}

	result := &CachedLoadResult{LoadResult: LoadResult{TotalFiles: len(files)}}

	tracked, err := cache.TrackedFiles()
	if err != nil {
		return nil, err
	}

	var toReparse []source.DiscoveredFile
	unchanged := make(map[string]struct{})
	onDisk := make(map[string]struct{}, len(files))

	for _, f := range files {
		onDisk[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged[f.Path] = struct{}{}
		} else {
			toReparse = append(toReparse, f)
		}
	}

	// Drop cache entries for files that no longer exist on disk.
	for path := range tracked {
		if _, ok := onDisk[path]; !ok {
			_ = cache.DeleteReport(path)
		}
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadSummaries()
		if err != nil {
			return nil, err
		}
		for _, s := range cached {
			if _, ok := unchanged[s.FilePath]; ok {
				result.Summaries = append(result.Summaries, s)
				result.ParsedFiles++
			}
		}
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, func(current, total int) {
			if progress != nil {
				progress(current+result.CacheHits, result.TotalFiles)
			}
		})

		for i, pr := range results {
			if pr.Err != nil {
				result.FileErrors = append(result.FileErrors, pr.Err)
				continue
			}
			result.ParsedFiles++
			result.Warnings = append(result.Warnings, pr.Warnings...)
			result.Summaries = append(result.Summaries, pr.Summary)

			if info, err := os.Stat(toReparse[i].Path); err == nil {
				_ = cache.SaveSummary(pr.Summary, info.ModTime().UnixNano(), info.Size())
			}
		}
	}

	finalize(&result.LoadResult, opts)
	return result, nil
}
