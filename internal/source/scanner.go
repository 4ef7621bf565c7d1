package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir finds all report spreadsheets (*.xlsx) directly in dir. The search
// is deliberately non-recursive: report exports land flat in a downloads or
// reports folder. Excel lock files ("~$...") are skipped.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		if strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, DiscoveredFile{
			Path: filepath.Join(dir, name),
			Name: name,
		})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no .xlsx files found in directory %q", dir)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// FromPaths wraps an explicit file list, verifying each file exists.
func FromPaths(paths []string) ([]DiscoveredFile, error) {
	files := make([]DiscoveredFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("report file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("report file %s is a directory", p)
		}
		files = append(files, DiscoveredFile{Path: p, Name: filepath.Base(p)})
	}
	return files, nil
}
