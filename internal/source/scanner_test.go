package source

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "2024-8-5.xlsx"))
	touch(t, filepath.Join(dir, "2024-7-11.xlsx"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "~$2024-8-5.xlsx")) // Excel lock file
	if err := os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0o750); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	// Sorted by name for deterministic order.
	if files[0].Name != "2024-7-11.xlsx" || files[1].Name != "2024-8-5.xlsx" {
		t.Errorf("files = %v, %v", files[0].Name, files[1].Name)
	}
}

func TestScanDir_EmptyIsError(t *testing.T) {
	if _, err := ScanDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory with no .xlsx files")
	}
}

func TestFromPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	touch(t, path)

	files, err := FromPaths([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "report.xlsx" {
		t.Fatalf("files = %+v", files)
	}

	if _, err := FromPaths([]string{filepath.Join(dir, "missing.xlsx")}); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := FromPaths([]string{dir}); err == nil {
		t.Fatal("expected error for directory path")
	}
}
