package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dave-doty/aggie-unterprise/internal/clean"
)

// writeReport builds a minimal report workbook with one project row and a
// matching Travel detail row.
func writeReport(t *testing.T, dir, name, date, project string, expenses float64) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Summary")
	if _, err := f.NewSheet("Detail"); err != nil {
		t.Fatal(err)
	}

	set := func(sheet, cell, v string) {
		t.Helper()
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}

	set("Summary", "A3", date)
	set("Summary", "A5", "Award Number")
	set("Summary", "B5", "Project Name")
	set("Summary", "C5", "Task/Subtask Name")
	set("Summary", "D5", "Budget")
	set("Summary", "E5", "Expenses")
	set("Summary", "F5", "Budget Balance (Budget – (Comm & Exp))")
	set("Summary", "A6", "K000001")
	set("Summary", "B6", project)
	set("Summary", "D6", "$10,000.00")
	if err := f.SetCellValue("Summary", "E6", expenses); err != nil {
		t.Fatal(err)
	}
	set("Summary", "F6", "$1.00")

	set("Detail", "A2", "Award Number")
	set("Detail", "B2", "Project Name")
	set("Detail", "C2", "Expenditure Category Name")
	set("Detail", "D2", "Expenses")
	set("Detail", "A3", "K000001")
	set("Detail", "B3", project)
	set("Detail", "C3", "Travel")
	if err := f.SetCellValue("Detail", "D3", expenses); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	return path
}

func TestLoad_SortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "july.xlsx", "7/11/2024", "NSF CAREER K302777", 100)
	writeReport(t, dir, "august.xlsx", "8/5/2024", "NSF CAREER K302777", 250)

	result, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.FileErrors) != 0 {
		t.Fatalf("FileErrors = %v", result.FileErrors)
	}
	if len(result.Summaries) != 2 {
		t.Fatalf("len(Summaries) = %d, want 2", len(result.Summaries))
	}
	if result.Summaries[0].DateString() != "2024-08-05" {
		t.Errorf("Summaries[0] date = %s, want 2024-08-05 (newest first)", result.Summaries[0].DateString())
	}

	asc, err := Load(Options{Dir: dir, Ascending: true})
	if err != nil {
		t.Fatal(err)
	}
	if asc.Summaries[0].DateString() != "2024-07-11" {
		t.Errorf("ascending Summaries[0] date = %s, want 2024-07-11", asc.Summaries[0].DateString())
	}
}

func TestLoad_AppliesCleaner(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "r.xlsx", "8/5/2024", "Doty NSF CAREER K302777", 100)

	result, err := Load(Options{
		Dir: dir,
		Cleaner: clean.Cleaner{
			Suffixes:   []string{"K302"},
			Substrings: []string{"Doty"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Summaries[0].Records[0].Name; got != "NSF CAREER" {
		t.Errorf("cleaned name = %q, want %q", got, "NSF CAREER")
	}
}

func TestLoad_NameCollisionKeepsRawName(t *testing.T) {
	dir := t.TempDir()

	// Two projects that a too-aggressive suffix rule collapses together.
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Summary")
	if _, err := f.NewSheet("Detail"); err != nil {
		t.Fatal(err)
	}
	cells := map[string]string{
		"A3": "8/5/2024",
		"A5": "Award Number", "B5": "Project Name", "D5": "Budget",
		"E5": "Expenses", "F5": "Budget Balance (Budget – (Comm & Exp))",
		"A6": "K1", "B6": "NSF CAREER K302777", "D6": "$1.00", "E6": "$1.00", "F6": "$0.00",
		"A7": "K2", "B7": "NSF Small K302999", "D7": "$1.00", "E7": "$1.00", "F7": "$0.00",
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Summary", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	detail := map[string]string{
		"A2": "Award Number", "B2": "Project Name",
		"C2": "Expenditure Category Name", "D2": "Expenses",
		"A3": "K1", "B3": "NSF CAREER K302777", "C3": "Travel", "D3": "$1.00",
		"A4": "K2", "B4": "NSF Small K302999", "C4": "Travel", "D4": "$1.00",
	}
	for cell, v := range detail {
		if err := f.SetCellValue("Detail", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "r.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	// "NSF" truncates both names to the empty string -> both fall back to
	// raw, no collision. Use a rule that collapses both onto "NSF".
	result, err := Load(Options{
		Files:   []string{path},
		Cleaner: clean.Cleaner{Suffixes: []string{"CAREER", "Small"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	records := result.Summaries[0].Records
	if records[0].Name != "NSF" {
		t.Errorf("records[0].Name = %q, want NSF", records[0].Name)
	}
	if records[1].Name != "NSF Small K302999" {
		t.Errorf("records[1].Name = %q, want raw name kept on collision", records[1].Name)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "collapse") {
			found = true
		}
	}
	if !found {
		t.Errorf("no collision warning in %v", result.Warnings)
	}
}

func TestLoad_CollectsFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "good.xlsx", "8/5/2024", "G", 1)
	if err := os.WriteFile(filepath.Join(dir, "junk.xlsx"), []byte("not a workbook"), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalFiles != 2 || result.ParsedFiles != 1 {
		t.Errorf("TotalFiles=%d ParsedFiles=%d, want 2/1", result.TotalFiles, result.ParsedFiles)
	}
	if len(result.FileErrors) != 1 {
		t.Fatalf("FileErrors = %v, want 1", result.FileErrors)
	}
	if len(result.Summaries) != 1 {
		t.Errorf("len(Summaries) = %d, want 1", len(result.Summaries))
	}
}

func TestLoad_ProgressReported(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "a.xlsx", "7/11/2024", "G", 1)
	writeReport(t, dir, "b.xlsx", "8/5/2024", "G", 2)

	var final int
	_, err := Load(Options{Dir: dir, Progress: func(current, total int) {
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		if current > final {
			final = current
		}
	}})
	if err != nil {
		t.Fatal(err)
	}
	if final != 2 {
		t.Errorf("final progress = %d, want 2", final)
	}
}
