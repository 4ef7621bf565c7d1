package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dave-doty/aggie-unterprise/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSaveLoadRoundtrip(t *testing.T) {
	c := openTestCache(t)

	s := model.Summary{
		Date:     time.Date(2024, 8, 5, 7, 12, 1, 0, time.UTC),
		FilePath: "/reports/2024-8-5.xlsx",
		Records: []model.ProjectRecord{
			{Name: "NSF CAREER K302777", Expenses: 1500, Salary: 1000, Fringe: 200,
				Indirect: 300, Balance: 8500, Budget: 10000},
			{Name: "NSF Small K302999", Expenses: -250, Travel: -250, Balance: 5250, Budget: 5000},
		},
	}

	if err := c.SaveSummary(s, 12345, 678); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadSummaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len(loaded) = %d, want 1", len(loaded))
	}

	got := loaded[0]
	if got.FilePath != s.FilePath {
		t.Errorf("FilePath = %q", got.FilePath)
	}
	if !got.Date.Equal(s.Date) {
		t.Errorf("Date = %v, want %v", got.Date, s.Date)
	}
	if len(got.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(got.Records))
	}
	// Record order is preserved via the position column.
	if got.Records[0].Name != "NSF CAREER K302777" || got.Records[1].Name != "NSF Small K302999" {
		t.Errorf("record order: %q, %q", got.Records[0].Name, got.Records[1].Name)
	}
	if got.Records[0].Budget != 10000 || got.Records[1].Travel != -250 {
		t.Errorf("record values: %+v", got.Records)
	}
}

func TestSaveLoadKeepsCalendarDay(t *testing.T) {
	c := openTestCache(t)

	// 1am local time in UTC+9 is the previous day in UTC; the stored
	// date must come back on the same calendar day it went in.
	jst := time.FixedZone("UTC+9", 9*60*60)
	s := model.Summary{
		Date:     time.Date(2024, 8, 5, 1, 0, 0, 0, jst),
		FilePath: "/reports/2024-8-5.xlsx",
	}
	if err := c.SaveSummary(s, 1, 1); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadSummaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len(loaded) = %d, want 1", len(loaded))
	}
	if got, want := loaded[0].DateString(), s.DateString(); got != want {
		t.Errorf("DateString after reload = %q, want %q", got, want)
	}
}

func TestTrackedFiles(t *testing.T) {
	c := openTestCache(t)

	s := model.Summary{FilePath: "/reports/a.xlsx"}
	if err := c.SaveSummary(s, 111, 222); err != nil {
		t.Fatal(err)
	}

	tracked, err := c.TrackedFiles()
	if err != nil {
		t.Fatal(err)
	}
	fi, ok := tracked["/reports/a.xlsx"]
	if !ok {
		t.Fatal("file not tracked")
	}
	if fi.MtimeNs != 111 || fi.SizeBytes != 222 {
		t.Errorf("FileInfo = %+v", fi)
	}
}

func TestSaveReplacesRecords(t *testing.T) {
	c := openTestCache(t)

	s := model.Summary{
		FilePath: "/reports/a.xlsx",
		Records:  []model.ProjectRecord{{Name: "old"}, {Name: "older"}},
	}
	if err := c.SaveSummary(s, 1, 1); err != nil {
		t.Fatal(err)
	}

	s.Records = []model.ProjectRecord{{Name: "new"}}
	if err := c.SaveSummary(s, 2, 2); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadSummaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || len(loaded[0].Records) != 1 || loaded[0].Records[0].Name != "new" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestDeleteReport(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveSummary(model.Summary{FilePath: "/r/a.xlsx"}, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteReport("/r/a.xlsx"); err != nil {
		t.Fatal(err)
	}

	n, err := c.ReportCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("ReportCount = %d, want 0", n)
	}
}
