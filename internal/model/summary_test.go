package model

import (
	"math"
	"testing"
	"time"
)

func approx(t *testing.T, got, want float64, field string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %.2f, want %.2f", field, got, want)
	}
}

func TestDiff_MatchedProjects(t *testing.T) {
	later := Summary{
		Date: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		Records: []ProjectRecord{
			{Name: "CAREER", Expenses: 1500, Salary: 1000, Fringe: 200, Indirect: 300, Balance: 8500, Budget: 10000},
		},
	}
	earlier := Summary{
		Date: time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC),
		Records: []ProjectRecord{
			{Name: "CAREER", Expenses: 1000, Salary: 700, Fringe: 150, Indirect: 150, Balance: 9000, Budget: 10000},
		},
	}

	diffs := later.Diff(earlier)
	if len(diffs) != 1 {
		t.Fatalf("len(diffs) = %d, want 1", len(diffs))
	}

	d := diffs[0]
	approx(t, d.Expenses, 500, "Expenses")
	approx(t, d.Salary, 300, "Salary")
	approx(t, d.Fringe, 50, "Fringe")
	approx(t, d.Indirect, 150, "Indirect")
	approx(t, d.Balance, -500, "Balance")
	approx(t, d.Budget, 0, "Budget")
}

func TestDiff_UnmatchedProjectsZeroFilled(t *testing.T) {
	later := Summary{
		Records: []ProjectRecord{
			{Name: "New Grant", Expenses: 250, Balance: 9750},
		},
	}
	earlier := Summary{
		Records: []ProjectRecord{
			{Name: "Old Grant", Expenses: 4000, Balance: 1000},
		},
	}

	diffs := later.Diff(earlier)
	if len(diffs) != 2 {
		t.Fatalf("len(diffs) = %d, want 2", len(diffs))
	}

	// Later-only project: full values carried through.
	if diffs[0].Name != "New Grant" {
		t.Errorf("diffs[0].Name = %q, want New Grant", diffs[0].Name)
	}
	approx(t, diffs[0].Expenses, 250, "new Expenses")

	// Earlier-only project: negated values, appended after.
	if diffs[1].Name != "Old Grant" {
		t.Errorf("diffs[1].Name = %q, want Old Grant", diffs[1].Name)
	}
	approx(t, diffs[1].Expenses, -4000, "old Expenses")
	approx(t, diffs[1].Balance, -1000, "old Balance")
}

func TestDiff_PreservesLaterOrder(t *testing.T) {
	later := Summary{
		Records: []ProjectRecord{
			{Name: "B"}, {Name: "A"}, {Name: "C"},
		},
	}
	earlier := Summary{
		Records: []ProjectRecord{
			{Name: "A"}, {Name: "C"},
		},
	}

	diffs := later.Diff(earlier)
	want := []string{"B", "A", "C"}
	for i, name := range want {
		if diffs[i].Name != name {
			t.Errorf("diffs[%d].Name = %q, want %q", i, diffs[i].Name, name)
		}
	}
}

func TestTotals(t *testing.T) {
	records := []ProjectRecord{
		{Expenses: 100, Salary: 60, Budget: 1000, Balance: 900},
		{Expenses: 50, Salary: 20, Budget: 500, Balance: 450},
	}

	total := Totals(records)
	if total.Name != "TOTAL" {
		t.Errorf("Name = %q, want TOTAL", total.Name)
	}
	approx(t, total.Expenses, 150, "Expenses")
	approx(t, total.Salary, 80, "Salary")
	approx(t, total.Budget, 1500, "Budget")
	approx(t, total.Balance, 1350, "Balance")
}

func TestRecordLookup(t *testing.T) {
	s := Summary{Records: []ProjectRecord{{Name: "CAREER", Budget: 42}}}

	r, ok := s.Record("CAREER")
	if !ok || r.Budget != 42 {
		t.Fatalf("Record(CAREER) = %+v, %v", r, ok)
	}
	if _, ok := s.Record("missing"); ok {
		t.Fatal("Record(missing) unexpectedly found")
	}
}

func TestDateAccessors(t *testing.T) {
	s := Summary{Date: time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC)}
	if s.Month() != time.August || s.Year() != 2024 {
		t.Errorf("Month/Year = %v/%d, want August/2024", s.Month(), s.Year())
	}
	if s.DateString() != "2024-08-05" {
		t.Errorf("DateString = %q, want 2024-08-05", s.DateString())
	}
	if (Summary{}).DateString() != "unknown date" {
		t.Error("zero-date DateString should be 'unknown date'")
	}
}
