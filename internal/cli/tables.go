package cli

import (
	"fmt"

	"github.com/dave-doty/aggie-unterprise/internal/model"
)

var summaryHeaders = []string{
	"Project Name", "Balance", "Expenses", "Salary", "Travel",
	"Supplies", "Fringe", "Fellowship", "Indirect", "Budget",
}

var diffHeaders = []string{
	"Project Name", "Expenses", "Salary", "Travel",
	"Supplies", "Fringe", "Fellowship", "Indirect", "Balance",
}

// SummaryTable builds the single-period table for one report. Columns
// carry every tracked category plus the remaining balance and the
// total budget.
func SummaryTable(s model.Summary, cents, markdown bool) Table {
	rows := make([][]string, 0, len(s.Records)+1)
	for _, r := range s.Records {
		rows = append(rows, summaryRow(r, cents, markdown))
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, summaryRow(model.Totals(s.Records), cents, markdown))
	return Table{Headers: summaryHeaders, Rows: rows}
}

// DiffTable builds the period-over-period comparison table. Budget is
// omitted since it does not change between reports, and the category
// deltas carry explicit signs.
func DiffTable(records []model.ProjectRecord, cents, markdown bool) Table {
	rows := make([][]string, 0, len(records)+1)
	for _, r := range records {
		rows = append(rows, diffRow(r, cents, markdown))
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, diffRow(model.Totals(records), cents, markdown))
	return Table{Headers: diffHeaders, Rows: rows}
}

// SummaryTitle returns the title line for a single-period table.
func SummaryTitle(s model.Summary) string {
	return fmt.Sprintf("Totals for %s %d", s.Month(), s.Year())
}

// DiffTitle returns the title line for a comparison table.
func DiffTitle(earlier, later model.Summary) string {
	return fmt.Sprintf("Differences from %s %d to %s %d",
		earlier.Month(), earlier.Year(), later.Month(), later.Year())
}

func summaryRow(r model.ProjectRecord, cents, markdown bool) []string {
	money := func(v float64) string {
		s := FormatCurrency(v, cents)
		if markdown {
			s = EscapeDollars(s)
		}
		return s
	}
	return []string{
		r.Name,
		money(r.Balance),
		money(r.Expenses),
		money(r.Salary),
		money(r.Travel),
		money(r.Supplies),
		money(r.Fringe),
		money(r.Fellowship),
		money(r.Indirect),
		money(r.Budget),
	}
}

func diffRow(r model.ProjectRecord, cents, markdown bool) []string {
	delta := func(v float64) string {
		s := FormatDelta(v, cents)
		if markdown {
			s = EscapeDollars(s)
		}
		return s
	}
	return []string{
		r.Name,
		delta(r.Expenses),
		delta(r.Salary),
		delta(r.Travel),
		delta(r.Supplies),
		delta(r.Fringe),
		delta(r.Fellowship),
		delta(r.Indirect),
		delta(r.Balance),
	}
}
