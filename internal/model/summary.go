// Package model defines domain types for parsed grant reports.
package model

import "time"

// ProjectRecord holds the extracted financial fields for a single project
// within one report. Name is the cleaned project identity and is unique
// within a Summary.
type ProjectRecord struct {
	Name       string
	Expenses   float64
	Salary     float64
	Travel     float64
	Supplies   float64
	Fringe     float64
	Fellowship float64
	Indirect   float64
	Balance    float64
	Budget     float64
}

// Sub returns the field-wise difference r - other, representing spending
// during the interval between two reports. Budget is not differenced: a
// budget is a point-in-time allocation, not a flow, so the result carries
// zero and diff tables omit the column.
func (r ProjectRecord) Sub(other ProjectRecord) ProjectRecord {
	return ProjectRecord{
		Name:       r.Name,
		Expenses:   r.Expenses - other.Expenses,
		Salary:     r.Salary - other.Salary,
		Travel:     r.Travel - other.Travel,
		Supplies:   r.Supplies - other.Supplies,
		Fringe:     r.Fringe - other.Fringe,
		Fellowship: r.Fellowship - other.Fellowship,
		Indirect:   r.Indirect - other.Indirect,
		Balance:    r.Balance - other.Balance,
	}
}

// Summary is the parsed representation of one report spreadsheet.
type Summary struct {
	Date     time.Time // report generation date, from inside the workbook
	FilePath string
	Records  []ProjectRecord
}

// Month returns the calendar month of the report date.
func (s Summary) Month() time.Month { return s.Date.Month() }

// Year returns the calendar year of the report date.
func (s Summary) Year() int { return s.Date.Year() }

// DateString renders the report date as YYYY-MM-DD.
func (s Summary) DateString() string {
	if s.Date.IsZero() {
		return "unknown date"
	}
	return s.Date.Format("2006-01-02")
}

// Record looks up a project by name.
func (s Summary) Record(name string) (ProjectRecord, bool) {
	for _, r := range s.Records {
		if r.Name == name {
			return r, true
		}
	}
	return ProjectRecord{}, false
}

// Diff computes per-project differences between this summary and an earlier
// one, matched by project name. Projects present on only one side are
// treated as zero on the missing side, so a grant that started or ended
// between the two reports still shows its full movement. Records keep this
// summary's order; earlier-only projects are appended in their order.
func (s Summary) Diff(earlier Summary) []ProjectRecord {
	earlierByName := make(map[string]ProjectRecord, len(earlier.Records))
	for _, r := range earlier.Records {
		earlierByName[r.Name] = r
	}

	seen := make(map[string]struct{}, len(s.Records))
	diffs := make([]ProjectRecord, 0, len(s.Records))
	for _, r := range s.Records {
		prev := earlierByName[r.Name] // zero value when absent
		prev.Name = r.Name
		diffs = append(diffs, r.Sub(prev))
		seen[r.Name] = struct{}{}
	}

	for _, r := range earlier.Records {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		gone := ProjectRecord{Name: r.Name}
		diffs = append(diffs, gone.Sub(r))
	}

	return diffs
}

// Totals sums every numeric field across records. Budget is included so the
// result can stand in as a grand-total row.
func Totals(records []ProjectRecord) ProjectRecord {
	total := ProjectRecord{Name: "TOTAL"}
	for _, r := range records {
		total.Expenses += r.Expenses
		total.Salary += r.Salary
		total.Travel += r.Travel
		total.Supplies += r.Supplies
		total.Fringe += r.Fringe
		total.Fellowship += r.Fellowship
		total.Indirect += r.Indirect
		total.Balance += r.Balance
		total.Budget += r.Budget
	}
	return total
}
