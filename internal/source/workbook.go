// Package source discovers and parses AggieEnterprise report spreadsheets.
package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dave-doty/aggie-unterprise/internal/model"
)

// ParseFile reads one report workbook and extracts a Summary with raw
// (uncleaned) project names. The workbook carries a "Summary" sheet with one
// row per project and a "Detail" sheet with per-category expense rows; both
// bury their header row under a banner of export metadata, so the header is
// located by content, not position.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := excelize.OpenFile(df.Path)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("opening %s: %w", df.Name, err)}
	}
	defer func() { _ = f.Close() }()

	summarySheet, err := findSheet(f, "Summary")
	if err != nil {
		return ParseResult{Err: fmt.Errorf("%s: %w", df.Name, err)}
	}
	detailSheet, err := findSheet(f, "Detail")
	if err != nil {
		return ParseResult{Err: fmt.Errorf("%s: %w", df.Name, err)}
	}

	summaryRows, err := f.GetRows(summarySheet)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading %s sheet of %s: %w", summarySheet, df.Name, err)}
	}
	detailRows, err := f.GetRows(detailSheet)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading %s sheet of %s: %w", detailSheet, df.Name, err)}
	}

	result := ParseResult{Summary: model.Summary{FilePath: df.Path}}
	result.Summary.Date = reportDate(summaryRows, df.Path)

	headerIdx := findHeaderRow(summaryRows)
	if headerIdx < 0 {
		result.Err = fmt.Errorf("%s: no header row (first cell %q) in %s sheet", df.Name, headerAwardNumber, summarySheet)
		return result
	}
	cols, err := mapSummaryColumns(summaryRows[headerIdx])
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", df.Name, err)
		return result
	}

	detail, err := newDetailIndex(detailRows)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", df.Name, err)
		return result
	}

	for i := headerIdx + 1; i < len(summaryRows); i++ {
		row := summaryRows[i]
		rawName := cellAt(row, cols.project)
		budgetStr := cellAt(row, cols.budget)
		expensesStr := cellAt(row, cols.expenses)

		// Filler rows between the data region and trailing sheet content
		if rawName == "" || (budgetStr == "" && expensesStr == "") {
			continue
		}

		budget, err := ParseCurrency(budgetStr)
		if err != nil {
			result.Err = fmt.Errorf("%s row %d: budget: %w", df.Name, i+1, err)
			return result
		}
		expenses, err := ParseCurrency(expensesStr)
		if err != nil {
			result.Err = fmt.Errorf("%s row %d: expenses: %w", df.Name, i+1, err)
			return result
		}
		balance, err := ParseCurrency(cellAt(row, cols.balance))
		if err != nil {
			result.Err = fmt.Errorf("%s row %d: balance: %w", df.Name, i+1, err)
			return result
		}

		record := model.ProjectRecord{
			Name:     rawName,
			Budget:   budget,
			Expenses: expenses,
			Balance:  balance,
		}

		// Department PPM catch-all rows share one project name across
		// unrelated accounts; the task name is the real identity there.
		if strings.Contains(rawName, ppmMarker) {
			if task := cellAt(row, cols.task); task != "" {
				record.Name = task
			}
		}

		warnings := detail.fillCategories(&record, rawName)
		result.Warnings = append(result.Warnings, warnings...)

		result.Summary.Records = append(result.Summary.Records, record)
	}

	return result
}

// findSheet resolves a sheet by name, falling back to a case-insensitive
// match across the workbook's sheet list.
func findSheet(f *excelize.File, name string) (string, error) {
	idx, err := f.GetSheetIndex(name)
	if err == nil && idx >= 0 {
		return name, nil
	}
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(s, name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("workbook has no %q sheet", name)
}

// findHeaderRow scans for the row that starts the data region. Exports
// prepend a variable-height banner (report title, filters, run timestamp),
// so the header is identified by its first cell.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == headerAwardNumber {
			return i
		}
	}
	return -1
}

type summaryColumns struct {
	project  int
	task     int
	budget   int
	expenses int
	balance  int
}

func mapSummaryColumns(header []string) (summaryColumns, error) {
	cols := summaryColumns{project: -1, task: -1, budget: -1, expenses: -1, balance: -1}
	for i, cell := range header {
		switch h := strings.TrimSpace(cell); {
		case h == headerProjectName:
			cols.project = i
		case h == headerTaskName:
			cols.task = i
		case h == headerBudget:
			cols.budget = i
		case h == headerExpenses:
			cols.expenses = i
		case strings.HasPrefix(h, headerBalancePrefix):
			cols.balance = i
		}
	}
	if cols.project < 0 || cols.budget < 0 || cols.expenses < 0 || cols.balance < 0 {
		return cols, fmt.Errorf("header row is missing required columns (%s, %s, %s, %s...)",
			headerProjectName, headerBudget, headerExpenses, headerBalancePrefix)
	}
	return cols, nil
}

// detailIndex indexes the Detail sheet's per-category expense rows by raw
// project name.
type detailIndex struct {
	// project name -> category label -> expenses
	byProject map[string][]detailRow
}

type detailRow struct {
	category string
	expenses string
}

func newDetailIndex(rows [][]string) (*detailIndex, error) {
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no header row (first cell %q) in Detail sheet", headerAwardNumber)
	}

	projectCol, categoryCol, expensesCol := -1, -1, -1
	for i, cell := range rows[headerIdx] {
		switch strings.TrimSpace(cell) {
		case headerProjectName:
			projectCol = i
		case headerCategory:
			categoryCol = i
		case headerExpenses:
			expensesCol = i
		}
	}
	if projectCol < 0 || categoryCol < 0 || expensesCol < 0 {
		return nil, fmt.Errorf("detail header row is missing required columns (%s, %s, %s)",
			headerProjectName, headerCategory, headerExpenses)
	}

	idx := &detailIndex{byProject: make(map[string][]detailRow)}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, projectCol)
		category := cellAt(row, categoryCol)
		if name == "" || category == "" {
			continue
		}
		idx.byProject[name] = append(idx.byProject[name], detailRow{
			category: category,
			expenses: cellAt(row, expensesCol),
		})
	}
	return idx, nil
}

// fillCategories distributes a project's detail rows into the per-category
// fields of its record. Missing detail rows and unrecognized categories are
// warnings: one odd project should not sink the rest of the report.
func (d *detailIndex) fillCategories(record *model.ProjectRecord, rawName string) []string {
	rows, ok := d.byProject[rawName]
	if !ok {
		return []string{fmt.Sprintf("no expense detail found for project %q", rawName)}
	}

	var warnings []string
	for _, row := range rows {
		v, err := ParseCurrency(row.expenses)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("project %q category %q: %v", rawName, row.category, err))
			continue
		}

		matched := false
		for _, cat := range expenseCategories {
			if strings.Contains(row.category, cat.Match) {
				cat.Apply(record, v)
				matched = true
				break
			}
		}
		if !matched {
			warnings = append(warnings, fmt.Sprintf("unknown expense category %q for project %q", row.category, rawName))
		}
	}
	return warnings
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// usDateRe matches the m/d/yyyy form embedded in the export's run timestamp,
// with an optional trailing clock time.
var usDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AP]M)?)?`)

// fileDateRe matches dates embedded in report filenames like "2024-8-5.xlsx".
var fileDateRe = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

// reportDate extracts the report generation timestamp. Cell A3 of the
// Summary sheet holds the run date; when it is absent or unreadable, a date
// embedded in the filename is the fallback.
func reportDate(rows [][]string, path string) time.Time {
	if len(rows) >= 3 && len(rows[2]) > 0 {
		if t, ok := parseReportDate(rows[2][0]); ok {
			return t
		}
	}
	if m := fileDateRe.FindStringSubmatch(filepath.Base(path)); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	}
	return time.Time{}
}

func parseReportDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	// ISO forms first (raw cell values when the sheet stores a real date)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	m := usDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, minute, sec := 0, 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
		if m[7] == "PM" && hour < 12 {
			hour += 12
		}
		if m[7] == "AM" && hour == 12 {
			hour = 0
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local), true
}
