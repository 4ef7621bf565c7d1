package source

import "github.com/dave-doty/aggie-unterprise/internal/model"

// DiscoveredFile is one report spreadsheet found during discovery.
type DiscoveredFile struct {
	Path string
	Name string // base filename, for progress and error messages
}

// ParseResult holds the output of parsing a single report file.
type ParseResult struct {
	Summary  model.Summary
	Warnings []string // non-fatal oddities (unknown categories, missing detail rows)
	Err      error
}

// Summary sheet headers. The balance header embeds a formula annotation with
// an en-dash ("Budget Balance (Budget – (Comm & Exp))"), so it is matched by
// prefix rather than equality.
const (
	headerAwardNumber   = "Award Number"
	headerProjectName   = "Project Name"
	headerTaskName      = "Task/Subtask Name"
	headerBudget        = "Budget"
	headerExpenses      = "Expenses"
	headerBalancePrefix = "Budget Balance"
)

// Detail sheet headers.
const headerCategory = "Expenditure Category Name"

// ppmMarker flags department catch-all rows whose Project Name is shared by
// several unrelated accounts; their identity comes from the task name.
const ppmMarker = "PPM Only"

// expenseCategories maps a substring of the detail sheet's category label to
// the summary field it feeds.
var expenseCategories = []struct {
	Match string
	Apply func(*model.ProjectRecord, float64)
}{
	{"Salaries and Wages", func(r *model.ProjectRecord, v float64) { r.Salary = v }},
	{"Travel", func(r *model.ProjectRecord, v float64) { r.Travel = v }},
	{"Supplies / Services / Other Expenses", func(r *model.ProjectRecord, v float64) { r.Supplies = v }},
	{"Fringe Benefits", func(r *model.ProjectRecord, v float64) { r.Fringe = v }},
	{"Fellowship & Scholarships", func(r *model.ProjectRecord, v float64) { r.Fellowship = v }},
	{"Indirect Costs", func(r *model.ProjectRecord, v float64) { r.Indirect = v }},
}
