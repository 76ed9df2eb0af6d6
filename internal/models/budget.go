package models

// BudgetStatus is the per-search eligibility of a college.
type BudgetStatus string

const (
	BudgetStatusNotPossible BudgetStatus = "NOT_POSSIBLE"
	BudgetStatusExceeding   BudgetStatus = "BUDGET_EXCEEDING"
	BudgetStatusWithin      BudgetStatus = "WITHIN_BUDGET"
)

// Label returns the wording used on cards and in exported sheets.
func (s BudgetStatus) Label() string {
	switch s {
	case BudgetStatusNotPossible:
		return "NOT POSSIBLE"
	case BudgetStatusExceeding:
		return "Budget Exceeding"
	case BudgetStatusWithin:
		return "Within budget"
	default:
		return string(s)
	}
}

// Qualifies reports whether the college belongs in the result set shown to the user.
func (s BudgetStatus) Qualifies() bool {
	return s == BudgetStatusExceeding || s == BudgetStatusWithin
}

// Thresholds are the user's rank and budget ceilings for one search.
type Thresholds struct {
	Rank          int64 `json:"rank"`
	TuitionBudget int64 `json:"tuition_budget"`
	OverallBudget int64 `json:"overall_budget"`
}
