package dto

import "github.com/noah-isme/college-predictor-api/internal/models"

// SearchQuery captures GET /colleges query parameters.
type SearchQuery struct {
	Rank          int64    `form:"rank" json:"rank" validate:"required,min=1"`
	TuitionBudget int64    `form:"tuitionBudget,default=2000000" json:"tuition_budget" validate:"min=0"`
	OverallBudget int64    `form:"overallBudget,default=3000000" json:"overall_budget" validate:"min=0"`
	States        []string `form:"state" json:"states" validate:"dive,required"`
	Page          int      `form:"page" json:"page" validate:"min=0"`
	Limit         int      `form:"limit" json:"limit" validate:"min=0"`
}

// Thresholds returns the classification inputs of the query.
func (q SearchQuery) Thresholds() models.Thresholds {
	return models.Thresholds{Rank: q.Rank, TuitionBudget: q.TuitionBudget, OverallBudget: q.OverallBudget}
}

// CollegeCard is one result card.
type CollegeCard struct {
	Slug           string              `json:"slug"`
	College        string              `json:"college"`
	DisplayName    string              `json:"display_name"`
	UniversityName string              `json:"university_name"`
	State          string              `json:"state"`
	TuitionFee     *int64              `json:"tuition_fee"`
	TuitionFeeText string              `json:"tuition_fee_text"`
	GrandTotal     *int64              `json:"grand_total"`
	GrandTotalText string              `json:"grand_total_text"`
	ClosingRank    *int64              `json:"closing_rank_2023"`
	BudgetStatus   models.BudgetStatus `json:"budget_status"`
	BudgetLabel    string              `json:"budget_label"`
	ImageURL       string              `json:"image_url,omitempty"`
	HasImage       bool                `json:"has_image"`
	Selected       bool                `json:"selected"`
}

// CollegeDetail is the detail view of one qualifying college.
type CollegeDetail struct {
	CollegeCard
	Seats           *int64 `json:"seats"`
	HostelChargesPA *int64 `json:"hostel_charges_pa"`
	Annual          *int64 `json:"annual"`
	OneTime         *int64 `json:"one_time"`
	TuitionPackage  *int64 `json:"tuition_package"`
	OpeningRank     *int64 `json:"opening_rank_2023"`
	Website         string `json:"website,omitempty"`
	Overview        string `json:"overview"`
}

// SearchMeta accompanies a page of cards.
type SearchMeta struct {
	TotalPages      int                 `json:"total_pages"`
	QualifyingCount int                 `json:"qualifying_count"`
	ResultCount     int                 `json:"result_count"`
	StateCounts     []models.StateCount `json:"state_counts"`
	Summary         string              `json:"summary"`
}

// ComparisonField is one row of a side-by-side comparison.
type ComparisonField struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Comparison lays two colleges side by side.
type Comparison struct {
	Colleges []string          `json:"colleges"`
	Fields   []ComparisonField `json:"fields"`
}

// SelectionRequest captures POST /selections payload.
type SelectionRequest struct {
	College string `json:"college" validate:"required"`
}

// SelectionItem is one selected college.
type SelectionItem struct {
	College string `json:"college"`
	Slug    string `json:"slug"`
}

// SelectionResponse lists the session's selections.
type SelectionResponse struct {
	SessionID string          `json:"session_id"`
	Items     []SelectionItem `json:"items"`
	Count     int             `json:"count"`
}

// ExportRequest captures POST /exports payload.
type ExportRequest struct {
	Rank          int64    `json:"rank" validate:"required,min=1"`
	TuitionBudget int64    `json:"tuition_budget" validate:"min=0"`
	OverallBudget int64    `json:"overall_budget" validate:"min=0"`
	States        []string `json:"states" validate:"dive,required"`
	Scope         string   `json:"scope" validate:"required,oneof=all selected"`
	ClientName    string   `json:"client_name" validate:"required,max=100"`
	Format        string   `json:"format" validate:"omitempty,oneof=xlsx csv pdf"`
}

// Query returns the search the export is based on.
func (r ExportRequest) Query() SearchQuery {
	return SearchQuery{Rank: r.Rank, TuitionBudget: r.TuitionBudget, OverallBudget: r.OverallBudget, States: r.States}
}

// ExportResponse is returned once the file is rendered.
type ExportResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Format    string `json:"format"`
	Rows      int    `json:"rows"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
