package models

import "strings"

// College is one row of the college registry. Currency, seat and rank columns are nullable.
type College struct {
	Name            string `db:"college" json:"college"`
	UniversityName  string `db:"university_name" json:"university_name"`
	State           string `db:"state" json:"state"`
	Seats           *int64 `db:"seats" json:"seats"`
	TuitionFee      *int64 `db:"tuition_fee" json:"tuition_fee"`
	HostelChargesPA *int64 `db:"hostel_charges_pa" json:"hostel_charges_pa"`
	Annual          *int64 `db:"annual" json:"annual"`
	OneTime         *int64 `db:"one_time" json:"one_time"`
	TuitionPackage  *int64 `db:"tuition_package" json:"tuition_package"`
	GrandTotal      *int64 `db:"grand_total" json:"grand_total"`
	OpeningRank     *int64 `db:"opening_rank_2023" json:"opening_rank_2023"`
	ClosingRank     *int64 `db:"closing_rank_2023" json:"closing_rank_2023"`
	Website         string `db:"website" json:"website"`
	Overview        string `db:"overview" json:"overview"`

	// Extra keeps registry columns without a dedicated field, keyed by normalised header.
	Extra map[string]string `db:"-" json:"-"`
}

// DisplayName drops the commentary some registry names carry after the first comma.
func (c College) DisplayName() string {
	name, _, _ := strings.Cut(c.Name, ",")
	return strings.TrimSpace(name)
}

// ImageStatus is one reported image-submission status row.
type ImageStatus struct {
	SourceName string `json:"source_name"`
	Status     string `json:"status"`
}

// Done reports whether the status text is "done", ignoring case.
func (s ImageStatus) Done() bool {
	return strings.EqualFold(s.Status, "done")
}

// MergedCollege is a registry row joined with its resolved image status.
type MergedCollege struct {
	College
	Slug      string `json:"slug"`
	Done      bool   `json:"done"`
	ImagePath string `json:"image_path"`
	HasImage  bool   `json:"has_image"`
}

// ClassifiedCollege carries the eligibility computed for a single search.
type ClassifiedCollege struct {
	MergedCollege
	BudgetStatus BudgetStatus `json:"budget_status"`
}

// ReportEntry names one reconciliation finding. Name is empty for orphan files.
type ReportEntry struct {
	Name string `json:"name,omitempty"`
	Slug string `json:"slug"`
}

// ReconciliationReport lists data-quality findings from a merge. Findings never block operation.
type ReconciliationReport struct {
	// Mismatches are colleges marked done whose image file is missing.
	Mismatches []ReportEntry `json:"mismatches"`
	// Orphans are image files whose stem matches no college.
	Orphans []ReportEntry `json:"orphans"`
}
