package identity

import (
	"fmt"
	"sort"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

// ImagePathFormat is the relative path served for a college with a confirmed image.
const ImagePathFormat = "images/%s.jpg"

// ResolveDuplicates keeps one status row per slug. A "done" row beats any
// other; ties fall back to input order.
func ResolveDuplicates(statuses []models.ImageStatus) map[string]models.ImageStatus {
	resolved := make(map[string]models.ImageStatus, len(statuses))
	for _, status := range statuses {
		key := Slugify(status.SourceName)
		current, seen := resolved[key]
		if !seen || (status.Done() && !current.Done()) {
			resolved[key] = status
		}
	}
	return resolved
}

// MergeResult is the unified table plus the reconciliation findings of one merge.
type MergeResult struct {
	Colleges []models.MergedCollege
	Report   models.ReconciliationReport
}

// Merge left-joins colleges against the resolved statuses. Unmatched colleges
// are not done; an image path is set only when the status is done and the
// slug is among availableKeys. Merge never fails.
func Merge(colleges []models.College, resolved map[string]models.ImageStatus, availableKeys map[string]struct{}) MergeResult {
	merged := make([]models.MergedCollege, 0, len(colleges))
	mergedKeys := make(map[string]struct{}, len(colleges))
	report := models.ReconciliationReport{
		Mismatches: []models.ReportEntry{},
		Orphans:    []models.ReportEntry{},
	}

	for _, college := range colleges {
		key := Slugify(college.Name)
		mergedKeys[key] = struct{}{}

		row := models.MergedCollege{College: college, Slug: key}
		if status, ok := resolved[key]; ok {
			row.Done = status.Done()
		}
		if _, ok := availableKeys[key]; ok && row.Done {
			row.ImagePath = fmt.Sprintf(ImagePathFormat, key)
		}
		row.HasImage = row.ImagePath != ""

		if row.Done && !row.HasImage {
			report.Mismatches = append(report.Mismatches, models.ReportEntry{Name: college.Name, Slug: key})
		}
		merged = append(merged, row)
	}

	for key := range availableKeys {
		if _, ok := mergedKeys[key]; !ok {
			report.Orphans = append(report.Orphans, models.ReportEntry{Slug: key})
		}
	}
	sort.Slice(report.Orphans, func(i, j int) bool {
		return report.Orphans[i].Slug < report.Orphans[j].Slug
	})

	return MergeResult{Colleges: merged, Report: report}
}

// KeysFromStems turns file stems into a key set. Stems are used verbatim, as on disk.
func KeysFromStems(stems []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(stems))
	for _, stem := range stems {
		keys[stem] = struct{}{}
	}
	return keys
}
