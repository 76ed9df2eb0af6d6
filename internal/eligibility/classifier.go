// Package eligibility labels colleges against a user's rank and budgets.
package eligibility

import "github.com/noah-isme/college-predictor-api/internal/models"

// Classify applies the rank check first and the budget checks second.
// Lower rank numbers are better; a missing closing rank is never reachable.
// Missing fees never exceed a budget.
func Classify(college models.College, t models.Thresholds) models.BudgetStatus {
	if college.ClosingRank == nil || t.Rank > *college.ClosingRank {
		return models.BudgetStatusNotPossible
	}
	if exceeds(college.TuitionFee, t.TuitionBudget) || exceeds(college.GrandTotal, t.OverallBudget) {
		return models.BudgetStatusExceeding
	}
	return models.BudgetStatusWithin
}

func exceeds(amount *int64, budget int64) bool {
	return amount != nil && *amount > budget
}

// ClassifyAll labels every row into a fresh slice. The input is never modified,
// so a shared dataset can be classified by concurrent requests.
func ClassifyAll(colleges []models.MergedCollege, t models.Thresholds) []models.ClassifiedCollege {
	out := make([]models.ClassifiedCollege, len(colleges))
	for i, college := range colleges {
		out[i] = models.ClassifiedCollege{
			MergedCollege: college,
			BudgetStatus:  Classify(college.College, t),
		}
	}
	return out
}

// Qualifying keeps rows the user can get into, preserving order.
func Qualifying(classified []models.ClassifiedCollege) []models.ClassifiedCollege {
	out := make([]models.ClassifiedCollege, 0, len(classified))
	for _, row := range classified {
		if row.BudgetStatus.Qualifies() {
			out = append(out, row)
		}
	}
	return out
}
