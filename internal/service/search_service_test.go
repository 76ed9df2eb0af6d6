package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
)

func fixtureQuery() dto.SearchQuery {
	return dto.SearchQuery{Rank: 1000, TuitionBudget: 2000000, OverallBudget: 3000000}
}

func newFixtureSearch(t *testing.T, metrics searchMetrics) *SearchService {
	t.Helper()
	return NewSearchService(fixtureDatasetService(t), metrics, nil, SearchConfig{PageSize: 10, MaxPageSize: 50}, nil)
}

func cardSlugs(cards []dto.CollegeCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Slug)
	}
	return out
}

func TestSearchServiceSearch(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newFixtureSearch(t, metrics)

	cards, pagination, meta, err := svc.Search(context.Background(), fixtureQuery(), []string{"Beta College"})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha_medical_college", "beta_college", "epsilon_college_annexe"}, cardSlugs(cards))
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 10, TotalCount: 3}, pagination)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 3, meta.QualifyingCount)
	assert.Equal(t, []models.StateCount{{State: "Goa", Count: 2}, {State: "Kerala", Count: 1}}, meta.StateCounts)
	assert.Equal(t, "As per your rank 1000 and budgets ₹20,00,000/₹30,00,000, you qualify for 3 colleges.", meta.Summary)
	assert.Equal(t, 1, metrics.searches)

	alpha := cards[0]
	assert.Equal(t, models.BudgetStatusWithin, alpha.BudgetStatus)
	assert.Equal(t, "Within budget", alpha.BudgetLabel)
	assert.Equal(t, "₹15,00,000", alpha.TuitionFeeText)
	assert.Equal(t, "/images/alpha_medical_college.jpg", alpha.ImageURL)
	assert.False(t, alpha.Selected)

	beta := cards[1]
	assert.Equal(t, models.BudgetStatusExceeding, beta.BudgetStatus)
	assert.Empty(t, beta.ImageURL)
	assert.True(t, beta.Selected)

	epsilon := cards[2]
	assert.Equal(t, "Epsilon College", epsilon.DisplayName)
	assert.Equal(t, "-", epsilon.TuitionFeeText)
}

func TestSearchServiceStateFilter(t *testing.T) {
	svc := newFixtureSearch(t, nil)
	query := fixtureQuery()
	query.States = []string{"Goa"}

	cards, pagination, meta, err := svc.Search(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta_college", "epsilon_college_annexe"}, cardSlugs(cards))
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Equal(t, 3, meta.QualifyingCount)
	assert.Len(t, meta.StateCounts, 2)
	assert.Equal(t, "As per your rank 1000 and budgets ₹20,00,000/₹30,00,000, you qualify for 2 colleges in Goa.", meta.Summary)
}

func TestSearchServicePaginationClamps(t *testing.T) {
	svc := newFixtureSearch(t, nil)
	query := fixtureQuery()
	query.Limit = 2
	query.Page = 5

	cards, pagination, meta, err := svc.Search(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, []string{"epsilon_college_annexe"}, cardSlugs(cards))

	query.Rank = 1000000
	query.Page = 3
	cards, pagination, meta, err = svc.Search(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, "As per your rank 1000000 and budgets ₹20,00,000/₹30,00,000, you qualify for 0 colleges.", meta.Summary)
}

func TestSearchServiceCapsPageSize(t *testing.T) {
	svc := newFixtureSearch(t, nil)
	query := fixtureQuery()
	query.Limit = 500

	_, pagination, _, err := svc.Search(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, pagination.PageSize)
}

func TestSearchServiceRejectsInvalidInput(t *testing.T) {
	svc := newFixtureSearch(t, nil)
	cases := []dto.SearchQuery{
		{Rank: 0, TuitionBudget: 1, OverallBudget: 1},
		{Rank: 10, TuitionBudget: -1, OverallBudget: 1},
		{Rank: 10, States: []string{""}},
	}
	for _, query := range cases {
		_, _, _, err := svc.Search(context.Background(), query, nil)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestSearchServiceDetail(t *testing.T) {
	svc := newFixtureSearch(t, nil)

	detail, err := svc.Detail(context.Background(), "alpha_medical_college", fixtureQuery())
	require.NoError(t, err)
	assert.Equal(t, "Coastal campus", detail.Overview)
	assert.Equal(t, "https://alpha.test", detail.Website)
	require.NotNil(t, detail.OpeningRank)
	assert.EqualValues(t, 100, *detail.OpeningRank)

	detail, err = svc.Detail(context.Background(), "epsilon_college_annexe", fixtureQuery())
	require.NoError(t, err)
	assert.Equal(t, "Annexe campus", detail.Overview)

	_, err = svc.Detail(context.Background(), "gamma_institute", fixtureQuery())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSearchServiceCompare(t *testing.T) {
	svc := newFixtureSearch(t, nil)

	comparison, err := svc.Compare(context.Background(), fixtureQuery(), []string{"Beta College", "Alpha Medical College"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Medical College", "Beta College"}, comparison.Colleges)
	byLabel := make(map[string][]string)
	for _, f := range comparison.Fields {
		byLabel[f.Label] = f.Values
	}
	assert.Equal(t, []string{"₹15,00,000", "₹25,00,000"}, byLabel["Tuition Fee"])
	assert.Equal(t, []string{"100", "-"}, byLabel["Open Rank 2023"])
	assert.Equal(t, []string{"Within budget", "Budget Exceeding"}, byLabel["Budget Status"])
}

func TestSearchServiceCompareNeedsExactlyTwo(t *testing.T) {
	svc := newFixtureSearch(t, nil)
	cases := [][]string{
		{"Alpha Medical College"},
		{"Alpha Medical College", "Alpha Medical College"},
		{"Alpha Medical College", "Beta College", "Epsilon College, Annexe"},
	}
	for _, names := range cases {
		_, err := svc.Compare(context.Background(), fixtureQuery(), names)
		require.Error(t, err)
		assert.Equal(t, "select exactly two colleges", appErrors.FromError(err).Message)
	}

	_, err := svc.Compare(context.Background(), fixtureQuery(), []string{"Alpha Medical College", "Gamma Institute"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
