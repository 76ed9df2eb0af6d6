package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/eligibility"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
	"github.com/noah-isme/college-predictor-api/pkg/format"
)

type datasetProvider interface {
	Current() (*Dataset, error)
}

type searchMetrics interface {
	ObserveSearch(classified []models.ClassifiedCollege)
}

// SearchConfig tunes presentation.
type SearchConfig struct {
	PageSize    int
	MaxPageSize int
	// ImageURLPrefix is prepended to merged image paths, e.g. "/" for "/images/x.jpg".
	ImageURLPrefix string
}

// Evaluation is one classification pass over the dataset. It is request-local.
type Evaluation struct {
	Query       dto.SearchQuery
	Qualifying  []models.ClassifiedCollege
	Results     []models.ClassifiedCollege
	StateCounts []models.StateCount
}

// SearchService classifies the dataset for each search and shapes the results.
type SearchService struct {
	dataset   datasetProvider
	metrics   searchMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SearchConfig
}

// NewSearchService constructs the search service. metrics may be nil.
func NewSearchService(dataset datasetProvider, metrics searchMetrics, validate *validator.Validate, cfg SearchConfig, logger *zap.Logger) *SearchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.MaxPageSize < cfg.PageSize {
		cfg.MaxPageSize = cfg.PageSize
	}
	if cfg.ImageURLPrefix == "" {
		cfg.ImageURLPrefix = "/"
	}
	return &SearchService{dataset: dataset, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Evaluate validates the query and classifies every college against it.
func (s *SearchService) Evaluate(ctx context.Context, query dto.SearchQuery) (*Evaluation, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search parameters")
	}
	dataset, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	classified := eligibility.ClassifyAll(dataset.Colleges, query.Thresholds())
	if s.metrics != nil {
		s.metrics.ObserveSearch(classified)
	}
	qualifying := eligibility.Qualifying(classified)

	eval := &Evaluation{
		Query:       query,
		Qualifying:  qualifying,
		Results:     filterStates(qualifying, query.States),
		StateCounts: countStates(qualifying),
	}
	s.logger.Debug("search evaluated",
		zap.Int64("rank", query.Rank),
		zap.Int("qualifying", len(eval.Qualifying)),
		zap.Int("results", len(eval.Results)),
	)
	return eval, nil
}

// Search returns one page of result cards. Pages past the end are clamped to the last page.
func (s *SearchService) Search(ctx context.Context, query dto.SearchQuery, selected []string) ([]dto.CollegeCard, *models.Pagination, *dto.SearchMeta, error) {
	eval, err := s.Evaluate(ctx, query)
	if err != nil {
		return nil, nil, nil, err
	}

	size := query.Limit
	if size <= 0 {
		size = s.cfg.PageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	total := len(eval.Results)
	pages := (total + size - 1) / size
	page := query.Page
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	if pages == 0 {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	chosen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		chosen[name] = struct{}{}
	}
	cards := make([]dto.CollegeCard, 0, end-start)
	for _, row := range eval.Results[start:end] {
		card := s.card(row)
		_, card.Selected = chosen[row.Name]
		cards = append(cards, card)
	}

	meta := &dto.SearchMeta{
		TotalPages:      pages,
		QualifyingCount: len(eval.Qualifying),
		ResultCount:     total,
		StateCounts:     eval.StateCounts,
		Summary:         Summary(eval),
	}
	return cards, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, meta, nil
}

// Detail returns one qualifying college by slug.
func (s *SearchService) Detail(ctx context.Context, slug string, query dto.SearchQuery) (*dto.CollegeDetail, error) {
	eval, err := s.Evaluate(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, row := range eval.Qualifying {
		if row.Slug != slug {
			continue
		}
		return &dto.CollegeDetail{
			CollegeCard:     s.card(row),
			Seats:           row.Seats,
			HostelChargesPA: row.HostelChargesPA,
			Annual:          row.Annual,
			OneTime:         row.OneTime,
			TuitionPackage:  row.TuitionPackage,
			OpeningRank:     row.OpeningRank,
			Website:         row.Website,
			Overview:        overviewText(row.College),
		}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found in results")
}

// Compare lays exactly two distinct qualifying colleges side by side, in dataset order.
func (s *SearchService) Compare(ctx context.Context, query dto.SearchQuery, names []string) (*dto.Comparison, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			wanted[name] = struct{}{}
		}
	}
	if len(wanted) != 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "select exactly two colleges")
	}
	eval, err := s.Evaluate(ctx, query)
	if err != nil {
		return nil, err
	}

	picked := make([]models.ClassifiedCollege, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, row := range eval.Qualifying {
		if _, ok := wanted[row.Name]; !ok {
			continue
		}
		if _, dup := seen[row.Name]; dup {
			continue
		}
		seen[row.Name] = struct{}{}
		picked = append(picked, row)
	}
	if len(picked) != 2 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "both colleges must be in the results")
	}

	fields := []struct {
		label string
		value func(models.ClassifiedCollege) string
	}{
		{"University", func(c models.ClassifiedCollege) string { return c.UniversityName }},
		{"State", func(c models.ClassifiedCollege) string { return c.State }},
		{"Tuition Fee", func(c models.ClassifiedCollege) string { return format.INR(c.TuitionFee) }},
		{"Hostel P.A.", func(c models.ClassifiedCollege) string { return format.INR(c.HostelChargesPA) }},
		{"Annual", func(c models.ClassifiedCollege) string { return format.INR(c.Annual) }},
		{"Tuition Package", func(c models.ClassifiedCollege) string { return format.INR(c.TuitionPackage) }},
		{"Grand Total", func(c models.ClassifiedCollege) string { return format.INR(c.GrandTotal) }},
		{"Open Rank 2023", func(c models.ClassifiedCollege) string { return format.Int(c.OpeningRank) }},
		{"Close Rank 2023", func(c models.ClassifiedCollege) string { return format.Int(c.ClosingRank) }},
		{"Budget Status", func(c models.ClassifiedCollege) string { return c.BudgetStatus.Label() }},
	}
	out := &dto.Comparison{Colleges: []string{picked[0].Name, picked[1].Name}}
	for _, f := range fields {
		out.Fields = append(out.Fields, dto.ComparisonField{
			Label:  f.label,
			Values: []string{f.value(picked[0]), f.value(picked[1])},
		})
	}
	return out, nil
}

func (s *SearchService) card(row models.ClassifiedCollege) dto.CollegeCard {
	card := dto.CollegeCard{
		Slug:           row.Slug,
		College:        row.Name,
		DisplayName:    row.DisplayName(),
		UniversityName: row.UniversityName,
		State:          row.State,
		TuitionFee:     row.TuitionFee,
		TuitionFeeText: format.INR(row.TuitionFee),
		GrandTotal:     row.GrandTotal,
		GrandTotalText: format.INR(row.GrandTotal),
		ClosingRank:    row.ClosingRank,
		BudgetStatus:   row.BudgetStatus,
		BudgetLabel:    row.BudgetStatus.Label(),
		HasImage:       row.HasImage,
	}
	if row.HasImage {
		card.ImageURL = strings.TrimRight(s.cfg.ImageURLPrefix, "/") + "/" + row.ImagePath
	}
	return card
}

// Summary is the one-line recap shown above the results.
func Summary(eval *Evaluation) string {
	q := eval.Query
	base := fmt.Sprintf("As per your rank %d and budgets %s/%s, ", q.Rank, format.INRValue(q.TuitionBudget), format.INRValue(q.OverallBudget))
	if len(q.States) > 0 {
		return base + fmt.Sprintf("you qualify for %d colleges in %s.", len(eval.Results), strings.Join(q.States, ", "))
	}
	return base + fmt.Sprintf("you qualify for %d colleges.", len(eval.Qualifying))
}

func filterStates(rows []models.ClassifiedCollege, states []string) []models.ClassifiedCollege {
	if len(states) == 0 {
		return rows
	}
	keep := make(map[string]struct{}, len(states))
	for _, state := range states {
		keep[state] = struct{}{}
	}
	out := make([]models.ClassifiedCollege, 0, len(rows))
	for _, row := range rows {
		if _, ok := keep[row.State]; ok {
			out = append(out, row)
		}
	}
	return out
}

func countStates(rows []models.ClassifiedCollege) []models.StateCount {
	counts := make(map[string]int)
	for _, row := range rows {
		if row.State != "" {
			counts[row.State]++
		}
	}
	out := make([]models.StateCount, 0, len(counts))
	for state, n := range counts {
		out = append(out, models.StateCount{State: state, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// overviewText prefers the dedicated overview column and falls back to the
// free-text OVERVIEW_TEXT column some registries carry.
func overviewText(c models.College) string {
	if c.Overview != "" {
		return c.Overview
	}
	if text := c.Extra["OVERVIEW_TEXT"]; text != "" {
		return text
	}
	return "No overview available."
}

