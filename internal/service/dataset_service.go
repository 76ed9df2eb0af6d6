package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/internal/identity"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
)

type collegeSource interface {
	Load(ctx context.Context) ([]models.College, error)
}

type imageStatusSource interface {
	Load(ctx context.Context) ([]models.ImageStatus, error)
}

type imageKeySource interface {
	Stems(ctx context.Context) ([]string, error)
}

type reconciliationMetrics interface {
	SetReconciliation(rows int, report models.ReconciliationReport)
}

// Dataset is the merged table. It is never modified after Load returns it.
type Dataset struct {
	Colleges []models.MergedCollege
	Report   models.ReconciliationReport
	LoadedAt time.Time

	bySlug map[string]int
	byName map[string]int
}

// BySlug returns the first college with the given slug.
func (d *Dataset) BySlug(slug string) (models.MergedCollege, bool) {
	if d == nil {
		return models.MergedCollege{}, false
	}
	i, ok := d.bySlug[slug]
	if !ok {
		return models.MergedCollege{}, false
	}
	return d.Colleges[i], true
}

// ByName returns the first college with exactly this registry name.
func (d *Dataset) ByName(name string) (models.MergedCollege, bool) {
	if d == nil {
		return models.MergedCollege{}, false
	}
	i, ok := d.byName[name]
	if !ok {
		return models.MergedCollege{}, false
	}
	return d.Colleges[i], true
}

func newDataset(result identity.MergeResult, loadedAt time.Time) *Dataset {
	d := &Dataset{
		Colleges: result.Colleges,
		Report:   result.Report,
		LoadedAt: loadedAt,
		bySlug:   make(map[string]int, len(result.Colleges)),
		byName:   make(map[string]int, len(result.Colleges)),
	}
	for i, c := range result.Colleges {
		if _, ok := d.bySlug[c.Slug]; !ok {
			d.bySlug[c.Slug] = i
		}
		if _, ok := d.byName[c.Name]; !ok {
			d.byName[c.Name] = i
		}
	}
	return d
}

// DatasetService loads the source tables and serves the merged dataset.
type DatasetService struct {
	colleges collegeSource
	statuses imageStatusSource
	images   imageKeySource
	metrics  reconciliationMetrics
	logger   *zap.Logger
	now      func() time.Time

	current atomic.Pointer[Dataset]
}

// NewDatasetService constructs the dataset service. metrics may be nil.
func NewDatasetService(colleges collegeSource, statuses imageStatusSource, images imageKeySource, metrics reconciliationMetrics, logger *zap.Logger) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{
		colleges: colleges,
		statuses: statuses,
		images:   images,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Load reads every source, merges them and publishes the result. Unreadable
// registry or status tables fail with ErrInputData; an unreadable image
// directory only logs a warning and leaves every college without an image.
func (s *DatasetService) Load(ctx context.Context) (*Dataset, error) {
	colleges, err := s.colleges.Load(ctx)
	if err != nil {
		return nil, appErrors.InputData(err, "college registry")
	}
	statuses, err := s.statuses.Load(ctx)
	if err != nil {
		return nil, appErrors.InputData(err, "image status table")
	}

	var stems []string
	if s.images != nil {
		stems, err = s.images.Stems(ctx)
		if err != nil {
			s.logger.Warn("image directory unavailable, continuing without images", zap.Error(err))
			stems = nil
		}
	}

	result := identity.Merge(colleges, identity.ResolveDuplicates(statuses), identity.KeysFromStems(stems))
	dataset := newDataset(result, s.now())
	s.logReport(dataset)
	if s.metrics != nil {
		s.metrics.SetReconciliation(len(dataset.Colleges), dataset.Report)
	}
	s.current.Store(dataset)
	return dataset, nil
}

func (s *DatasetService) logReport(d *Dataset) {
	s.logger.Info("dataset loaded",
		zap.Int("colleges", len(d.Colleges)),
		zap.Int("mismatches", len(d.Report.Mismatches)),
		zap.Int("orphans", len(d.Report.Orphans)),
	)
	for _, m := range d.Report.Mismatches {
		s.logger.Warn("college marked done but image missing", zap.String("college", m.Name), zap.String("slug", m.Slug))
	}
	for _, o := range d.Report.Orphans {
		s.logger.Warn("image file matches no college", zap.String("slug", o.Slug))
	}
}

// Current returns the last loaded dataset, or ErrInternal before the first Load.
func (s *DatasetService) Current() (*Dataset, error) {
	d := s.current.Load()
	if d == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "dataset not loaded")
	}
	return d, nil
}

// Report returns the reconciliation findings of the loaded dataset.
func (s *DatasetService) Report(ctx context.Context) (*models.ReconciliationReport, error) {
	d, err := s.Current()
	if err != nil {
		return nil, err
	}
	report := d.Report
	return &report, nil
}

// Ready reports whether a dataset has been loaded.
func (s *DatasetService) Ready() bool {
	return s.current.Load() != nil
}
