package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
	"github.com/noah-isme/college-predictor-api/pkg/export"
	"github.com/noah-isme/college-predictor-api/pkg/storage"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Export scopes.
const (
	ScopeAll      = "all"
	ScopeSelected = "selected"
)

// Exported sheet headers, in column order.
const (
	HeaderCollege        = "College"
	HeaderUniversity     = "University"
	HeaderState          = "State"
	HeaderSeats          = "Seats"
	HeaderOverview       = "Overview"
	HeaderWebsite        = "Website"
	HeaderTuitionFee     = "Tuition fee"
	HeaderHostelCharges  = "Hostel charges"
	HeaderAnnual         = "Annual"
	HeaderOneTime        = "One Time"
	HeaderTuitionPackage = "Tuition Package"
	HeaderGrandTotal     = "Grand Total"
	HeaderBudgetStatus   = "Budget Status"
)

var exportHeaders = []string{
	HeaderCollege, HeaderUniversity, HeaderState, HeaderSeats, HeaderOverview, HeaderWebsite,
	HeaderTuitionFee, HeaderHostelCharges, HeaderAnnual, HeaderOneTime, HeaderTuitionPackage,
	HeaderGrandTotal, HeaderBudgetStatus,
}

var currencyHeaders = []string{
	HeaderTuitionFee, HeaderHostelCharges, HeaderAnnual, HeaderOneTime, HeaderTuitionPackage, HeaderGrandTotal,
}

var contentTypes = map[string]string{
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:  "text/csv",
	FormatPDF:  "application/pdf",
}

type evaluator interface {
	Evaluate(ctx context.Context, query dto.SearchQuery) (*Evaluation, error)
}

type selectionReader interface {
	Names(ctx context.Context, sessionID string) ([]string, error)
}

type exportMetrics interface {
	ObserveExport(format, scope string)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, opts export.SheetOptions) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	// ResultTTL is how long rendered files are kept; it matches the signed URL TTL.
	ResultTTL time.Duration
}

// ExportDownload is an opened export ready to stream.
type ExportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
	SizeBytes   int64
	ExpiresAt   time.Time
}

// ExportService renders result subsets to files and hands out signed download links.
type ExportService struct {
	search     evaluator
	selections selectionReader
	storage    fileStorage
	signer     *storage.SignedURLSigner
	metrics    exportMetrics
	validator  *validator.Validate
	logger     *zap.Logger
	cfg        ExportConfig
	csv        csvRenderer
	pdf        pdfRenderer
	xlsx       xlsxRenderer
	newID      func() string
}

// NewExportService constructs an ExportService. metrics may be nil.
func NewExportService(search evaluator, selections selectionReader, store fileStorage, signer *storage.SignedURLSigner, metrics exportMetrics, validate *validator.Validate, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	return &ExportService{
		search:     search,
		selections: selections,
		storage:    store,
		signer:     signer,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		cfg:        cfg,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		xlsx:       export.NewXLSXExporter(),
		newID:      uuid.NewString,
	}
}

// Create renders the requested subset and returns its signed download link.
func (s *ExportService) Create(ctx context.Context, sessionID string, req dto.ExportRequest) (*dto.ExportResponse, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.Format == "" {
		req.Format = FormatXLSX
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	eval, err := s.search.Evaluate(ctx, req.Query())
	if err != nil {
		return nil, err
	}
	rows := eval.Results
	if req.Scope == ScopeSelected {
		names, err := s.selections.Names(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		rows = selectedRows(eval.Qualifying, names)
		if len(rows) == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "select one or more colleges to export")
		}
	}

	dataset := BuildExportDataset(rows)
	payload, err := s.render(dataset, req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.pruneExpired()
	id := s.newID()
	filename := fmt.Sprintf("%s_%s.%s", sanitizeFilename(req.ClientName), req.Scope, req.Format)
	relPath, err := s.storage.Save(id+"/"+filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}
	if s.metrics != nil {
		s.metrics.ObserveExport(req.Format, req.Scope)
	}
	s.logger.Info("export created",
		zap.String("export_id", id),
		zap.String("format", req.Format),
		zap.String("scope", req.Scope),
		zap.Int("rows", len(rows)),
	)

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.ExportResponse{
		ID:        id,
		Filename:  filename,
		Format:    req.Format,
		Rows:      len(rows),
		URL:       fmt.Sprintf("%s/export/%s", prefix, token),
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Download resolves a signed token to the stored file.
func (s *ExportService) Download(ctx context.Context, token string) (*ExportDownload, error) {
	_, relPath, expiresAt, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrExpired, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	filename := filepath.Base(relPath)
	contentType := contentTypes[strings.TrimPrefix(filepath.Ext(filename), ".")]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ExportDownload{
		File:        file,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   info.Size(),
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *ExportService) render(data export.Dataset, req dto.ExportRequest) ([]byte, error) {
	switch req.Format {
	case FormatCSV:
		return s.csv.Render(data)
	case FormatPDF:
		return s.pdf.Render(data, fmt.Sprintf("Colleges for %s", req.ClientName))
	case FormatXLSX:
		return s.xlsx.Render(data, export.SheetOptions{
			SheetName:          req.ClientName,
			LightHeaderThrough: HeaderWebsite,
			StatusColumn:       HeaderBudgetStatus,
			StatusAlert:        models.BudgetStatusExceeding.Label(),
			CurrencyColumns:    currencyHeaders,
		})
	default:
		return nil, fmt.Errorf("unsupported format %s", req.Format)
	}
}

func (s *ExportService) pruneExpired() {
	deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("failed to prune expired exports", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Debug("pruned expired exports", zap.Int("files", len(deleted)))
	}
}

// BuildExportDataset maps classified rows onto the exported sheet columns.
func BuildExportDataset(rows []models.ClassifiedCollege) export.Dataset {
	out := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]interface{}, 0, len(rows))}
	for _, c := range rows {
		out.Rows = append(out.Rows, map[string]interface{}{
			HeaderCollege:        c.Name,
			HeaderUniversity:     c.UniversityName,
			HeaderState:          c.State,
			HeaderSeats:          c.Seats,
			HeaderOverview:       c.Overview,
			HeaderWebsite:        c.Website,
			HeaderTuitionFee:     c.TuitionFee,
			HeaderHostelCharges:  c.HostelChargesPA,
			HeaderAnnual:         c.Annual,
			HeaderOneTime:        c.OneTime,
			HeaderTuitionPackage: c.TuitionPackage,
			HeaderGrandTotal:     c.GrandTotal,
			HeaderBudgetStatus:   c.BudgetStatus.Label(),
		})
	}
	return out
}

func selectedRows(qualifying []models.ClassifiedCollege, names []string) []models.ClassifiedCollege {
	chosen := make(map[string]struct{}, len(names))
	for _, name := range names {
		chosen[name] = struct{}{}
	}
	out := make([]models.ClassifiedCollege, 0, len(names))
	for _, row := range qualifying {
		if _, ok := chosen[row.Name]; ok {
			out = append(out, row)
		}
	}
	return out
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFilename(raw string) string {
	cleaned := strings.Trim(unsafeFilename.ReplaceAllString(raw, "_"), "._")
	if cleaned == "" {
		return "export"
	}
	if len(cleaned) > 80 {
		return cleaned[:80]
	}
	return cleaned
}
