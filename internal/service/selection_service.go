package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/identity"
	"github.com/noah-isme/college-predictor-api/internal/models"
	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
)

type sessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// SelectionService keeps the per-session list of selected college names.
type SelectionService struct {
	store     sessionStore
	dataset   datasetProvider
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSelectionService constructs the selection service.
func NewSelectionService(store sessionStore, dataset datasetProvider, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{store: store, dataset: dataset, validator: validate, logger: logger, now: time.Now}
}

// Names returns the selected college names in selection order.
func (s *SelectionService) Names(ctx context.Context, sessionID string) ([]string, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Selected, nil
}

// List returns the session's selections.
func (s *SelectionService) List(ctx context.Context, sessionID string) (*dto.SelectionResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toSelectionResponse(session), nil
}

// Add selects a college by its registry name. Adding twice is a no-op.
func (s *SelectionService) Add(ctx context.Context, sessionID string, req dto.SelectionRequest) (*dto.SelectionResponse, error) {
	req.College = strings.TrimSpace(req.College)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "college is required")
	}
	dataset, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}
	if _, ok := dataset.ByName(req.College); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, name := range session.Selected {
		if name == req.College {
			return toSelectionResponse(session), nil
		}
	}
	session.Selected = append(session.Selected, req.College)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return toSelectionResponse(session), nil
}

// Remove drops every selected name with the given slug. Removing an unselected college is a no-op.
func (s *SelectionService) Remove(ctx context.Context, sessionID, slug string) (*dto.SelectionResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := session.Selected[:0]
	for _, name := range session.Selected {
		if identity.Slugify(name) != slug {
			kept = append(kept, name)
		}
	}
	if len(kept) == len(session.Selected) {
		return toSelectionResponse(session), nil
	}
	session.Selected = kept
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return toSelectionResponse(session), nil
}

// Clear empties the session's selections.
func (s *SelectionService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear selections")
	}
	return nil
}

func (s *SelectionService) load(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session id required")
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return &models.Session{ID: sessionID, Selected: []string{}}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selections")
	}
	if session.Selected == nil {
		session.Selected = []string{}
	}
	return session, nil
}

func (s *SelectionService) save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Warn("failed to store selections", zap.String("session_id", session.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store selections")
	}
	return nil
}

func toSelectionResponse(session *models.Session) *dto.SelectionResponse {
	items := make([]dto.SelectionItem, 0, len(session.Selected))
	for _, name := range session.Selected {
		items = append(items, dto.SelectionItem{College: name, Slug: identity.Slugify(name)})
	}
	return &dto.SelectionResponse{SessionID: session.ID, Items: items, Count: len(items)}
}
