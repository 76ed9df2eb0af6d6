// Package bootstrap builds the data sources and session store selected by configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-predictor-api/internal/models"
	"github.com/noah-isme/college-predictor-api/internal/repository"
	"github.com/noah-isme/college-predictor-api/pkg/cache"
	"github.com/noah-isme/college-predictor-api/pkg/config"
	"github.com/noah-isme/college-predictor-api/pkg/database"
)

// CollegeSource loads the college registry.
type CollegeSource interface {
	Load(ctx context.Context) ([]models.College, error)
}

// SessionStore persists visitor selections.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// Sources are the three tables merged at startup.
type Sources struct {
	Colleges CollegeSource
	Statuses *repository.ImageStatusRepository
	Images   *repository.ImageDirectory
}

// NewSources opens the configured registry source. The returned func releases it.
func NewSources(ctx context.Context, cfg config.DataConfig, db config.DatabaseConfig, logger *zap.Logger) (*Sources, func(), error) {
	sources := &Sources{
		Statuses: repository.NewImageStatusRepository(cfg.ImageStatusPath),
		Images:   repository.NewImageDirectory(cfg.ImagesDir),
	}
	switch cfg.CollegeSource {
	case "", config.SourceCSV:
		sources.Colleges = repository.NewCollegeCSVRepository(cfg.CollegeDataPath)
		logger.Info("college registry source", zap.String("source", config.SourceCSV), zap.String("path", cfg.CollegeDataPath))
		return sources, func() {}, nil
	case config.SourcePostgres:
		conn, err := database.NewPostgres(ctx, db)
		if err != nil {
			return nil, nil, fmt.Errorf("connect college registry: %w", err)
		}
		sources.Colleges = repository.NewCollegeSQLRepository(conn)
		logger.Info("college registry source", zap.String("source", config.SourcePostgres), zap.String("database", db.Name))
		return sources, func() { _ = conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown college source %q", cfg.CollegeSource)
	}
}

// NewSessionStore returns the configured selection store. The returned func releases it.
func NewSessionStore(ctx context.Context, cfg config.SessionConfig, redisCfg config.RedisConfig, logger *zap.Logger) (SessionStore, func(), error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	switch cfg.Store {
	case "", config.SessionStoreMemory:
		return repository.NewMemorySessionRepository(ttl), func() {}, nil
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect session store: %w", err)
		}
		store := repository.NewRedisSessionRepository(client, ttl, logger)
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
