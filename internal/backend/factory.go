package backend

import (
	"fmt"

	"sumstra/internal/log"
	"sumstra/internal/records/memory"
	"sumstra/internal/records/postgrest"
	"sumstra/internal/storage"
)

// Factory creates repositories based on configuration.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

// Create builds the repository selected by cfg.
func (f *Factory) Create(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Repository: memory.New()}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Repository: repo, Cleanup: repo.Close}, nil

	case PostgRESTBackend:
		opts := []postgrest.Option{}
		if cfg.AccessToken != "" {
			opts = append(opts, postgrest.WithAccessToken(cfg.AccessToken))
		}
		client := postgrest.New(cfg.PostgRESTURL, cfg.PostgRESTAPIKey, opts...)
		f.logger.Info("Initialized PostgREST backend", "url", cfg.PostgRESTURL)
		return &Result{Repository: client}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
