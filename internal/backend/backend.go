// Package backend selects and constructs the persistence backend the store
// writes through.
package backend

import (
	"fmt"

	"spendly/internal/config"
	"spendly/internal/log"
	"spendly/internal/storage"
)

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

type (
	// Type identifies a persistence backend.
	Type string

	// Config holds what is needed to construct any backend.
	Config struct {
		Type Type

		// File backend
		DataFile string

		// SQLite backend
		SQLiteDBPath string
	}

	// Factory creates storage backends from configuration.
	Factory struct {
		logger *log.Logger
	}
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		DataFile:     appConfig.DataFile,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// NewFactory creates a backend factory.
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent("backend")}
}

// Create builds the backend described by the config. The caller owns the
// returned backend and closes it on teardown.
func (f *Factory) Create(cfg Config) (storage.Backend, error) {
	switch cfg.Type {
	case FileBackend:
		fs, err := storage.NewFileStore(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		f.logger.Info("initialized file backend", "path", cfg.DataFile)
		return fs, nil

	case SQLiteBackend:
		db, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.Info("initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return db, nil

	case MemoryBackend:
		f.logger.Info("initialized memory backend")
		return storage.NewMemStore(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
