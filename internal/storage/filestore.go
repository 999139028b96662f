package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"spendly/internal/core"
)

// DefaultFileName mirrors the storage key the original web client used for
// its local store.
const DefaultFileName = "spendly-finance-tracker.json"

// FileStore persists the finance document as a single JSON file. Writes go
// through a temp file and rename, so a crash mid-write never leaves a
// half-written document behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(_ context.Context) (core.FinanceData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.FinanceData{}, ErrNotFound
		}
		return core.FinanceData{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var data core.FinanceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return core.FinanceData{}, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.path, err)
	}
	return data, nil
}

func (s *FileStore) Save(_ context.Context, data core.FinanceData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode finance data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".spendly-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
