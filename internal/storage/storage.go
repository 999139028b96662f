// Package storage provides the persistence backends for the finance
// document. Every backend reads and writes FinanceData as a whole document;
// there are no partial or field-level writes.
package storage

import (
	"context"
	"errors"

	"spendly/internal/core"
)

var (
	// ErrNotFound means no document has been persisted yet. Callers treat
	// this as "first run" and start from the empty default.
	ErrNotFound = errors.New("no persisted data")

	// ErrCorrupt means a document exists but could not be decoded. Callers
	// recover by starting from the empty default and surfacing a notice.
	ErrCorrupt = errors.New("persisted data is corrupt")
)

// Backend is a whole-document store for FinanceData.
type Backend interface {
	Load(ctx context.Context) (core.FinanceData, error)
	Save(ctx context.Context, data core.FinanceData) error
	Close() error
}
