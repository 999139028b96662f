// Package store owns the canonical finance document: it loads it once from a
// storage backend, applies mutations, and writes the whole document back
// after every change. The in-memory state stays authoritative even when a
// write fails.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"spendly/internal/core"
	"spendly/internal/log"
	"spendly/internal/storage"
)

// ErrPersist wraps backend write failures. The mutation that triggered the
// write has already been applied in memory and is not rolled back; callers
// surface a notice and carry on.
var ErrPersist = errors.New("persist failed")

// Store is the single source of truth for FinanceData. Mutations are
// serialized by the caller's event loop; the mutex only keeps the type safe
// if a caller strays from that contract.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	logger  *log.Logger
	data    core.FinanceData
}

func New(backend storage.Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		backend: backend,
		logger:  logger.WithComponent("store"),
	}
}

// Load reads the persisted document. A missing document initializes the
// empty default silently. A corrupt or unreadable document also falls back
// to the empty default, but the error is returned so the caller can show a
// notice; the store is usable either way.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Load(ctx)
	if err != nil {
		s.data = core.FinanceData{}
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info("no persisted data, starting empty")
			return nil
		}
		s.logger.Error("load failed, starting empty", "error", err)
		return fmt.Errorf("load finance data: %w", err)
	}

	s.data = data
	s.logger.Info("loaded finance data",
		"transactions", len(data.Transactions),
		"budgets", len(data.Budgets))
	return nil
}

// AddTransaction validates the record, assigns it a fresh id, appends it and
// persists. The incoming ID field is ignored.
func (s *Store) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	s.data.Transactions = append(s.data.Transactions, t)
	s.logger.Debug("transaction added", "id", t.ID, "type", t.Type, "category", t.Category)
	return t, s.persist(ctx)
}

// UpdateTransaction replaces the entry matching the id. Unknown ids are a
// silent no-op: nothing is inserted and no error is returned.
func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID == t.ID {
			s.data.Transactions[i] = t
			s.logger.Debug("transaction updated", "id", t.ID)
			return s.persist(ctx)
		}
	}
	return nil
}

// DeleteTransaction removes the entry matching the id. Deleting an unknown
// id is idempotent: a second call observes the same no-op as the first.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID == id {
			s.data.Transactions = append(s.data.Transactions[:i], s.data.Transactions[i+1:]...)
			s.logger.Debug("transaction deleted", "id", id)
			return s.persist(ctx)
		}
	}
	return nil
}

// AddBudget validates the record, assigns it a fresh id, appends it and
// persists. Duplicate categories are allowed by the data model; the
// aggregation layer evaluates each independently.
func (s *Store) AddBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	s.data.Budgets = append(s.data.Budgets, b)
	s.logger.Debug("budget added", "id", b.ID, "category", b.Category)
	return b, s.persist(ctx)
}

// UpdateBudget replaces the entry matching the id, no-op on unknown ids.
func (s *Store) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Budgets {
		if s.data.Budgets[i].ID == b.ID {
			s.data.Budgets[i] = b
			s.logger.Debug("budget updated", "id", b.ID)
			return s.persist(ctx)
		}
	}
	return nil
}

// DeleteBudget removes the entry matching the id, no-op on unknown ids.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Budgets {
		if s.data.Budgets[i].ID == id {
			s.data.Budgets = append(s.data.Budgets[:i], s.data.Budgets[i+1:]...)
			s.logger.Debug("budget deleted", "id", id)
			return s.persist(ctx)
		}
	}
	return nil
}

// CompleteOnboarding marks the onboarding flow as done and persists.
func (s *Store) CompleteOnboarding(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.HasOnboarded {
		return nil
	}
	s.data.HasOnboarded = true
	return s.persist(ctx)
}

// persist writes the whole document. Failures are reported but the in-memory
// mutation stands; no retry is attempted. Callers must hold the mutex.
func (s *Store) persist(ctx context.Context) error {
	if err := s.backend.Save(ctx, s.data); err != nil {
		s.logger.Error("persist failed, in-memory state remains authoritative", "error", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Snapshot returns a deep copy of the current document for aggregation.
func (s *Store) Snapshot() core.FinanceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Transactions returns a copy of the transaction sequence in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.data.Transactions...)
}

// Budgets returns a copy of the budget sequence in insertion order.
func (s *Store) Budgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.data.Budgets...)
}

func (s *Store) HasOnboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.HasOnboarded
}

// Summarize computes the headline totals for the current snapshot.
func (s *Store) Summarize() core.Summary {
	return core.Summarize(s.Snapshot())
}

// ExpensesByCategory aggregates expenses by category for the current snapshot.
func (s *Store) ExpensesByCategory() []core.CategoryAmount {
	return core.ExpensesByCategory(s.Snapshot())
}

// IncomeVsExpenseByMonth buckets the current snapshot into the twelve months
// ending at now.
func (s *Store) IncomeVsExpenseByMonth(now time.Time) core.MonthlySeries {
	return core.IncomeVsExpenseByMonth(s.Snapshot(), now)
}

// BudgetUsage evaluates every budget against the current snapshot.
func (s *Store) BudgetUsage() []core.BudgetStatus {
	return core.BudgetUsage(s.Snapshot())
}

// OverallUsage reports aggregate budget usage for the current snapshot.
func (s *Store) OverallUsage() (core.BudgetStatus, bool) {
	return core.OverallUsage(s.Snapshot())
}
