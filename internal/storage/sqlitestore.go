package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"spendly/internal/core"

	_ "modernc.org/sqlite"
)

const onboardedKey = "has_onboarded"

// SQLiteStore persists the finance document in a SQLite database. The
// whole-document contract is kept: Save rewrites every row inside one
// transaction and Load reads them all back in insertion order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (core.FinanceData, error) {
	var data core.FinanceData

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, type, category, description, date FROM transactions ORDER BY seq`)
	if err != nil {
		return core.FinanceData{}, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t core.Transaction
		var amount, date string
		if err := rows.Scan(&t.ID, &amount, &t.Type, &t.Category, &t.Description, &date); err != nil {
			return core.FinanceData{}, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return core.FinanceData{}, fmt.Errorf("%w: transaction %s amount %q", ErrCorrupt, t.ID, amount)
		}
		if t.Date, err = core.ParseDate(date); err != nil {
			return core.FinanceData{}, fmt.Errorf("%w: transaction %s date %q", ErrCorrupt, t.ID, date)
		}
		data.Transactions = append(data.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return core.FinanceData{}, fmt.Errorf("iterate transactions: %w", err)
	}

	budgetRows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount, period FROM budgets ORDER BY seq`)
	if err != nil {
		return core.FinanceData{}, fmt.Errorf("query budgets: %w", err)
	}
	defer budgetRows.Close()

	for budgetRows.Next() {
		var b core.Budget
		var amount string
		if err := budgetRows.Scan(&b.ID, &b.Category, &amount, &b.Period); err != nil {
			return core.FinanceData{}, fmt.Errorf("scan budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return core.FinanceData{}, fmt.Errorf("%w: budget %s amount %q", ErrCorrupt, b.ID, amount)
		}
		data.Budgets = append(data.Budgets, b)
	}
	if err := budgetRows.Err(); err != nil {
		return core.FinanceData{}, fmt.Errorf("iterate budgets: %w", err)
	}

	var onboarded string
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, onboardedKey).Scan(&onboarded)
	switch {
	case err == sql.ErrNoRows:
		// First run with this database: nothing persisted yet.
		if data.Transactions == nil && data.Budgets == nil {
			return core.FinanceData{}, ErrNotFound
		}
	case err != nil:
		return core.FinanceData{}, fmt.Errorf("query settings: %w", err)
	default:
		data.HasOnboarded = onboarded == "1"
	}

	return data, nil
}

func (s *SQLiteStore) Save(ctx context.Context, data core.FinanceData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}

	for _, t := range data.Transactions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, amount, type, category, description, date) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Amount.String(), string(t.Type), t.Category, t.Description, t.Date.String())
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	for _, b := range data.Budgets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (id, category, amount, period) VALUES (?, ?, ?, ?)`,
			b.ID, b.Category, b.Amount.String(), string(b.Period))
		if err != nil {
			return fmt.Errorf("insert budget %s: %w", b.ID, err)
		}
	}

	onboarded := "0"
	if data.HasOnboarded {
		onboarded = "1"
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		onboardedKey, onboarded)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
