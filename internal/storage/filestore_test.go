package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"spendly/internal/core"
)

func sampleData() core.FinanceData {
	return core.FinanceData{
		Transactions: []core.Transaction{
			{
				ID:          "t1",
				Amount:      decimal.RequireFromString("49.99"),
				Type:        core.Expense,
				Category:    "Shopping",
				Description: "headphones",
				Date:        core.NewDate(2025, 5, 3),
			},
			{
				ID:       "t2",
				Amount:   decimal.RequireFromString("1000"),
				Type:     core.Income,
				Category: "Salary",
				Date:     core.NewDate(2025, 5, 1),
			},
		},
		Budgets: []core.Budget{
			{ID: "b1", Category: "Shopping", Amount: decimal.RequireFromString("200"), Period: core.Monthly},
		},
		HasOnboarded: true,
	}
}

func assertSameData(t *testing.T, got, want core.FinanceData) {
	t.Helper()
	if len(got.Transactions) != len(want.Transactions) {
		t.Fatalf("transactions: got %d, want %d", len(got.Transactions), len(want.Transactions))
	}
	for i, tx := range want.Transactions {
		g := got.Transactions[i]
		if g.ID != tx.ID || !g.Amount.Equal(tx.Amount) || g.Type != tx.Type ||
			g.Category != tx.Category || g.Description != tx.Description || !g.Date.Equal(tx.Date.Time) {
			t.Fatalf("transaction %d mismatch: got %+v, want %+v", i, g, tx)
		}
	}
	if len(got.Budgets) != len(want.Budgets) {
		t.Fatalf("budgets: got %d, want %d", len(got.Budgets), len(want.Budgets))
	}
	for i, b := range want.Budgets {
		g := got.Budgets[i]
		if g.ID != b.ID || !g.Amount.Equal(b.Amount) || g.Category != b.Category || g.Period != b.Period {
			t.Fatalf("budget %d mismatch: got %+v, want %+v", i, g, b)
		}
	}
	if got.HasOnboarded != want.HasOnboarded {
		t.Fatalf("hasOnboarded: got %v, want %v", got.HasOnboarded, want.HasOnboarded)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFileName)

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	defer fs.Close()

	want := sampleData()
	if err := fs.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameData(t, got, want)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if _, err := fs.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent file, got %v", err)
	}
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := fs.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, DefaultFileName))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := fs.Save(context.Background(), sampleData()); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != DefaultFileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the document, found %v", names)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := fs.Save(ctx, sampleData()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := fs.Save(ctx, core.FinanceData{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Transactions) != 0 || len(got.Budgets) != 0 || got.HasOnboarded {
		t.Fatalf("expected empty document after overwrite, got %+v", got)
	}
}
