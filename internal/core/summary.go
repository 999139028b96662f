package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	StatusOK       UsageStatus = "ok"
	StatusWarning  UsageStatus = "warning"
	StatusExceeded UsageStatus = "exceeded"
)

type (
	// UsageStatus is the three-tier budget health indicator.
	UsageStatus string

	// Summary holds the dashboard headline totals.
	Summary struct {
		TotalIncome     decimal.Decimal `json:"totalIncome"`
		TotalExpenses   decimal.Decimal `json:"totalExpenses"`
		TotalSavings    decimal.Decimal `json:"totalSavings"`
		TotalBudget     decimal.Decimal `json:"totalBudget"`
		BudgetRemaining decimal.Decimal `json:"budgetRemaining"`
	}

	// CategoryAmount is an expense total aggregated by category name.
	CategoryAmount struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// BudgetStatus reports how far spending has progressed against one
	// budget. Percentage is capped at 100 for display; actual overspend is
	// read from Spent vs Limit, not from Percentage.
	BudgetStatus struct {
		BudgetID   string          `json:"budgetId"`
		Category   string          `json:"category"`
		Spent      decimal.Decimal `json:"spent"`
		Limit      decimal.Decimal `json:"limit"`
		Percentage int             `json:"percentage"`
		Status     UsageStatus     `json:"status"`
	}
)

// Summarize computes the headline totals for a snapshot. Savings may be
// negative; budget remaining is floored at zero.
func Summarize(data FinanceData) Summary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, t := range data.Transactions {
		switch t.Type {
		case Income:
			totalIncome = totalIncome.Add(t.Amount)
		case Expense:
			totalExpenses = totalExpenses.Add(t.Amount)
		}
	}

	totalBudget := decimal.Zero
	for _, b := range data.Budgets {
		totalBudget = totalBudget.Add(b.Amount)
	}

	remaining := totalBudget.Sub(totalExpenses)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Summary{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		TotalSavings:    totalIncome.Sub(totalExpenses),
		TotalBudget:     totalBudget,
		BudgetRemaining: remaining,
	}
}

// ExpensesByCategory folds expense transactions into per-category totals.
// Categories without expenses are omitted, not zero-filled. The result is
// ordered by descending amount, category name breaking ties, so output is
// deterministic for identical snapshots.
func ExpensesByCategory(data FinanceData) []CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	for _, t := range data.Transactions {
		if t.Type != Expense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BudgetUsage evaluates every budget against the all-time expense total of
// its category. The declared monthly/yearly period does not scope the spend
// window. Duplicate budgets for one category are each evaluated independently
// against the full category total, not split between them. A zero or negative
// limit reports 0% rather than failing.
func BudgetUsage(data FinanceData) []BudgetStatus {
	spentByCategory := make(map[string]decimal.Decimal)
	for _, t := range data.Transactions {
		if t.Type != Expense {
			continue
		}
		spentByCategory[t.Category] = spentByCategory[t.Category].Add(t.Amount)
	}

	out := make([]BudgetStatus, 0, len(data.Budgets))
	for _, b := range data.Budgets {
		spent := spentByCategory[b.Category]
		pct := usagePercentage(spent, b.Amount)
		out = append(out, BudgetStatus{
			BudgetID:   b.ID,
			Category:   b.Category,
			Spent:      spent,
			Limit:      b.Amount,
			Percentage: pct,
			Status:     StatusFor(pct),
		})
	}
	return out
}

// OverallUsage reports aggregate spending against the sum of all budgets,
// with the same formula and thresholds as the per-budget meters. The second
// return value is false when no budgets are defined.
func OverallUsage(data FinanceData) (BudgetStatus, bool) {
	if len(data.Budgets) == 0 {
		return BudgetStatus{}, false
	}
	s := Summarize(data)
	pct := usagePercentage(s.TotalExpenses, s.TotalBudget)
	return BudgetStatus{
		Spent:      s.TotalExpenses,
		Limit:      s.TotalBudget,
		Percentage: pct,
		Status:     StatusFor(pct),
	}, true
}

// StatusFor maps a usage percentage to its status tier: exceeded at 100 and
// above, warning from 80, ok below.
func StatusFor(percentage int) UsageStatus {
	switch {
	case percentage >= 100:
		return StatusExceeded
	case percentage >= 80:
		return StatusWarning
	default:
		return StatusOK
	}
}

// usagePercentage is min(round(spent/limit*100), 100), half rounded up.
func usagePercentage(spent, limit decimal.Decimal) int {
	if !limit.IsPositive() {
		return 0
	}
	pct := spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}
