// Command spendly loads the finance store and renders the dashboard views to
// stdout. It is a thin presentation shell over the core library: all logic
// lives in internal/core and internal/store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"spendly/internal/backend"
	"spendly/internal/config"
	applog "spendly/internal/log"
	"spendly/internal/store"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	applog.SetDefault(logger)

	factory := backend.NewFactory(logger)
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", "error", err)
		os.Exit(1)
	}

	be, err := factory.Create(backendCfg)
	if err != nil {
		logger.Error("failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer be.Close()

	ctx := context.Background()
	st := store.New(be, logger)
	if err := st.Load(ctx); err != nil {
		// Recoverable: the store fell back to the empty default.
		fmt.Fprintln(os.Stderr, "notice: could not load saved data, starting with empty data")
	}

	renderDashboard(st)
}

func newLogger(cfg *config.Config) *applog.Logger {
	logCfg := applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "spendly",
	}
	if cfg.LogFormat == "json" {
		logCfg.Handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logCfg.Level})
	} else {
		logCfg.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logCfg.Level})
	}
	return applog.New(logCfg)
}

func renderDashboard(st *store.Store) {
	summary := st.Summarize()

	fmt.Println("Summary")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Total income:\t%s\n", summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "  Total expenses:\t%s\n", summary.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "  Total savings:\t%s\n", summary.TotalSavings.StringFixed(2))
	fmt.Fprintf(w, "  Budget remaining:\t%s\n", summary.BudgetRemaining.StringFixed(2))
	w.Flush()

	if byCategory := st.ExpensesByCategory(); len(byCategory) > 0 {
		fmt.Println("\nExpenses by category")
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, c := range byCategory {
			fmt.Fprintf(w, "  %s\t%s\n", c.Category, c.Amount.StringFixed(2))
		}
		w.Flush()
	}

	series := st.IncomeVsExpenseByMonth(time.Now())
	fmt.Println("\nIncome vs expenses, last 12 months")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, label := range series.Labels {
		fmt.Fprintf(w, "  %s\t+%s\t-%s\n", label,
			series.Income[i].StringFixed(2), series.Expense[i].StringFixed(2))
	}
	w.Flush()

	if overall, ok := st.OverallUsage(); ok {
		fmt.Println("\nBudgets")
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "  Overall\t%s / %s\t%d%%\t%s\n",
			overall.Spent.StringFixed(2), overall.Limit.StringFixed(2),
			overall.Percentage, overall.Status)
		for _, u := range st.BudgetUsage() {
			fmt.Fprintf(w, "  %s\t%s / %s\t%d%%\t%s\n",
				u.Category, u.Spent.StringFixed(2), u.Limit.StringFixed(2),
				u.Percentage, u.Status)
		}
		w.Flush()
	}
}
