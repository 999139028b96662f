package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
	GranularityWeekly  Granularity = "weekly"
)

// maxWeeklyBuckets bounds the weekly view to the most recent twelve weeks.
const maxWeeklyBuckets = 12

type (
	// Granularity selects the bucket size for SeriesByRange.
	Granularity string

	// MonthlySeries is a positionally aligned chart series: Labels[i]
	// describes the bucket whose totals are Income[i] and Expense[i].
	MonthlySeries struct {
		Labels  []string          `json:"labels"`
		Income  []decimal.Decimal `json:"incomeData"`
		Expense []decimal.Decimal `json:"expenseData"`
	}
)

func (g Granularity) IsValid() bool {
	switch g {
	case GranularityMonthly, GranularityYearly, GranularityWeekly:
		return true
	default:
		return false
	}
}

// IncomeVsExpenseByMonth buckets transactions into the twelve calendar months
// ending at the month containing now. The window is inclusive: eleven months
// back through the current month. Transactions dated outside the window are
// ignored. now is an explicit parameter so the bucketing is testable without
// touching the system clock.
func IncomeVsExpenseByMonth(data FinanceData, now time.Time) MonthlySeries {
	series := newZeroSeries(12)
	index := make(map[string]int, 12)

	first := monthStart(now).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		month := first.AddDate(0, i, 0)
		series.Labels[i] = month.Format("Jan")
		index[month.Format("2006-01")] = i
	}

	for _, t := range data.Transactions {
		i, ok := index[t.Date.Format("2006-01")]
		if !ok {
			continue
		}
		series.add(i, t)
	}
	return series
}

// SeriesByRange buckets transactions between from and to (inclusive) at the
// requested granularity. Monthly buckets carry "Jan 2006" labels, yearly
// buckets the year, weekly buckets a "Jan 2 - Jan 8" day range. Weekly
// buckets are trailing seven-day windows anchored at to, capped at the most
// recent twelve. An invalid granularity yields an empty series.
func SeriesByRange(data FinanceData, from, to Date, granularity Granularity) MonthlySeries {
	if to.Before(from.Time) {
		return newZeroSeries(0)
	}

	switch granularity {
	case GranularityMonthly:
		return monthlyRange(data, from, to)
	case GranularityYearly:
		return yearlyRange(data, from, to)
	case GranularityWeekly:
		return weeklyRange(data, from, to)
	default:
		return newZeroSeries(0)
	}
}

func monthlyRange(data FinanceData, from, to Date) MonthlySeries {
	first := monthStart(from.Time)
	last := monthStart(to.Time)

	n := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
	series := newZeroSeries(n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		month := first.AddDate(0, i, 0)
		series.Labels[i] = month.Format("Jan 2006")
		index[month.Format("2006-01")] = i
	}

	for _, t := range data.Transactions {
		if !inRange(t.Date, from, to) {
			continue
		}
		if i, ok := index[t.Date.Format("2006-01")]; ok {
			series.add(i, t)
		}
	}
	return series
}

func yearlyRange(data FinanceData, from, to Date) MonthlySeries {
	firstYear := from.Year()
	n := to.Year() - firstYear + 1
	series := newZeroSeries(n)
	for i := 0; i < n; i++ {
		series.Labels[i] = time.Date(firstYear+i, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
	}

	for _, t := range data.Transactions {
		if !inRange(t.Date, from, to) {
			continue
		}
		series.add(t.Date.Year()-firstYear, t)
	}
	return series
}

func weeklyRange(data FinanceData, from, to Date) MonthlySeries {
	days := int(to.Sub(from.Time).Hours()/24) + 1
	n := (days + 6) / 7
	if n > maxWeeklyBuckets {
		n = maxWeeklyBuckets
	}

	series := newZeroSeries(n)
	starts := make([]Date, n)
	ends := make([]Date, n)
	for i := 0; i < n; i++ {
		// Bucket i covers the seven days ending (n-i-1) weeks before to.
		end := DateOf(to.AddDate(0, 0, -(n-i-1)*7))
		start := DateOf(end.AddDate(0, 0, -6))
		starts[i] = start
		ends[i] = end
		series.Labels[i] = start.Format("Jan 2") + " - " + end.Format("Jan 2")
	}

	for _, t := range data.Transactions {
		if !inRange(t.Date, from, to) {
			continue
		}
		for i := 0; i < n; i++ {
			if inRange(t.Date, starts[i], ends[i]) {
				series.add(i, t)
				break
			}
		}
	}
	return series
}

func newZeroSeries(n int) MonthlySeries {
	series := MonthlySeries{
		Labels:  make([]string, n),
		Income:  make([]decimal.Decimal, n),
		Expense: make([]decimal.Decimal, n),
	}
	for i := 0; i < n; i++ {
		series.Income[i] = decimal.Zero
		series.Expense[i] = decimal.Zero
	}
	return series
}

func (s *MonthlySeries) add(i int, t Transaction) {
	switch t.Type {
	case Income:
		s.Income[i] = s.Income[i].Add(t.Amount)
	case Expense:
		s.Expense[i] = s.Expense[i].Add(t.Amount)
	}
}

func monthStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func inRange(d, from, to Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}
