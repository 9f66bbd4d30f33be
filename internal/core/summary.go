package core

import (
	"fmt"
	"time"
)

// MonthlySummary holds the totals of one calendar month.
// Balance is always Income - Expenses.
type MonthlySummary struct {
	Month    string
	Income   float64
	Expenses float64
	Balance  float64
}

// Summary is an ordered mapping from month key to MonthlySummary. Months keep
// the order in which they first appear in the input.
type Summary struct {
	order   []string
	byMonth map[string]MonthlySummary
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Summarize reduces transactions into per-month income, expenses and balance
// in a single pass. It does not modify its input.
func Summarize(transactions []Transaction) Summary {
	s := Summary{byMonth: make(map[string]MonthlySummary)}
	for _, t := range transactions {
		key := t.MonthKey()
		m, ok := s.byMonth[key]
		if !ok {
			m = MonthlySummary{Month: key}
			s.order = append(s.order, key)
		}
		if t.IsIncome() {
			m.Income += t.Amount
		} else {
			m.Expenses += -t.Amount
		}
		m.Balance = m.Income - m.Expenses
		s.byMonth[key] = m
	}
	return s
}

// Len returns the number of months.
func (s Summary) Len() int {
	return len(s.order)
}

// Get returns the summary for a YYYY-MM key.
func (s Summary) Get(month string) (MonthlySummary, bool) {
	m, ok := s.byMonth[month]
	return m, ok
}

// Months returns the monthly summaries in first-appearance order.
func (s Summary) Months() []MonthlySummary {
	out := make([]MonthlySummary, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byMonth[k])
	}
	return out
}

// CategoryExpenses sums the absolute value of negative amounts per category.
// Income and zero amounts are ignored. Categories keep first-appearance order.
func CategoryExpenses(transactions []Transaction) []CategoryAmount {
	var out []CategoryAmount
	index := map[string]int{}
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Name: t.Category})
		}
		out[i].Amount += -t.Amount
	}
	return out
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
