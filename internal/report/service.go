// Package report shapes ledger aggregates into renderable results:
// overviews, shares, pivots and per-month distributions.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/store"
)

// Service runs analysis queries against one ledger store.
type Service struct {
	store *store.Store
}

// New returns a Service reading from st.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Overview assembles the headline numbers for a range: monthly flows,
// overall and average totals, and the month with the highest spending.
func (s *Service) Overview(r model.Range) (model.Overview, error) {
	var ov model.Overview

	flows, err := s.store.MonthlyFlows(r)
	if err != nil {
		return ov, err
	}
	ov.Flows = flows
	ov.ActiveMonths = len(flows)

	for _, f := range flows {
		ov.TotalIncome = ov.TotalIncome.Add(f.Income)
		ov.TotalExpenses = ov.TotalExpenses.Add(f.Expenses)
		if f.Expenses.GreaterThan(ov.TopExpenseMonth.Total) {
			ov.TopExpenseMonth = model.MonthTotal{Month: f.Month, Total: f.Expenses}
		}
	}

	if ov.AvgMonthlyIncome, err = s.store.AverageMonthly(model.KindIncome, r); err != nil {
		return ov, err
	}
	if ov.AvgMonthlyExpense, err = s.store.AverageMonthly(model.KindExpense, r); err != nil {
		return ov, err
	}
	if ov.Transactions, err = s.store.CountTransactions(r); err != nil {
		return ov, err
	}
	return ov, nil
}

// Categories returns cleaned per-category totals with each row's share of
// the overall total. rollup groups subcategories under their parent.
func (s *Service) Categories(kind model.Kind, rollup bool, r model.Range) ([]model.CategoryTotal, error) {
	totals, err := s.store.CategoryTotals(kind, rollup, r)
	if err != nil {
		return nil, err
	}

	var grand decimal.Decimal
	for _, ct := range totals {
		grand = grand.Add(ct.Total)
	}
	for i := range totals {
		totals[i].Category = categoryName(totals[i].Category)
		if grand.Sign() > 0 {
			totals[i].Share, _ = totals[i].Total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
		}
	}
	return totals, nil
}

// Averages returns the average monthly expense per main category.
func (s *Service) Averages(r model.Range) ([]model.CategoryAverage, error) {
	avgs, err := s.store.AverageExpenseByMainCategory(r)
	if err != nil {
		return nil, err
	}
	for i := range avgs {
		avgs[i].Category = categoryName(avgs[i].Category)
	}
	return avgs, nil
}

// Trends builds the month-by-category pivot for a kind. top > 0 folds all
// but the top columns into "Other".
func (s *Service) Trends(kind model.Kind, rollup bool, top int, r model.Range) (model.Pivot, error) {
	rows, err := s.store.MonthlyCategoryTotals(kind, rollup, r)
	if err != nil {
		return model.Pivot{}, err
	}
	for i := range rows {
		rows[i].Category = categoryName(rows[i].Category)
	}
	return model.BuildPivot(rows).FoldTop(top), nil
}

// Methods returns cleaned per-payment-method totals for a kind.
func (s *Service) Methods(kind model.Kind, r model.Range) ([]model.MethodTotal, error) {
	totals, err := s.store.MethodTotals(kind, r)
	if err != nil {
		return nil, err
	}
	for i := range totals {
		totals[i].Method = methodName(totals[i].Method)
	}
	return totals, nil
}

// MonthDistribution holds one month's expense slices for pie rendering.
type MonthDistribution struct {
	Month  string
	Totals []model.CategoryTotal
}

// Distribution returns per-month expense breakdowns at subcategory level,
// months ascending, slices largest first. Non-positive totals are dropped
// and months left with nothing are skipped, so every result can render as
// a pie. lastN > 0 keeps only the trailing months.
func (s *Service) Distribution(r model.Range, lastN int) ([]MonthDistribution, error) {
	rows, err := s.store.MonthlyCategoryTotals(model.KindExpense, false, r)
	if err != nil {
		return nil, err
	}

	var dists []MonthDistribution
	for _, row := range rows {
		if row.Total.Sign() <= 0 {
			continue
		}
		ct := model.CategoryTotal{Category: categoryName(row.Category), Total: row.Total}
		if n := len(dists); n > 0 && dists[n-1].Month == row.Month {
			dists[n-1].Totals = append(dists[n-1].Totals, ct)
			continue
		}
		dists = append(dists, MonthDistribution{Month: row.Month, Totals: []model.CategoryTotal{ct}})
	}

	if lastN > 0 && len(dists) > lastN {
		dists = dists[len(dists)-lastN:]
	}
	return dists, nil
}

// Transactions lists recent rows with cleaned display names.
func (s *Service) Transactions(r model.Range, limit int) ([]model.Transaction, error) {
	txns, err := s.store.Transactions(r, limit)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		txns[i].Category = categoryName(txns[i].Category)
		txns[i].MainCategory = CleanName(txns[i].MainCategory)
		txns[i].Asset = CleanName(txns[i].Asset)
	}
	return txns, nil
}
