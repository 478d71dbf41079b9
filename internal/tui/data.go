package tui

import (
	"github.com/kmellea/moneylens/internal/model"
	"github.com/kmellea/moneylens/internal/report"
	"github.com/kmellea/moneylens/internal/store"
)

// Snapshot holds every aggregate the dashboard tabs render. It is built in
// one pass so tab switches and toggles never touch the database.
type Snapshot struct {
	Overview    model.Overview
	ExpenseMain []model.CategoryTotal
	ExpenseSub  []model.CategoryTotal
	IncomeMain  []model.CategoryTotal
	IncomeSub   []model.CategoryTotal
	Averages    []model.CategoryAverage
	Trend       model.Pivot // expenses by main category across the window
}

// loadSnapshot opens the ledger and runs all dashboard queries for r.
func loadSnapshot(dbPath string, r model.Range) (*Snapshot, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	svc := report.New(st)
	snap := &Snapshot{}

	if snap.Overview, err = svc.Overview(r); err != nil {
		return nil, err
	}
	if snap.ExpenseMain, err = svc.Categories(model.KindExpense, true, r); err != nil {
		return nil, err
	}
	if snap.ExpenseSub, err = svc.Categories(model.KindExpense, false, r); err != nil {
		return nil, err
	}
	if snap.IncomeMain, err = svc.Categories(model.KindIncome, true, r); err != nil {
		return nil, err
	}
	if snap.IncomeSub, err = svc.Categories(model.KindIncome, false, r); err != nil {
		return nil, err
	}
	if snap.Averages, err = svc.Averages(r); err != nil {
		return nil, err
	}
	if snap.Trend, err = svc.Trends(model.KindExpense, true, 0, r); err != nil {
		return nil, err
	}
	return snap, nil
}

// categories picks the list matching the categories tab toggles.
func (s *Snapshot) categories(income, main bool) []model.CategoryTotal {
	switch {
	case income && main:
		return s.IncomeMain
	case income:
		return s.IncomeSub
	case main:
		return s.ExpenseMain
	default:
		return s.ExpenseSub
	}
}
