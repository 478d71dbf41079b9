package model

import "github.com/shopspring/decimal"

// MonthFlow holds the income/expense totals for one calendar month.
type MonthFlow struct {
	Month    string // "YYYY-MM"
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses for the month.
func (f MonthFlow) Net() decimal.Decimal {
	return f.Income.Sub(f.Expenses)
}

// MonthTotal is one month with a single total, e.g. the top expense month.
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// IsZero reports whether the value carries no data.
func (m MonthTotal) IsZero() bool {
	return m.Month == "" && m.Total.IsZero()
}

// CategoryTotal holds the aggregate for one (possibly rolled-up) category.
// Share is the percentage of the grand total, filled by the report layer
// after emoji cleanup.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Share    float64
}

// CategoryAverage holds the average monthly figure for one main category.
type CategoryAverage struct {
	Category   string
	AvgMonthly decimal.Decimal
}

// MethodTotal holds the aggregate for one payment method (asset).
type MethodTotal struct {
	Method string
	Total  decimal.Decimal
}

// MonthCategoryTotal is one cell of a month-by-category grouping, the raw
// material for pivots and distribution pies.
type MonthCategoryTotal struct {
	Month    string
	Category string
	Total    decimal.Decimal
}

// Overview bundles everything the summary views need in one pass.
type Overview struct {
	Flows             []MonthFlow
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	AvgMonthlyIncome  decimal.Decimal
	AvgMonthlyExpense decimal.Decimal
	TopExpenseMonth   MonthTotal
	ActiveMonths      int
	Transactions      int
}

// Net returns the lifetime net (income minus expenses) of the overview range.
func (o Overview) Net() decimal.Decimal {
	return o.TotalIncome.Sub(o.TotalExpenses)
}

// SavingsRate returns net/income in [0,1], or 0 when there is no income.
func (o Overview) SavingsRate() float64 {
	if !o.TotalIncome.IsPositive() {
		return 0
	}
	rate, _ := o.Net().Div(o.TotalIncome).Float64()
	return rate
}
