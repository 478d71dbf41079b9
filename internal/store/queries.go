package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmellea/moneylens/internal/model"
)

// monthExpr extracts the YYYY-MM month from a WDATE timestamp.
const monthExpr = "strftime('%Y-%m', t.WDATE)"

// monthFilter renders a Range as an AND clause fragment plus its arguments.
// Callers always have a preceding WHERE condition.
func monthFilter(r model.Range) (string, []any) {
	var sb strings.Builder
	var args []any
	if r.From != "" {
		sb.WriteString(" AND " + monthExpr + " >= ?")
		args = append(args, r.From)
	}
	if r.To != "" {
		sb.WriteString(" AND " + monthExpr + " <= ?")
		args = append(args, r.To)
	}
	return sb.String(), args
}

// categorySelect builds the name expression and joins for category grouping.
// The child category join is inner, so rows without a category row drop out
// of category views while still counting in the monthly flows. With rollup
// the parent name wins where one exists.
func categorySelect(rollup bool) (nameExpr, joins string) {
	joins = "\n\t\tJOIN ZCATEGORY c ON t.ctgUid = c.uid"
	if rollup {
		return "COALESCE(p.NAME, c.NAME)", joins + "\n\t\tLEFT JOIN ZCATEGORY p ON c.pUid = p.uid"
	}
	return "c.NAME", joins
}

// dec converts a ROUND(...)ed SQL aggregate into a two-decimal amount.
func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// MonthlyFlows returns per-month income and expense totals in month order.
// Months with activity on only one side still appear, zero on the other.
// Transfers are excluded entirely, so a transfer-only month does not show
// up as an empty row.
func (s *Store) MonthlyFlows(r model.Range) ([]model.MonthFlow, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT %s AS month,
		ROUND(SUM(CASE WHEN t.DO_TYPE = %d THEN t.ZMONEY ELSE 0 END), 2),
		ROUND(SUM(CASE WHEN t.DO_TYPE = %d THEN t.ZMONEY ELSE 0 END), 2)
		FROM INOUTCOME t
		WHERE t.DO_TYPE IN (%d, %d)%s
		GROUP BY month
		ORDER BY month`,
		monthExpr, model.KindIncome, model.KindExpense,
		model.KindIncome, model.KindExpense, clause)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying monthly flows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var flows []model.MonthFlow
	for rows.Next() {
		var month string
		var income, expenses float64
		if err := rows.Scan(&month, &income, &expenses); err != nil {
			return nil, err
		}
		flows = append(flows, model.MonthFlow{
			Month:    month,
			Income:   dec(income),
			Expenses: dec(expenses),
		})
	}
	return flows, rows.Err()
}

// AverageMonthly averages the per-month totals of one kind. Only months
// with activity of that kind enter the average, so a month with income but
// no expenses does not drag the expense average down. No activity at all
// yields zero.
func (s *Store) AverageMonthly(kind model.Kind, r model.Range) (decimal.Decimal, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT ROUND(AVG(monthly_total), 2) FROM (
		SELECT %s AS month, SUM(t.ZMONEY) AS monthly_total
		FROM INOUTCOME t
		WHERE t.DO_TYPE = %d%s
		GROUP BY month)`,
		monthExpr, kind, clause)

	var avg sql.NullFloat64
	if err := s.db.QueryRow(query, args...).Scan(&avg); err != nil {
		return decimal.Decimal{}, fmt.Errorf("querying monthly average: %w", err)
	}
	if !avg.Valid {
		return decimal.Decimal{}, nil
	}
	return dec(avg.Float64), nil
}

// CategoryTotals sums one transaction kind per category, largest first.
// rollup groups subcategories under their parent.
func (s *Store) CategoryTotals(kind model.Kind, rollup bool, r model.Range) ([]model.CategoryTotal, error) {
	nameExpr, joins := categorySelect(rollup)
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT %s AS category, ROUND(SUM(t.ZMONEY), 2) AS total
		FROM INOUTCOME t%s
		WHERE t.DO_TYPE = %d%s
		GROUP BY category
		ORDER BY total DESC, category`,
		nameExpr, joins, kind, clause)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.CategoryTotal
	for rows.Next() {
		var ct model.CategoryTotal
		var total float64
		if err := rows.Scan(&ct.Category, &total); err != nil {
			return nil, err
		}
		ct.Total = dec(total)
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// MonthlyCategoryTotals sums one transaction kind per month and category,
// ordered by month then total descending. Feeds pivots and the per-month
// distribution views.
func (s *Store) MonthlyCategoryTotals(kind model.Kind, rollup bool, r model.Range) ([]model.MonthCategoryTotal, error) {
	nameExpr, joins := categorySelect(rollup)
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT %s AS month, %s AS category, ROUND(SUM(t.ZMONEY), 2) AS total
		FROM INOUTCOME t%s
		WHERE t.DO_TYPE = %d%s
		GROUP BY month, category
		ORDER BY month, total DESC`,
		monthExpr, nameExpr, joins, kind, clause)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying monthly category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.MonthCategoryTotal
	for rows.Next() {
		var mt model.MonthCategoryTotal
		var total float64
		if err := rows.Scan(&mt.Month, &mt.Category, &total); err != nil {
			return nil, err
		}
		mt.Total = dec(total)
		totals = append(totals, mt)
	}
	return totals, rows.Err()
}

// AverageExpenseByMainCategory averages each main category's monthly expense
// totals, largest first. As with AverageMonthly, only months where the
// category saw spending enter its average.
func (s *Store) AverageExpenseByMainCategory(r model.Range) ([]model.CategoryAverage, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT category, ROUND(AVG(monthly_total), 2) AS avg_monthly FROM (
		SELECT COALESCE(p.NAME, c.NAME) AS category, %s AS month, SUM(t.ZMONEY) AS monthly_total
		FROM INOUTCOME t
		JOIN ZCATEGORY c ON t.ctgUid = c.uid
		LEFT JOIN ZCATEGORY p ON c.pUid = p.uid
		WHERE t.DO_TYPE = %d%s
		GROUP BY category, month)
		GROUP BY category
		ORDER BY avg_monthly DESC, category`,
		monthExpr, model.KindExpense, clause)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying category averages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var avgs []model.CategoryAverage
	for rows.Next() {
		var ca model.CategoryAverage
		var avg float64
		if err := rows.Scan(&ca.Category, &avg); err != nil {
			return nil, err
		}
		ca.AvgMonthly = dec(avg)
		avgs = append(avgs, ca)
	}
	return avgs, rows.Err()
}

// MethodTotals sums one transaction kind per payment method, largest first.
// Rows without a linked asset drop out, matching the category behavior.
func (s *Store) MethodTotals(kind model.Kind, r model.Range) ([]model.MethodTotal, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT a.NIC_NAME AS method, ROUND(SUM(t.ZMONEY), 2) AS total
		FROM INOUTCOME t
		JOIN ASSETS a ON t.assetUid = a.uid
		WHERE t.DO_TYPE = %d%s
		GROUP BY method
		ORDER BY total DESC, method`,
		kind, clause)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying method totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []model.MethodTotal
	for rows.Next() {
		var mt model.MethodTotal
		var total float64
		if err := rows.Scan(&mt.Method, &total); err != nil {
			return nil, err
		}
		mt.Total = dec(total)
		totals = append(totals, mt)
	}
	return totals, rows.Err()
}

// Transactions lists income and expense rows newest first. Category and
// asset joins stay outer here so uncategorized rows remain visible in the
// listing. limit <= 0 means no limit.
func (s *Store) Transactions(r model.Range, limit int) ([]model.Transaction, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT t.uid, t.WDATE, t.ZMONEY, t.DO_TYPE,
		COALESCE(c.NAME, ''), COALESCE(p.NAME, c.NAME, ''), COALESCE(a.NIC_NAME, ''), COALESCE(t.ZCONTENT, '')
		FROM INOUTCOME t
		LEFT JOIN ZCATEGORY c ON t.ctgUid = c.uid
		LEFT JOIN ZCATEGORY p ON c.pUid = p.uid
		LEFT JOIN ASSETS a ON t.assetUid = a.uid
		WHERE t.DO_TYPE IN (%d, %d)%s
		ORDER BY t.WDATE DESC, t.uid DESC`,
		model.KindIncome, model.KindExpense, clause)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var wdate string
		var amount float64
		var kind int
		if err := rows.Scan(&t.UID, &wdate, &amount, &kind, &t.Category, &t.MainCategory, &t.Asset, &t.Note); err != nil {
			return nil, err
		}
		t.Date, err = parseWDATE(wdate)
		if err != nil {
			return nil, err
		}
		t.Amount = dec(amount)
		t.Kind = model.Kind(kind)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// CountTransactions counts income and expense rows in the range.
func (s *Store) CountTransactions(r model.Range) (int, error) {
	clause, args := monthFilter(r)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM INOUTCOME t
		WHERE t.DO_TYPE IN (%d, %d)%s`,
		model.KindIncome, model.KindExpense, clause)

	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

// parseWDATE accepts the two timestamp shapes the app writes.
func parseWDATE(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable transaction date %q", s)
}
