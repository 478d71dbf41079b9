package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmellea/moneylens/internal/model"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// seedStore creates a ledger with two months of activity, a nested
// category, an uncategorized row and a transfer that must stay invisible.
func seedStore(t *testing.T) *Store {
	t.Helper()

	s, err := Create(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	txns := []model.Transaction{
		{Date: date(2024, time.January, 5), Amount: mustDec(t, "2000.00"), Kind: model.KindIncome, Category: "Salary", Asset: "Bank"},
		{Date: date(2024, time.January, 10), Amount: mustDec(t, "150.25"), Kind: model.KindExpense, Category: "Groceries", MainCategory: "Food", Asset: "Card", Note: "weekly shop"},
		{Date: date(2024, time.January, 1), Amount: mustDec(t, "900.00"), Kind: model.KindExpense, Category: "Rent", Asset: "Bank"},
		{Date: date(2024, time.February, 5), Amount: mustDec(t, "2000.00"), Kind: model.KindIncome, Category: "Salary", Asset: "Bank"},
		{Date: date(2024, time.February, 14), Amount: mustDec(t, "80.50"), Kind: model.KindExpense, Category: "Restaurants", MainCategory: "Food", Asset: "Card"},
		{Date: date(2024, time.February, 20), Amount: mustDec(t, "20.00"), Kind: model.KindExpense},
		{Date: date(2024, time.February, 25), Amount: mustDec(t, "500.00"), Kind: model.KindTransferOut, Category: "Savings", Asset: "Bank"},
	}
	n, err := s.InsertTransactions(txns)
	if err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}
	if n != len(txns) {
		t.Fatalf("inserted %d rows, want %d", n, len(txns))
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	if !errors.Is(err, ErrDBMissing) {
		t.Fatalf("Open error = %v, want ErrDBMissing", err)
	}
}

func TestCreateRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := Create(path); !errors.Is(err, ErrDBExists) {
		t.Fatalf("second Create error = %v, want ErrDBExists", err)
	}
}

func TestCreateAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.InsertTransactions([]model.Transaction{
		{Date: date(2024, time.March, 1), Amount: mustDec(t, "10.00"), Kind: model.KindExpense, Category: "Misc"},
	}); err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()

	txns, cats, assets, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if txns != 1 || cats != 1 || assets != 0 {
		t.Errorf("Counts = (%d, %d, %d), want (1, 1, 0)", txns, cats, assets)
	}
}

func TestMonthlyFlows(t *testing.T) {
	s := seedStore(t)

	flows, err := s.MonthlyFlows(model.Range{})
	if err != nil {
		t.Fatalf("MonthlyFlows: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d months, want 2", len(flows))
	}

	jan := flows[0]
	if jan.Month != "2024-01" {
		t.Errorf("first month = %s, want 2024-01", jan.Month)
	}
	if !jan.Income.Equal(mustDec(t, "2000.00")) || !jan.Expenses.Equal(mustDec(t, "1050.25")) {
		t.Errorf("January = %s income / %s expenses, want 2000.00 / 1050.25", jan.Income, jan.Expenses)
	}

	feb := flows[1]
	// The transfer must not count as an expense.
	if !feb.Expenses.Equal(mustDec(t, "100.50")) {
		t.Errorf("February expenses = %s, want 100.50", feb.Expenses)
	}
	if !feb.Net().Equal(mustDec(t, "1899.50")) {
		t.Errorf("February net = %s, want 1899.50", feb.Net())
	}
}

func TestMonthlyFlowsRange(t *testing.T) {
	s := seedStore(t)

	flows, err := s.MonthlyFlows(model.Range{From: "2024-02"})
	if err != nil {
		t.Fatalf("MonthlyFlows: %v", err)
	}
	if len(flows) != 1 || flows[0].Month != "2024-02" {
		t.Fatalf("ranged flows = %+v, want only 2024-02", flows)
	}
}

func TestCategoryTotalsRollup(t *testing.T) {
	s := seedStore(t)

	totals, err := s.CategoryTotals(model.KindExpense, true, model.Range{})
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}

	got := make(map[string]string)
	for _, ct := range totals {
		got[ct.Category] = ct.Total.StringFixed(2)
	}
	want := map[string]string{
		"Rent": "900.00",
		"Food": "230.75",
	}
	for cat, total := range want {
		if got[cat] != total {
			t.Errorf("rollup total[%q] = %s, want %s", cat, got[cat], total)
		}
	}
	// The uncategorized row has no category join and must not appear.
	if len(totals) != len(want) {
		t.Errorf("got %d categories, want %d: %+v", len(totals), len(want), totals)
	}

	// Largest first.
	if totals[0].Category != "Rent" {
		t.Errorf("first category = %q, want Rent", totals[0].Category)
	}
}

func TestCategoryTotalsChildLevel(t *testing.T) {
	s := seedStore(t)

	totals, err := s.CategoryTotals(model.KindExpense, false, model.Range{})
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}

	found := false
	for _, ct := range totals {
		if ct.Category == "Groceries" {
			found = true
			if !ct.Total.Equal(mustDec(t, "150.25")) {
				t.Errorf("Groceries = %s, want 150.25", ct.Total)
			}
		}
		if ct.Category == "Food" {
			t.Error("child-level totals must not contain the parent rollup")
		}
	}
	if !found {
		t.Error("Groceries missing from child-level totals")
	}
}

func TestIncomeCategoryTotals(t *testing.T) {
	s := seedStore(t)

	totals, err := s.CategoryTotals(model.KindIncome, true, model.Range{})
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	if len(totals) != 1 || totals[0].Category != "Salary" {
		t.Fatalf("income totals = %+v, want only Salary", totals)
	}
	if !totals[0].Total.Equal(mustDec(t, "4000.00")) {
		t.Errorf("Salary = %s, want 4000.00", totals[0].Total)
	}
}

func TestMonthlyCategoryTotals(t *testing.T) {
	s := seedStore(t)

	rows, err := s.MonthlyCategoryTotals(model.KindExpense, true, model.Range{})
	if err != nil {
		t.Fatalf("MonthlyCategoryTotals: %v", err)
	}

	p := model.BuildPivot(rows)
	if got := p.Value("2024-01", "Food"); !got.Equal(mustDec(t, "150.25")) {
		t.Errorf("Food(2024-01) = %s, want 150.25", got)
	}
	if got := p.Value("2024-02", "Food"); !got.Equal(mustDec(t, "80.50")) {
		t.Errorf("Food(2024-02) = %s, want 80.50", got)
	}
	if got := p.Value("2024-02", "Rent"); !got.IsZero() {
		t.Errorf("Rent(2024-02) = %s, want 0", got)
	}
}

func TestMethodTotals(t *testing.T) {
	s := seedStore(t)

	totals, err := s.MethodTotals(model.KindExpense, model.Range{})
	if err != nil {
		t.Fatalf("MethodTotals: %v", err)
	}

	got := make(map[string]string)
	for _, mt := range totals {
		got[mt.Method] = mt.Total.StringFixed(2)
	}
	if got["Card"] != "230.75" {
		t.Errorf("Card = %s, want 230.75", got["Card"])
	}
	if got["Bank"] != "900.00" {
		t.Errorf("Bank = %s, want 900.00", got["Bank"])
	}
	// The row without an asset has no join and must not appear.
	if len(totals) != 2 {
		t.Errorf("got %d methods, want 2: %+v", len(totals), totals)
	}

	income, err := s.MethodTotals(model.KindIncome, model.Range{})
	if err != nil {
		t.Fatalf("MethodTotals income: %v", err)
	}
	if len(income) != 1 || income[0].Method != "Bank" || !income[0].Total.Equal(mustDec(t, "4000.00")) {
		t.Errorf("income methods = %+v, want Bank 4000.00", income)
	}
}

func TestAverageMonthly(t *testing.T) {
	s := seedStore(t)

	avg, err := s.AverageMonthly(model.KindExpense, model.Range{})
	if err != nil {
		t.Fatalf("AverageMonthly: %v", err)
	}
	// (1050.25 + 100.50) / 2
	if !avg.Equal(mustDec(t, "575.38")) {
		t.Errorf("expense average = %s, want 575.38", avg)
	}

	avg, err = s.AverageMonthly(model.KindIncome, model.Range{})
	if err != nil {
		t.Fatalf("AverageMonthly: %v", err)
	}
	if !avg.Equal(mustDec(t, "2000.00")) {
		t.Errorf("income average = %s, want 2000.00", avg)
	}

	// No transfer-in rows exist, the average must come back zero.
	avg, err = s.AverageMonthly(model.KindTransferIn, model.Range{})
	if err != nil {
		t.Fatalf("AverageMonthly: %v", err)
	}
	if !avg.IsZero() {
		t.Errorf("empty average = %s, want 0", avg)
	}
}

func TestAverageExpenseByMainCategory(t *testing.T) {
	s := seedStore(t)

	avgs, err := s.AverageExpenseByMainCategory(model.Range{})
	if err != nil {
		t.Fatalf("AverageExpenseByMainCategory: %v", err)
	}
	if len(avgs) != 2 {
		t.Fatalf("got %d categories, want 2: %+v", len(avgs), avgs)
	}

	// Rent spent in one month only, so its average is the full amount.
	if avgs[0].Category != "Rent" || !avgs[0].AvgMonthly.Equal(mustDec(t, "900.00")) {
		t.Errorf("first = %+v, want Rent 900.00", avgs[0])
	}
	// Food averages over its two active months: (150.25 + 80.50) / 2.
	if avgs[1].Category != "Food" || !avgs[1].AvgMonthly.Equal(mustDec(t, "115.38")) {
		t.Errorf("second = %+v, want Food 115.38", avgs[1])
	}
}

func TestTransactions(t *testing.T) {
	s := seedStore(t)

	txns, err := s.Transactions(model.Range{}, 0)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	// Six analyzable rows, the transfer is excluded.
	if len(txns) != 6 {
		t.Fatalf("got %d transactions, want 6", len(txns))
	}

	// Newest first.
	if txns[0].Date.Format("2006-01-02") != "2024-02-20" {
		t.Errorf("first transaction date = %s, want 2024-02-20", txns[0].Date.Format("2006-01-02"))
	}
	for _, tx := range txns {
		if tx.Kind == model.KindTransferOut || tx.Kind == model.KindTransferIn {
			t.Errorf("transfer leaked into transaction list: %+v", tx)
		}
	}

	grocery := txns[3]
	if grocery.Category != "Groceries" || grocery.MainCategory != "Food" {
		t.Errorf("category join = %q/%q, want Groceries/Food", grocery.Category, grocery.MainCategory)
	}
	if grocery.Note != "weekly shop" {
		t.Errorf("note = %q, want %q", grocery.Note, "weekly shop")
	}
	if !grocery.Signed().Equal(mustDec(t, "-150.25")) {
		t.Errorf("signed amount = %s, want -150.25", grocery.Signed())
	}
}

func TestTransactionsLimit(t *testing.T) {
	s := seedStore(t)

	txns, err := s.Transactions(model.Range{}, 2)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txns) != 2 {
		t.Errorf("got %d transactions, want 2", len(txns))
	}
}

func TestCountTransactions(t *testing.T) {
	s := seedStore(t)

	n, err := s.CountTransactions(model.Range{})
	if err != nil {
		t.Fatalf("CountTransactions: %v", err)
	}
	if n != 6 {
		t.Errorf("count = %d, want 6", n)
	}

	n, err = s.CountTransactions(model.Range{To: "2024-01"})
	if err != nil {
		t.Fatalf("CountTransactions: %v", err)
	}
	if n != 3 {
		t.Errorf("ranged count = %d, want 3", n)
	}
}

func TestInsertReusesCategories(t *testing.T) {
	s := seedStore(t)

	// A second batch with the same names must not duplicate lookup rows.
	_, err := s.InsertTransactions([]model.Transaction{
		{Date: date(2024, time.March, 2), Amount: mustDec(t, "42.00"), Kind: model.KindExpense, Category: "Groceries", MainCategory: "Food", Asset: "Card"},
	})
	if err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}

	_, cats, assets, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	// Salary, Food, Groceries, Rent, Restaurants, Savings.
	if cats != 6 {
		t.Errorf("categories = %d, want 6", cats)
	}
	if assets != 2 {
		t.Errorf("assets = %d, want 2", assets)
	}
}
