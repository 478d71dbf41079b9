package importer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmellea/moneylens/internal/model"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestMoneyManagerParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/moneymanager_export.csv")
	require.NoError(t, err)

	p := &MoneyManagerParser{}
	res, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, res.Txns, 6)
	// The two transfer legs are skipped, not imported.
	assert.Equal(t, 2, res.Skipped)

	// First: January payroll with a thousands separator.
	salary := res.Txns[0]
	assert.Equal(t, "2400.00", salary.Amount.StringFixed(2))
	assert.Equal(t, model.KindIncome, salary.Kind)
	assert.Equal(t, "💰 Salary", salary.Category)
	assert.Empty(t, salary.MainCategory)
	assert.Equal(t, "Bank", salary.Asset)
	assert.Equal(t, "January payroll", salary.Note)
	assert.Equal(t, "2024-01-05", salary.Date.Format("2006-01-02"))

	// Second: subcategory under a main category.
	groceries := res.Txns[1]
	assert.Equal(t, "Groceries", groceries.Category)
	assert.Equal(t, "🍕 Food", groceries.MainCategory)
	assert.Equal(t, model.KindExpense, groceries.Kind)
}

func TestMoneyManagerParser_ExpDotVariant(t *testing.T) {
	data, err := os.ReadFile("../../testdata/moneymanager_export.csv")
	require.NoError(t, err)

	p := &MoneyManagerParser{}
	res, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	// The "Exp." spelling from app exports maps to a plain expense.
	pizza := res.Txns[2]
	assert.Equal(t, "Restaurants", pizza.Category)
	assert.Equal(t, model.KindExpense, pizza.Kind)
}

func TestMoneyManagerParser_EmptyFile(t *testing.T) {
	p := &MoneyManagerParser{}
	res, err := p.Parse(strings.NewReader("Date,Account,Category,Subcategory,Note,Amount,Income/Expense\n"))
	require.NoError(t, err)
	assert.Nil(t, res.Txns)
	assert.Zero(t, res.Skipped)
}

func TestMoneyManagerParser_BadDate(t *testing.T) {
	csv := "Date,Account,Category,Subcategory,Note,Amount,Income/Expense\nNOTADATE,Bank,Food,,note,10.00,Expense\n"
	p := &MoneyManagerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing date")
}

func TestMoneyManagerParser_BadAmount(t *testing.T) {
	csv := "Date,Account,Category,Subcategory,Note,Amount,Income/Expense\n2024-01-05,Bank,Food,,note,NOTANUMBER,Expense\n"
	p := &MoneyManagerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestMoneyManagerParser_UnknownType(t *testing.T) {
	csv := "Date,Account,Category,Subcategory,Note,Amount,Income/Expense\n2024-01-05,Bank,Food,,note,10.00,Sideways\n"
	p := &MoneyManagerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transaction type")
}

func TestMoneyManagerParser_ShortRow(t *testing.T) {
	csv := "Date,Account,Category,Subcategory,Note,Amount,Income/Expense\n2024-01-05,Bank,Food\n"
	p := &MoneyManagerParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMoneyManagerParser_SlashDates(t *testing.T) {
	csv := "Date,Account,Category,Subcategory,Note,Amount,Income/Expense\n01/15/2024,Bank,Food,,note,10.00,Expense\n"
	p := &MoneyManagerParser{}
	res, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Txns, 1)
	assert.Equal(t, "2024-01-15", res.Txns[0].Date.Format("2006-01-02"))
}

func TestGenericParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/bank_generic.csv")
	require.NoError(t, err)

	p := &GenericParser{}
	res, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, res.Txns, 4)
	// The zero-amount adjustment row is skipped.
	assert.Equal(t, 1, res.Skipped)

	payroll := res.Txns[0]
	assert.Equal(t, model.KindIncome, payroll.Kind)
	assert.Equal(t, "2500.00", payroll.Amount.StringFixed(2))
	assert.Equal(t, "ACME payroll", payroll.Note)
	assert.Equal(t, GenericAsset, payroll.Asset)

	shop := res.Txns[1]
	assert.Equal(t, model.KindExpense, shop.Kind)
	// Amounts are magnitudes, direction lives in the kind.
	assert.Equal(t, "92.40", shop.Amount.StringFixed(2))

	coffee := res.Txns[3]
	assert.Empty(t, coffee.Category)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("MoneyManager"))
	assert.NotNil(t, r.Get("GENERIC"))
}

func TestRegistry_Formats(t *testing.T) {
	assert.Equal(t, []string{"generic", "moneymanager"}, DefaultRegistry().Formats())
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()

	mm := r.Detect([]string{"Date", "Account", "Category", "Subcategory", "Note", "Amount", "Income/Expense"})
	require.NotNil(t, mm)
	assert.Equal(t, "moneymanager", mm.Format())

	// Extra trailing columns still match.
	mm = r.Detect([]string{"Date", "Account", "Category", "Subcategory", "Note", "Amount", "Income/Expense", "Description", "Currency"})
	require.NotNil(t, mm)
	assert.Equal(t, "moneymanager", mm.Format())

	// A BOM on the first cell is invisible to detection.
	gen := r.Detect([]string{"﻿Date", "Description", "Category", "Amount"})
	require.NotNil(t, gen)
	assert.Equal(t, "generic", gen.Format())

	assert.Nil(t, r.Detect([]string{"Completely", "Different"}))
}

func TestService_ParseFilesDetects(t *testing.T) {
	svc := NewService(testLogger())

	var calls atomic.Int64
	results := svc.ParseFiles([]string{
		"../../testdata/moneymanager_export.csv",
		"../../testdata/bank_generic.csv",
	}, "", func(done, total int) {
		calls.Add(1)
		assert.Equal(t, 2, total)
	})

	require.Len(t, results, 2)
	assert.EqualValues(t, 2, calls.Load())

	// Results keep the input order regardless of which worker finished first.
	first := results[0]
	require.NoError(t, first.Err)
	assert.Equal(t, "moneymanager", first.Format)
	assert.Len(t, first.Txns, 6)

	second := results[1]
	require.NoError(t, second.Err)
	assert.Equal(t, "generic", second.Format)
	assert.Len(t, second.Txns, 4)
}

func TestService_ExplicitFormat(t *testing.T) {
	svc := NewService(testLogger())

	results := svc.ParseFiles([]string{"../../testdata/bank_generic.csv"}, "generic", nil)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "generic", results[0].Format)
}

func TestService_UnknownFormat(t *testing.T) {
	svc := NewService(testLogger())

	results := svc.ParseFiles([]string{"../../testdata/bank_generic.csv"}, "quicken", nil)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "unknown format")
}

func TestService_MissingFile(t *testing.T) {
	svc := NewService(testLogger())

	results := svc.ParseFiles([]string{filepath.Join(t.TempDir(), "gone.csv")}, "", nil)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestService_UnrecognizedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644))

	svc := NewService(testLogger())
	results := svc.ParseFiles([]string{path}, "", nil)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "unrecognized header")
}

func TestFileResult_Totals(t *testing.T) {
	svc := NewService(testLogger())

	results := svc.ParseFiles([]string{"../../testdata/moneymanager_export.csv"}, "", nil)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	income, expenses := results[0].Totals()
	assert.Equal(t, "4800.00", income.StringFixed(2))
	// 84.15 + 32.50 + 870.00 + 49.00
	assert.Equal(t, "1035.65", expenses.StringFixed(2))
}
