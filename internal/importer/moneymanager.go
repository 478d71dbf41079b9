package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmellea/moneylens/internal/model"
)

// MoneyManagerParser parses the Money Manager app's CSV export.
type MoneyManagerParser struct{}

const (
	mmNumFields = 7
	mmColDate   = 0
	mmColAsset  = 1
	mmColMain   = 2
	mmColSub    = 3
	mmColNote   = 4
	mmColAmount = 5
	mmColKind   = 6
)

var mmHeader = []string{"date", "account", "category", "subcategory", "note", "amount", "income/expense"}

// Format returns the parser name.
func (p *MoneyManagerParser) Format() string { return "moneymanager" }

// Sniff matches the export header. Exports from newer app versions append
// Description and Currency columns, so only the leading seven count.
func (p *MoneyManagerParser) Sniff(header []string) bool {
	if len(header) < mmNumFields {
		return false
	}
	for i, want := range mmHeader {
		if header[i] != want {
			return false
		}
	}
	return true
}

// Parse reads a Money Manager export. Transfer rows are counted as skipped
// rather than imported, matching how the analysis treats them.
func (p *MoneyManagerParser) Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return Result{}, nil
	}

	var res Result
	for i, rec := range records[1:] {
		if len(rec) < mmNumFields {
			return Result{}, fmt.Errorf("row %d: %d columns, want at least %d", i+2, len(rec), mmNumFields)
		}

		kind, err := parseMMKind(rec[mmColKind])
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !kind.Analyzable() {
			res.Skipped++
			continue
		}

		date, err := parseMMDate(rec[mmColDate])
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := parseAmount(rec[mmColAmount])
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}

		txn := model.Transaction{
			Date: date,
			// The export stores direction in its own column, so the
			// amount is a magnitude.
			Amount: amount.Abs(),
			Kind:   kind,
			Asset:  strings.TrimSpace(rec[mmColAsset]),
			Note:   strings.TrimSpace(rec[mmColNote]),
		}

		main := strings.TrimSpace(rec[mmColMain])
		sub := strings.TrimSpace(rec[mmColSub])
		if sub != "" {
			txn.Category = sub
			txn.MainCategory = main
		} else {
			txn.Category = main
		}

		res.Txns = append(res.Txns, txn)
	}
	return res, nil
}

// parseMMKind maps the Income/Expense column, including the transfer
// values the app writes for moves between accounts.
func parseMMKind(s string) (model.Kind, error) {
	switch strings.TrimRight(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "income":
		return model.KindIncome, nil
	case "expense", "exp":
		return model.KindExpense, nil
	case "transfer-out", "transfer out", "transfer":
		return model.KindTransferOut, nil
	case "transfer-in", "transfer in":
		return model.KindTransferIn, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func parseMMDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", s)
}

// parseAmount reads a decimal, tolerating thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
