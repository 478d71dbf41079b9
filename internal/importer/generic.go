package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kmellea/moneylens/internal/model"
)

// GenericParser parses a minimal bank-style CSV with signed amounts:
// negative rows are expenses, positive rows income.
type GenericParser struct{}

const (
	genNumFields = 4
	genColDate   = 0
	genColDesc   = 1
	genColCat    = 2
	genColAmount = 3
)

// GenericAsset is the payment method assigned to generic imports, which
// carry no account column.
const GenericAsset = "Imported"

var genHeader = []string{"date", "description", "category", "amount"}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Sniff matches the four-column header exactly.
func (p *GenericParser) Sniff(header []string) bool {
	if len(header) != genNumFields {
		return false
	}
	for i, want := range genHeader {
		if header[i] != want {
			return false
		}
	}
	return true
}

// Parse reads a generic CSV. Zero-amount rows are skipped since they have
// no direction.
func (p *GenericParser) Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return Result{}, nil
	}

	var res Result
	for i, rec := range records[1:] {
		date, err := parseMMDate(rec[genColDate])
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := parseAmount(rec[genColAmount])
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}

		kind := model.KindIncome
		switch amount.Sign() {
		case 0:
			res.Skipped++
			continue
		case -1:
			kind = model.KindExpense
		}

		res.Txns = append(res.Txns, model.Transaction{
			Date:     date,
			Amount:   amount.Abs(),
			Kind:     kind,
			Category: strings.TrimSpace(rec[genColCat]),
			Asset:    GenericAsset,
			Note:     strings.TrimSpace(rec[genColDesc]),
		})
	}
	return res, nil
}
