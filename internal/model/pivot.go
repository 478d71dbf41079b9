package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OtherColumn is the fold target for categories beyond a top-N cut.
const OtherColumn = "Other"

// Pivot is a month-by-category grid of totals with zero fill. Months are
// ordered ascending, categories by overall total descending.
type Pivot struct {
	Months     []string
	Categories []string
	cells      map[string]map[string]decimal.Decimal
}

// BuildPivot turns grouped rows into a pivot grid. Duplicate
// (month, category) pairs are summed, which makes fold-ins safe.
func BuildPivot(rows []MonthCategoryTotal) Pivot {
	p := Pivot{cells: make(map[string]map[string]decimal.Decimal)}

	colTotals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		byCat, ok := p.cells[row.Month]
		if !ok {
			byCat = make(map[string]decimal.Decimal)
			p.cells[row.Month] = byCat
			p.Months = append(p.Months, row.Month)
		}
		byCat[row.Category] = byCat[row.Category].Add(row.Total)
		colTotals[row.Category] = colTotals[row.Category].Add(row.Total)
	}

	sort.Strings(p.Months)

	p.Categories = make([]string, 0, len(colTotals))
	for cat := range colTotals {
		p.Categories = append(p.Categories, cat)
	}
	sort.Slice(p.Categories, func(i, j int) bool {
		a, b := p.Categories[i], p.Categories[j]
		if cmp := colTotals[a].Cmp(colTotals[b]); cmp != 0 {
			return cmp > 0
		}
		return a < b
	})

	return p
}

// Empty reports whether the pivot holds no cells.
func (p Pivot) Empty() bool {
	return len(p.Months) == 0 || len(p.Categories) == 0
}

// Value returns the cell total, zero when the pair never occurred.
func (p Pivot) Value(month, category string) decimal.Decimal {
	if byCat, ok := p.cells[month]; ok {
		return byCat[category]
	}
	return decimal.Decimal{}
}

// Row returns the month's totals in category order.
func (p Pivot) Row(month string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.Categories))
	for i, cat := range p.Categories {
		out[i] = p.Value(month, cat)
	}
	return out
}

// Column returns the category's totals in month order.
func (p Pivot) Column(category string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.Months))
	for i, m := range p.Months {
		out[i] = p.Value(m, category)
	}
	return out
}

// RowTotal returns the sum across all categories for a month.
func (p Pivot) RowTotal(month string) decimal.Decimal {
	var sum decimal.Decimal
	for _, cat := range p.Categories {
		sum = sum.Add(p.Value(month, cat))
	}
	return sum
}

// ColumnTotal returns the sum across all months for a category.
func (p Pivot) ColumnTotal(category string) decimal.Decimal {
	var sum decimal.Decimal
	for _, m := range p.Months {
		sum = sum.Add(p.Value(m, category))
	}
	return sum
}

// FoldTop keeps the n largest categories and merges the remainder into an
// "Other" column, preserving row totals. n <= 0 or n >= len(Categories)
// returns the pivot unchanged.
func (p Pivot) FoldTop(n int) Pivot {
	if n <= 0 || n >= len(p.Categories) {
		return p
	}

	keep := make(map[string]bool, n)
	for _, cat := range p.Categories[:n] {
		keep[cat] = true
	}

	folded := Pivot{
		Months: append([]string(nil), p.Months...),
		cells:  make(map[string]map[string]decimal.Decimal, len(p.Months)),
	}
	hasOther := false
	for _, m := range p.Months {
		byCat := make(map[string]decimal.Decimal)
		for _, cat := range p.Categories {
			target := cat
			if !keep[cat] {
				target = OtherColumn
				hasOther = true
			}
			byCat[target] = byCat[target].Add(p.Value(m, cat))
		}
		folded.cells[m] = byCat
	}

	// Surviving columns keep their ranking, Other sits last.
	folded.Categories = append([]string(nil), p.Categories[:n]...)
	if hasOther {
		folded.Categories = append(folded.Categories, OtherColumn)
	}

	return folded
}
