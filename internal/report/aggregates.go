// Package report computes the chart-ready aggregates behind the
// dashboard. Every computation is a pure function over a record slice
// and tolerates an empty input by producing an empty result.
package report

import (
	"sort"

	"khata/internal/core"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot carries the closing cash/online balances. OK is false
// when there was no record to read them from, so callers can suppress
// the chart instead of plotting zeros.
type BalanceSnapshot struct {
	Cash   decimal.Decimal
	Online decimal.Decimal
	OK     bool
}

// TrendSeries is one bar series: parallel dates, amounts and hover
// labels in record order.
type TrendSeries struct {
	Dates   []string
	Amounts []decimal.Decimal
	Labels  []string
}

// FlowTrends partitions the dataset into income and expense series.
type FlowTrends struct {
	Income  TrendSeries
	Expense TrendSeries
}

// CategoryShare is one slice of the category pie: a keyword's total and
// its percentage of the grand total.
type CategoryShare struct {
	Keyword string
	Total   decimal.Decimal
	Percent float64
}

// SeriesPoint is one point of the running-balance line.
type SeriesPoint struct {
	Date  string
	Total decimal.Decimal
}

// Balance reads the closing balances from the last record in file order.
func Balance(records []core.Record) BalanceSnapshot {
	if len(records) == 0 {
		return BalanceSnapshot{}
	}
	last := records[len(records)-1]
	return BalanceSnapshot{Cash: last.RemainingCash, Online: last.RemainingOnline, OK: true}
}

// Trends splits records by flow type into parallel chart series, keeping
// file order. The hover label joins description and keyword.
func Trends(records []core.Record) FlowTrends {
	var ft FlowTrends
	for _, rec := range records {
		s := &ft.Income
		if rec.Flow == core.FlowExpense {
			s = &ft.Expense
		}
		s.Dates = append(s.Dates, rec.Date)
		s.Amounts = append(s.Amounts, rec.Amount)
		s.Labels = append(s.Labels, rec.Description+" ("+rec.Keyword+")")
	}
	return ft
}

// twenty serves the < 5% fold test: total*20 < grand <=> total/grand < 5%.
var twenty = decimal.NewFromInt(20)

// Categories sums amounts by keyword and shapes them for the pie chart.
// With othersView active the input narrows to its low-value subset and
// keeps real keywords with no percentage fold; otherwise every group
// under five percent of the grand total folds into core.OthersFoldLabel.
// Zero-value groups are dropped, the rest sort descending by total with
// first-encountered order breaking ties. Percentages are of the grand
// total, so emitted groups sum to 100 within rounding.
func Categories(records []core.Record, othersView bool) []CategoryShare {
	input := records
	if othersView {
		input = nil
		for _, rec := range records {
			if core.BelowOthersThreshold(rec.Amount) {
				input = append(input, rec)
			}
		}
	}

	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, rec := range input {
		if _, ok := totals[rec.Keyword]; !ok {
			order = append(order, rec.Keyword)
		}
		totals[rec.Keyword] = totals[rec.Keyword].Add(rec.Amount)
	}

	grand := decimal.Zero
	for _, k := range order {
		grand = grand.Add(totals[k])
	}
	if !grand.IsPositive() {
		return nil
	}

	var shares []CategoryShare
	if othersView {
		for _, k := range order {
			shares = append(shares, CategoryShare{Keyword: k, Total: totals[k]})
		}
	} else {
		foldIdx := -1
		for _, k := range order {
			t := totals[k]
			if t.Mul(twenty).LessThan(grand) {
				if foldIdx < 0 {
					foldIdx = len(shares)
					shares = append(shares, CategoryShare{Keyword: core.OthersFoldLabel})
				}
				shares[foldIdx].Total = shares[foldIdx].Total.Add(t)
			} else {
				shares = append(shares, CategoryShare{Keyword: k, Total: t})
			}
		}
	}

	out := make([]CategoryShare, 0, len(shares))
	for _, s := range shares {
		if s.Total.IsPositive() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})

	gf, _ := grand.Float64()
	for i := range out {
		tf, _ := out[i].Total.Float64()
		out[i].Percent = tf / gf * 100
	}
	return out
}

// CashFlow is the per-record running-balance series in file order.
// Duplicate dates stay as separate points.
func CashFlow(records []core.Record) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(records))
	for _, rec := range records {
		out = append(out, SeriesPoint{Date: rec.Date, Total: rec.WholeTotal})
	}
	return out
}

// Places counts transactions by place. Ordering is up to the consumer.
func Places(records []core.Record) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		out[rec.Place]++
	}
	return out
}
