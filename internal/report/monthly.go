package report

import (
	"khata/internal/core"

	"github.com/shopspring/decimal"
)

// MonthTotals carries one month of the monthly income/expense report.
type MonthTotals struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Monthly sums income and expense per calendar month. It always returns
// twelve entries in January-December order, zero-valued when nothing
// landed in a month. Records whose dates do not parse are skipped, not
// fatal.
func Monthly(records []core.Record) []MonthTotals {
	out := make([]MonthTotals, len(monthNames))
	for i := range out {
		out[i] = MonthTotals{Month: monthNames[i], Income: decimal.Zero, Expense: decimal.Zero}
	}
	for _, rec := range records {
		t, err := core.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		m := int(t.Month()) - 1
		if rec.Flow == core.FlowIncome {
			out[m].Income = out[m].Income.Add(rec.Amount)
		} else {
			out[m].Expense = out[m].Expense.Add(rec.Amount)
		}
	}
	return out
}
