package report

import (
	"khata/internal/core"

	"github.com/shopspring/decimal"
)

// DescriptionEntry is one line of the textual transaction list.
type DescriptionEntry struct {
	Date        string
	Amount      decimal.Decimal
	Description string
	Flow        core.FlowType
	MoneyType   core.MoneyType
}

// DescriptionGroup is the per-keyword block of the description section,
// with a running total for the group.
type DescriptionGroup struct {
	Keyword string
	Total   decimal.Decimal
	Entries []DescriptionEntry
}

// Describe groups the transaction list by keyword, keeping group order
// by first appearance and record order within each group.
func Describe(records []core.Record) []DescriptionGroup {
	var order []string
	groups := make(map[string]*DescriptionGroup)
	for _, rec := range records {
		g, ok := groups[rec.Keyword]
		if !ok {
			g = &DescriptionGroup{Keyword: rec.Keyword, Total: decimal.Zero}
			groups[rec.Keyword] = g
			order = append(order, rec.Keyword)
		}
		g.Total = g.Total.Add(rec.Amount)
		g.Entries = append(g.Entries, DescriptionEntry{
			Date:        rec.Date,
			Amount:      rec.Amount,
			Description: rec.Description,
			Flow:        rec.Flow,
			MoneyType:   rec.MoneyType,
		})
	}

	out := make([]DescriptionGroup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}
