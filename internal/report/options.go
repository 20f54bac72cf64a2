package report

import "khata/internal/core"

// FilterOptions lists the values available to the dashboard filter
// controls, in first-encountered order.
type FilterOptions struct {
	Keywords   []string
	MoneyTypes []core.MoneyType
}

// Options derives the filter control values from the dataset: distinct
// keywords of the reclassified view (so the low-value bucket shows up as
// "others") and the distinct money types present.
func Options(records []core.Record) FilterOptions {
	var opts FilterOptions
	seenKw := make(map[string]struct{})
	seenMt := make(map[core.MoneyType]struct{})
	for _, rec := range core.ReclassifyOthers(records) {
		if _, ok := seenKw[rec.Keyword]; !ok {
			seenKw[rec.Keyword] = struct{}{}
			opts.Keywords = append(opts.Keywords, rec.Keyword)
		}
		if _, ok := seenMt[rec.MoneyType]; !ok {
			seenMt[rec.MoneyType] = struct{}{}
			opts.MoneyTypes = append(opts.MoneyTypes, rec.MoneyType)
		}
	}
	return opts
}
