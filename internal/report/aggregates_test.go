package report

import (
	"math"
	"testing"

	"khata/internal/core"

	"github.com/shopspring/decimal"
)

func rec(date, keyword string, amount float64, flow core.FlowType) core.Record {
	return core.Record{
		Date:    date,
		Keyword: keyword,
		Amount:  decimal.NewFromFloat(amount),
		Flow:    flow,
	}
}

func TestBalance(t *testing.T) {
	records := []core.Record{
		{RemainingCash: decimal.NewFromInt(1), RemainingOnline: decimal.NewFromInt(2)},
		{RemainingCash: decimal.NewFromInt(400), RemainingOnline: decimal.RequireFromString("5900.38")},
	}
	got := Balance(records)
	if !got.OK {
		t.Fatalf("expected OK snapshot")
	}
	if got.Cash.String() != "400" || got.Online.String() != "5900.38" {
		t.Fatalf("snapshot not from last record: %+v", got)
	}

	if Balance(nil).OK {
		t.Fatalf("empty dataset must not produce a snapshot")
	}
}

func TestTrendsPartition(t *testing.T) {
	records := []core.Record{
		{Date: "01-01-2025", Flow: core.FlowIncome, Amount: decimal.NewFromInt(10), Description: "salary", Keyword: "pay"},
		{Date: "02-01-2025", Flow: core.FlowExpense, Amount: decimal.NewFromInt(3), Description: "tea", Keyword: "chai"},
		{Date: "03-01-2025", Flow: core.FlowIncome, Amount: decimal.NewFromInt(7), Description: "refund", Keyword: "shop"},
	}
	got := Trends(records)
	if len(got.Income.Dates) != 2 || len(got.Expense.Dates) != 1 {
		t.Fatalf("wrong partition sizes: %d income, %d expense", len(got.Income.Dates), len(got.Expense.Dates))
	}
	if got.Income.Dates[0] != "01-01-2025" || got.Income.Dates[1] != "03-01-2025" {
		t.Fatalf("income series out of record order: %v", got.Income.Dates)
	}
	if got.Expense.Labels[0] != "tea (chai)" {
		t.Fatalf("wrong hover label: %q", got.Expense.Labels[0])
	}
}

func TestCategoriesTwoGroups(t *testing.T) {
	records := []core.Record{
		rec("01-01-2025", "pay", 5000, core.FlowIncome),
		rec("02-01-2025", "snack", 100, core.FlowExpense),
	}
	got := Categories(records, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Keyword != "pay" || got[1].Keyword != "snack" {
		t.Fatalf("wrong sort order: %+v", got)
	}
	// 5000/5100 and 100/5100 of the grand total.
	if math.Abs(got[0].Percent-98.0) > 0.1 || math.Abs(got[1].Percent-2.0) > 0.1 {
		t.Fatalf("wrong percentages: %v, %v", got[0].Percent, got[1].Percent)
	}
}

func TestCategoriesFoldSmallGroups(t *testing.T) {
	records := []core.Record{
		rec("01-01-2025", "rent", 9000, core.FlowExpense),
		rec("02-01-2025", "chai", 30, core.FlowExpense),
		rec("03-01-2025", "auto", 40, core.FlowExpense),
		rec("04-01-2025", "food", 930, core.FlowExpense),
	}
	got := Categories(records, false)
	// chai and auto are each under 5% of 10000 and fold together.
	if len(got) != 3 {
		t.Fatalf("expected 3 groups after fold, got %d", len(got))
	}
	var fold *CategoryShare
	for i := range got {
		if got[i].Keyword == core.OthersFoldLabel {
			fold = &got[i]
		}
	}
	if fold == nil {
		t.Fatalf("fold bucket missing: %+v", got)
	}
	if !fold.Total.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("fold total = %s, want 70", fold.Total)
	}

	sum := 0.0
	for _, s := range got {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 0.01 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestCategoriesOthersViewNoFold(t *testing.T) {
	records := []core.Record{
		rec("01-01-2025", "pay", 5000, core.FlowIncome),
		rec("02-01-2025", "chai", 30, core.FlowExpense),
		rec("03-01-2025", "auto", 470, core.FlowExpense),
	}
	got := Categories(records, true)
	// Only the low-value subset, by real keyword, unfolded.
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Keyword != "auto" || got[1].Keyword != "chai" {
		t.Fatalf("wrong groups: %+v", got)
	}
}

func TestCategoriesDropsZeroAndEmpty(t *testing.T) {
	records := []core.Record{
		rec("01-01-2025", "free", 0, core.FlowExpense),
		rec("02-01-2025", "food", 1000, core.FlowExpense),
	}
	got := Categories(records, false)
	if len(got) != 1 || got[0].Keyword != "food" {
		t.Fatalf("zero group not dropped: %+v", got)
	}

	if got := Categories(nil, false); got != nil {
		t.Fatalf("expected nil for empty dataset, got %+v", got)
	}
}

func TestCashFlowKeepsDuplicates(t *testing.T) {
	records := []core.Record{
		{Date: "01-01-2025", WholeTotal: decimal.NewFromInt(100)},
		{Date: "01-01-2025", WholeTotal: decimal.NewFromInt(90)},
		{Date: "02-01-2025", WholeTotal: decimal.NewFromInt(120)},
	}
	got := CashFlow(records)
	if len(got) != 3 {
		t.Fatalf("duplicate dates deduplicated: %d points", len(got))
	}
	if got[0].Date != "01-01-2025" || !got[1].Total.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("series out of record order: %+v", got)
	}
}

func TestPlaces(t *testing.T) {
	records := []core.Record{
		{Place: "home"}, {Place: "office"}, {Place: "home"},
	}
	got := Places(records)
	if got["home"] != 2 || got["office"] != 1 {
		t.Fatalf("wrong counts: %v", got)
	}
}
