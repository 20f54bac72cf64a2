package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReclassifyOthers(t *testing.T) {
	in := []Record{
		{Keyword: "pay", Amount: decimal.NewFromInt(5000)},
		{Keyword: "snack", Amount: decimal.NewFromInt(100)},
		{Keyword: "rent", Amount: decimal.NewFromInt(500)}, // at threshold, untouched
	}

	out := ReclassifyOthers(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].Keyword != "pay" {
		t.Fatalf("high-value keyword rewritten: %q", out[0].Keyword)
	}
	if out[1].Keyword != OthersKeyword {
		t.Fatalf("low-value keyword not rewritten: %q", out[1].Keyword)
	}
	if out[2].Keyword != "rent" {
		t.Fatalf("at-threshold keyword rewritten: %q", out[2].Keyword)
	}

	// Input is untouched.
	if in[1].Keyword != "snack" {
		t.Fatalf("input mutated: %q", in[1].Keyword)
	}
}

func TestReclassifyOthersEmpty(t *testing.T) {
	if got := ReclassifyOthers(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
}
