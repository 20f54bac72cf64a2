package importer

import (
	"errors"
	"strings"
	"testing"

	"khata/internal/core"

	"github.com/shopspring/decimal"
)

const header = "Date,Day,Time,Unique Keyword,Get/Spend Type,Money,Description,Money Type,Place,Remaining Money in Cash,Remaining Money in Online,Whole Total"

func mustParse(t *testing.T, csv string) []core.Record {
	t.Helper()
	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return records
}

func TestParseSample(t *testing.T) {
	records := mustParse(t, SampleCSV())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Date != "05-01-2025" || rec.Day != "Sunday" || rec.Time != "11:00 PM" {
		t.Fatalf("wrong date fields: %+v", rec)
	}
	if rec.Keyword != "elluminati" || rec.Place != "home" {
		t.Fatalf("wrong tag fields: %+v", rec)
	}
	if rec.Flow != core.FlowIncome {
		t.Fatalf("expected income, got %v", rec.Flow)
	}
	if rec.MoneyType != core.MoneyOnline {
		t.Fatalf("expected online, got %v", rec.MoneyType)
	}
	if !rec.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("wrong amount: %s", rec.Amount)
	}
	if rec.RemainingCash.String() != "400" || rec.RemainingOnline.String() != "5900.38" || rec.WholeTotal.String() != "6300.38" {
		t.Fatalf("wrong balances: %+v", rec)
	}
}

func TestParseTickMarkColumnDropped(t *testing.T) {
	csv := "Tick mark," + header + "\n" +
		"x,05-01-2025,Sunday,11:00 PM,chai,1,? 1,Tea,0,office,100.00,200.00,300.00\n"
	// The tick value occupies column 0 and must not shift the rest.
	records := mustParse(t, csv)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Date != "05-01-2025" || rec.Keyword != "chai" {
		t.Fatalf("tick-mark column shifted fields: %+v", rec)
	}
}

func TestParseQuotedComma(t *testing.T) {
	csv := header + "\n" +
		`10-02-2025,Monday,09:00 AM,grocery,1,"1,234.56","milk, eggs and bread",0,market,500.00,700.00,1200.00` + "\n"
	records := mustParse(t, csv)
	rec := records[0]
	if !rec.Amount.Equal(decimal.NewFromFloat(1234.56)) {
		t.Fatalf("quoted money not normalized: %s", rec.Amount)
	}
	if !strings.Contains(rec.Description, "milk, eggs and bread") {
		t.Fatalf("quoted description split: %q", rec.Description)
	}
}

func TestParseDirtyMoney(t *testing.T) {
	csv := header + "\n" +
		"10-02-2025,Monday,09:00 AM,rent,1,? 1,234.56,room rent,1,home,0,0,0\n"
	// Unquoted comma in money splits the row; missing trailing fields
	// become empty and the money fields degrade to parseable pieces.
	records := mustParse(t, csv)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParseMissingTrailingFields(t *testing.T) {
	csv := header + "\n" +
		"10-02-2025,Monday,09:00 AM,chai,1,50\n"
	records := mustParse(t, csv)
	rec := records[0]
	if rec.Description != "" || rec.Place != "" {
		t.Fatalf("missing fields not empty: %+v", rec)
	}
	if !rec.RemainingCash.IsZero() || !rec.WholeTotal.IsZero() {
		t.Fatalf("missing money fields not zero: %+v", rec)
	}
}

func TestParseEmptyAndHeaderOnly(t *testing.T) {
	for _, csv := range []string{"", "\n\n  \n", header + "\n"} {
		records, err := Parse(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", csv, err)
		}
		if len(records) != 0 {
			t.Fatalf("%q: expected no records, got %d", csv, len(records))
		}
	}
}

func TestParseBadHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("just,some,random,columns\n1,2,3,4\n"))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParsePreservesOrder(t *testing.T) {
	csv := header + "\n" +
		"01-01-2025,Wed,am,a,0,100,first,0,x,1,1,1\n" +
		"02-01-2025,Thu,am,b,1,200,second,1,y,2,2,2\n" +
		"03-01-2025,Fri,am,c,0,300,third,0,z,3,3,3\n"
	records := mustParse(t, csv)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"a", "b", "c"} {
		if records[i].Keyword != want {
			t.Fatalf("record %d out of order: %q", i, records[i].Keyword)
		}
	}
}
