package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FlowType says whether a transaction brings money in or sends it out.
type FlowType int

const (
	FlowIncome FlowType = iota
	FlowExpense
)

// MoneyType says which balance a transaction moves.
type MoneyType int

const (
	MoneyCash MoneyType = iota
	MoneyOnline
)

const (
	// OthersKeyword is the reserved keyword for the low-value bucket.
	// Transactions below the threshold regroup under it, and a filter
	// set to it selects by amount instead of keyword.
	OthersKeyword = "others"

	// OthersFoldLabel names the synthetic category-chart bucket that
	// collects categories under the percentage threshold. It is a
	// different rule from the OthersKeyword bucket and the two never
	// imply each other.
	OthersFoldLabel = "others (< 5%)"
)

// DateLayout is the transaction date format in uploads, day first.
const DateLayout = "02-01-2006"

var ErrBadDate = errors.New("invalid transaction date")

// othersThreshold is the fixed amount below which a transaction counts
// as low-value.
var othersThreshold = decimal.NewFromInt(500)

// Record is one transaction row from an uploaded CSV. Records keep file
// order; the last record in file order carries the authoritative balance
// snapshot.
type Record struct {
	Date        string // DD-MM-YYYY, as uploaded
	Day         string
	Time        string
	Keyword     string
	Flow        FlowType
	Amount      decimal.Decimal
	Description string
	MoneyType   MoneyType
	Place       string

	// Running balances, valid as of this record.
	RemainingCash   decimal.Decimal
	RemainingOnline decimal.Decimal
	WholeTotal      decimal.Decimal
}

// DecodeFlowType maps the source encoding of the Get/Spend column: the
// literal "0" is income, anything else is expense.
func DecodeFlowType(raw string) FlowType {
	if strings.TrimSpace(raw) == "0" {
		return FlowIncome
	}
	return FlowExpense
}

func (f FlowType) String() string {
	if f == FlowIncome {
		return "Income"
	}
	return "Expense"
}

// DecodeMoneyType maps the numeric source encoding: 0 is cash, anything
// else is online.
func DecodeMoneyType(code int64) MoneyType {
	if code == 0 {
		return MoneyCash
	}
	return MoneyOnline
}

func (m MoneyType) String() string {
	if m == MoneyCash {
		return "Cash"
	}
	return "Online"
}

// ParseDate parses a DD-MM-YYYY transaction date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// BelowOthersThreshold reports whether an amount belongs in the
// low-value "others" bucket.
func BelowOthersThreshold(d decimal.Decimal) bool {
	return d.LessThan(othersThreshold)
}
