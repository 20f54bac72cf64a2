// Package filter applies user-supplied criteria to a transaction set.
package filter

import (
	"strings"
	"time"

	"khata/internal/core"

	"github.com/shopspring/decimal"
)

// Criteria is the transient filter state coming from the dashboard
// controls. Unset fields pass every record; criteria are discarded after
// each application.
type Criteria struct {
	// Keyword matches exactly, except the reserved core.OthersKeyword
	// which selects low-value transactions regardless of their keyword.
	Keyword string

	// Inclusive date range. Zero time means unset.
	StartDate time.Time
	EndDate   time.Time

	// Inclusive amount range. Nil means unset.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	MoneyType *core.MoneyType
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Keyword == "" &&
		c.StartDate.IsZero() && c.EndDate.IsZero() &&
		c.MinAmount == nil && c.MaxAmount == nil &&
		c.MoneyType == nil
}

// OthersView reports whether the reserved low-value keyword is active.
func (c Criteria) OthersView() bool {
	return c.Keyword == core.OthersKeyword
}

// Key returns a stable string form of the criteria, used as a cache key.
func (c Criteria) Key() string {
	parts := []string{"kw=" + c.Keyword}
	if !c.StartDate.IsZero() {
		parts = append(parts, "from="+c.StartDate.Format(core.DateLayout))
	}
	if !c.EndDate.IsZero() {
		parts = append(parts, "to="+c.EndDate.Format(core.DateLayout))
	}
	if c.MinAmount != nil {
		parts = append(parts, "min="+c.MinAmount.String())
	}
	if c.MaxAmount != nil {
		parts = append(parts, "max="+c.MaxAmount.String())
	}
	if c.MoneyType != nil {
		parts = append(parts, "type="+c.MoneyType.String())
	}
	return strings.Join(parts, "|")
}

// Apply returns the records matching every set criterion, in their
// original order. The input is never modified. Callers always pass the
// full dataset: the "others" keyword is defined against the base set,
// never against an already narrowed one.
func Apply(records []core.Record, c Criteria) []core.Record {
	out := make([]core.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec core.Record, c Criteria) bool {
	if c.Keyword != "" {
		if c.OthersView() {
			if !core.BelowOthersThreshold(rec.Amount) {
				return false
			}
		} else if rec.Keyword != c.Keyword {
			return false
		}
	}

	if !c.StartDate.IsZero() || !c.EndDate.IsZero() {
		t, err := core.ParseDate(rec.Date)
		if err != nil {
			// Unparseable dates fail every date bound, silently.
			return false
		}
		if !c.StartDate.IsZero() && t.Before(c.StartDate) {
			return false
		}
		if !c.EndDate.IsZero() && t.After(c.EndDate) {
			return false
		}
	}

	if c.MinAmount != nil && rec.Amount.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && rec.Amount.GreaterThan(*c.MaxAmount) {
		return false
	}
	if c.MoneyType != nil && rec.MoneyType != *c.MoneyType {
		return false
	}
	return true
}
