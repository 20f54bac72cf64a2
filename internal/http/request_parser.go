// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"khata/internal/core"
	"khata/internal/filter"

	"github.com/shopspring/decimal"
)

// queryDateLayout is the format of the page's date inputs.
const queryDateLayout = "2006-01-02"

// parseCriteria extracts filter criteria from dashboard query
// parameters. Unknown or malformed values are rejected rather than
// silently ignored, so the page can surface the mistake.
func parseCriteria(query url.Values) (filter.Criteria, error) {
	var c filter.Criteria

	c.Keyword = sanitizeInput(query.Get("keyword"))

	if v := strings.TrimSpace(query.Get("start")); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid start date %q", v)
		}
		c.StartDate = t
	}
	if v := strings.TrimSpace(query.Get("end")); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid end date %q", v)
		}
		c.EndDate = t
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return filter.Criteria{}, fmt.Errorf("end date before start date")
	}

	if v := strings.TrimSpace(query.Get("min")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid minimum amount %q", v)
		}
		c.MinAmount = &d
	}
	if v := strings.TrimSpace(query.Get("max")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid maximum amount %q", v)
		}
		c.MaxAmount = &d
	}

	if v := strings.TrimSpace(query.Get("type")); v != "" {
		mt, err := parseMoneyType(v)
		if err != nil {
			return filter.Criteria{}, err
		}
		c.MoneyType = &mt
	}

	return c, nil
}

func parseMoneyType(v string) (core.MoneyType, error) {
	switch strings.ToLower(v) {
	case "cash", "0":
		return core.MoneyCash, nil
	case "online", "1":
		return core.MoneyOnline, nil
	default:
		return 0, fmt.Errorf("invalid money type %q", v)
	}
}
