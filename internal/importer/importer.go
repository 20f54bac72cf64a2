// Package importer turns uploaded transaction CSVs into records.
//
// Uploads come from real spreadsheet exports, so the parse is lenient:
// blank lines are skipped, rows with missing trailing fields are padded
// with empty strings, and money-bearing columns go through the tolerant
// currency parse instead of failing the row.
package importer

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"khata/internal/core"

	"github.com/shopspring/decimal"
)

// ErrFormat reports that the uploaded content is not row-shaped
// transaction data.
var ErrFormat = errors.New("not row-shaped transaction data")

// Canonical column names expected in the header row.
const (
	colDate            = "Date"
	colDay             = "Day"
	colTime            = "Time"
	colKeyword         = "Unique Keyword"
	colFlow            = "Get/Spend Type"
	colMoney           = "Money"
	colDescription     = "Description"
	colMoneyType       = "Money Type"
	colPlace           = "Place"
	colRemainingCash   = "Remaining Money in Cash"
	colRemainingOnline = "Remaining Money in Online"
	colWholeTotal      = "Whole Total"

	// tickMarkColumn is an optional source column dropped entirely,
	// header and values both.
	tickMarkColumn = "Tick mark"
)

var requiredColumns = []string{
	colDate, colDay, colTime, colKeyword, colFlow, colMoney,
	colDescription, colMoneyType, colPlace,
	colRemainingCash, colRemainingOnline, colWholeTotal,
}

// moneyColumn matches headers whose values pass through the money
// normalizer. "Money Type" matches too, which is how the source data
// encodes it as a number.
var moneyColumn = regexp.MustCompile(`(?i)money|total`)

// moneyJunk strips quoting, mis-encoded currency glyphs and thousands
// separators ahead of the tolerant numeric parse.
var moneyJunk = strings.NewReplacer(`"`, "", "?", "", ",", "")

// Parse reads comma-delimited transaction CSV into records, preserving
// file order. Line 0 is the header; commas inside double-quoted spans do
// not split. An empty or header-only upload yields an empty record list
// and no error; a header missing the canonical columns is ErrFormat.
func Parse(r io.Reader) ([]core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, nil
	}

	headers := splitQuoted(lines[0])
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	tickIdx := -1
	for i, h := range headers {
		if h == tickMarkColumn {
			tickIdx = i
			break
		}
	}
	if tickIdx >= 0 {
		headers = append(headers[:tickIdx], headers[tickIdx+1:]...)
	}

	if err := checkHeader(headers); err != nil {
		return nil, err
	}

	records := make([]core.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitQuoted(line)
		if tickIdx >= 0 && tickIdx < len(values) {
			values = append(values[:tickIdx], values[tickIdx+1:]...)
		}

		fields := make(map[string]string, len(headers))
		moneys := make(map[string]decimal.Decimal)
		for i, h := range headers {
			v := ""
			if i < len(values) {
				v = strings.TrimSpace(values[i])
			}
			if moneyColumn.MatchString(h) {
				moneys[h] = core.NormalizeMoney(moneyJunk.Replace(v))
			} else {
				fields[h] = v
			}
		}

		records = append(records, core.Record{
			Date:            fields[colDate],
			Day:             fields[colDay],
			Time:            fields[colTime],
			Keyword:         fields[colKeyword],
			Flow:            core.DecodeFlowType(fields[colFlow]),
			Amount:          moneys[colMoney],
			Description:     fields[colDescription],
			MoneyType:       core.DecodeMoneyType(moneys[colMoneyType].IntPart()),
			Place:           fields[colPlace],
			RemainingCash:   moneys[colRemainingCash],
			RemainingOnline: moneys[colRemainingOnline],
			WholeTotal:      moneys[colWholeTotal],
		})
	}
	return records, nil
}

func checkHeader(headers []string) error {
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		seen[h] = struct{}{}
	}
	for _, want := range requiredColumns {
		if _, ok := seen[want]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrFormat, want)
		}
	}
	return nil
}

// splitLines drops blank lines and trailing carriage returns.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitQuoted splits on commas that sit outside double-quoted spans, the
// CSV convention for descriptions containing commas. Quotes stay part of
// the value; the money cleaner strips its own.
func splitQuoted(line string) []string {
	var out []string
	var field strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			field.WriteRune(r)
		case r == ',' && !inQuotes:
			out = append(out, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	out = append(out, field.String())
	return out
}
