package importer

import "strings"

// SampleCSV returns the downloadable template: the canonical header row
// plus one example transaction. It illustrates the expected shape and is
// not validated further.
func SampleCSV() string {
	rows := [][]string{
		{colDate, colDay, colTime, colKeyword, colFlow, colMoney,
			colDescription, colMoneyType, colPlace,
			colRemainingCash, colRemainingOnline, colWholeTotal},
		{"05-01-2025", "Sunday", "11:00 PM", "elluminati", "0", "5000.00",
			"Elluminati stipend", "1", "home",
			"400.00", "5900.38", "6300.38"},
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}
