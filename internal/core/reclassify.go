package core

// ReclassifyOthers returns a copy of records where every transaction
// below the low-value threshold has its keyword rewritten to
// OthersKeyword. Records at or above the threshold pass through
// unchanged. The input slice is never modified.
func ReclassifyOthers(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		if BelowOthersThreshold(out[i].Amount) {
			out[i].Keyword = OthersKeyword
		}
	}
	return out
}
