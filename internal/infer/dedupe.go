package infer

import "github.com/shapestone/scalarcsv/internal/delimiter"

// dedupeFields collapses duplicate field-delimiter candidates by
// scalar-sequence equality, preserving first-seen order. Without this, a
// caller-supplied candidate list with repeats would double-count the same
// dialect during scoring.
func dedupeFields(cands []delimiter.Delimiter) []delimiter.Delimiter {
	seen := make(map[delimiter.Delimiter]struct{}, len(cands))
	out := make([]delimiter.Delimiter, 0, len(cands))
	for _, c := range cands {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// dedupeRows collapses duplicate row-delimiter-set candidates by their
// digest (order-independent set equality), preserving first-seen order.
func dedupeRows(cands []delimiter.RowDelimiterSet) []delimiter.RowDelimiterSet {
	seen := make(map[string]struct{}, len(cands))
	out := make([]delimiter.RowDelimiterSet, 0, len(cands))
	for _, c := range cands {
		digest := c.Digest()
		if _, ok := seen[digest]; ok {
			continue
		}
		seen[digest] = struct{}{}
		out = append(out, c)
	}
	return out
}
