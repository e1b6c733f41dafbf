// Package delimiter implements the Delimiter, RowDelimiterSet, DelimitersPair
// and Dialect value types: non-empty ordered scalar sequences and the
// validated configuration built from them.
package delimiter

import (
	"sort"
	"strings"
)

// Delimiter is a non-empty ordered sequence of Unicode scalars recognized
// atomically. It is backed by a plain string (its natural UTF-8 encoding),
// so equality and hashing are the scalar sequence's equality and hashing.
// Delimiters are immutable once constructed.
type Delimiter string

// New validates and returns a Delimiter. A Delimiter must contain at least
// one scalar.
func New(s string) (Delimiter, error) {
	if s == "" {
		return "", errEmpty
	}
	return Delimiter(s), nil
}

// MustNew is like New but panics on error. Intended for package-level
// default values built from literal strings.
func MustNew(s string) Delimiter {
	d, err := New(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Runes returns the delimiter's scalar sequence.
func (d Delimiter) Runes() []rune {
	return []rune(string(d))
}

// Len returns the number of scalars in the delimiter.
func (d Delimiter) Len() int {
	return len([]rune(string(d)))
}

// String implements fmt.Stringer.
func (d Delimiter) String() string {
	return string(d)
}

// IsPrefixOf reports whether d is a scalar-sequence prefix of other
// (including the case where they are equal).
func (d Delimiter) IsPrefixOf(other Delimiter) bool {
	return strings.HasPrefix(string(other), string(d))
}

// eitherIsPrefixOf reports whether a is a prefix of b or b is a prefix of a.
func eitherIsPrefixOf(a, b Delimiter) bool {
	return a.IsPrefixOf(b) || b.IsPrefixOf(a)
}

// ContainsScalar reports whether r appears anywhere in the delimiter.
func (d Delimiter) ContainsScalar(r rune) bool {
	return strings.ContainsRune(string(d), r)
}

// RowDelimiterSet is a non-empty set of Delimiters recognized as row
// terminators, ordered longest-scalar-count-first for matching purposes.
type RowDelimiterSet struct {
	delims []Delimiter
}

// NewRowDelimiterSet validates and returns a RowDelimiterSet. At least one
// delimiter must be supplied and each must be non-empty (guaranteed since
// they are already Delimiter values).
func NewRowDelimiterSet(ds ...Delimiter) (RowDelimiterSet, error) {
	if len(ds) == 0 {
		return RowDelimiterSet{}, errEmptySet
	}
	cp := make([]Delimiter, len(ds))
	copy(cp, ds)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Len() > cp[j].Len()
	})
	return RowDelimiterSet{delims: cp}, nil
}

// Delimiters returns the set's members, longest-first.
func (s RowDelimiterSet) Delimiters() []Delimiter {
	out := make([]Delimiter, len(s.delims))
	copy(out, s.delims)
	return out
}

// Len returns the set's cardinality.
func (s RowDelimiterSet) Len() int {
	return len(s.delims)
}

// TotalScalarLen returns the sum of scalar lengths of every member, used as
// a tie-breaking criterion during dialect inference.
func (s RowDelimiterSet) TotalScalarLen() int {
	n := 0
	for _, d := range s.delims {
		n += d.Len()
	}
	return n
}

// Digest returns a canonical, order-independent string representation used
// for Dialect.Key(), for Equal, and by the inferrer to dedupe candidate sets
// that name the same delimiters in a different order.
func (s RowDelimiterSet) Digest() string {
	strs := make([]string, len(s.delims))
	for i, d := range s.delims {
		strs[i] = string(d)
	}
	sort.Strings(strs)
	return strings.Join(strs, "\x1f")
}

// Equal reports whether s and other name the same set of delimiters,
// independent of construction order.
func (s RowDelimiterSet) Equal(other RowDelimiterSet) bool {
	return s.Digest() == other.Digest()
}

// DelimitersPair is the validated (field, row) pair used by the tokenizer.
type DelimitersPair struct {
	Field Delimiter
	Row   RowDelimiterSet
}

// Dialect is a DelimitersPair plus the escape scalar, the key of the
// inference scoring map.
type Dialect struct {
	Field     Delimiter
	Row       RowDelimiterSet
	HasEscape bool
	Escape    rune
}

// Key returns a deterministic string identifying the dialect, used as the
// inference scoring map key.
func (d Dialect) Key() string {
	esc := "-"
	if d.HasEscape {
		esc = string(d.Escape)
	}
	return string(d.Field) + "\x1e" + d.Row.Digest() + "\x1e" + esc
}

// Pair returns the DelimitersPair embedded in the dialect.
func (d Dialect) Pair() DelimitersPair {
	return DelimitersPair{Field: d.Field, Row: d.Row}
}

// ValidationOptions carries the escape scalar and trim set needed to fully
// validate a DelimitersPair's invariants.
type ValidationOptions struct {
	HasEscape bool
	Escape    rune
	TrimSet   map[rune]struct{}
}

// Validate checks every configuration invariant:
//
//   - Neither the field delimiter nor any row delimiter is a prefix of the
//     other, in either direction.
//   - If an escape scalar is configured, it is not contained in the field
//     delimiter, any row delimiter, or the trim set.
//   - If a trim set is configured, it is disjoint from all delimiter
//     scalars and from the escape scalar.
func (p DelimitersPair) Validate(opts ValidationOptions) error {
	for _, row := range p.Row.Delimiters() {
		if eitherIsPrefixOf(p.Field, row) {
			return &ConfigError{
				Reason: "field delimiter and row delimiter are prefixes of one another",
				Field:  string(p.Field),
				Row:    string(row),
			}
		}
	}
	if opts.HasEscape {
		if p.Field.ContainsScalar(opts.Escape) {
			return &ConfigError{
				Reason: "escape scalar collides with field delimiter",
				Field:  string(p.Field),
				Escape: string(opts.Escape),
			}
		}
		for _, row := range p.Row.Delimiters() {
			if row.ContainsScalar(opts.Escape) {
				return &ConfigError{
					Reason: "escape scalar collides with row delimiter",
					Row:    string(row),
					Escape: string(opts.Escape),
				}
			}
		}
		if _, trimmed := opts.TrimSet[opts.Escape]; trimmed {
			return &ConfigError{
				Reason: "escape scalar collides with trim set",
				Escape: string(opts.Escape),
			}
		}
	}
	for r := range opts.TrimSet {
		if p.Field.ContainsScalar(r) {
			return &ConfigError{
				Reason: "trim set collides with field delimiter",
				Field:  string(p.Field),
			}
		}
		for _, row := range p.Row.Delimiters() {
			if row.ContainsScalar(r) {
				return &ConfigError{
					Reason: "trim set collides with row delimiter",
					Row:    string(row),
				}
			}
		}
	}
	return nil
}

// ConfigError reports an invalid delimiter/escape/trim configuration.
// Callers at the pkg/csv boundary wrap this into the Kind=invalidConfiguration
// taxonomy.
type ConfigError struct {
	Reason string
	Field  string
	Row    string
	Escape string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

var (
	errEmpty    = &ConfigError{Reason: "delimiter must contain at least one scalar"}
	errEmptySet = &ConfigError{Reason: "row delimiter set must contain at least one delimiter"}
)
