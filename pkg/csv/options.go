package csv

import (
	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/infer"
)

// FieldDelimiter is a reader option slot: either a concrete Delimiter to
// use outright, or a set of candidates to run through inference.
type FieldDelimiter struct {
	infer      bool
	concrete   delimiter.Delimiter
	candidates []delimiter.Delimiter
}

// UseFieldDelimiter pins the field delimiter to s.
func UseFieldDelimiter(s string) FieldDelimiter {
	return FieldDelimiter{concrete: delimiter.MustNew(s)}
}

// InferFieldDelimiter runs inference over the given candidate scalars. If
// candidates is empty, the package default candidate set is used
// (`{",", ";", "\t"}`).
func InferFieldDelimiter(candidates ...string) FieldDelimiter {
	ds := make([]delimiter.Delimiter, len(candidates))
	for i, c := range candidates {
		ds[i] = delimiter.MustNew(c)
	}
	return FieldDelimiter{infer: true, candidates: ds}
}

// resolved returns the set of concrete delimiters this slot could settle
// on: the single pinned value if concrete, or its candidate list
// (defaulted if empty) if inference-enabled.
func (f FieldDelimiter) resolved() []delimiter.Delimiter {
	if !f.infer {
		return []delimiter.Delimiter{f.concrete}
	}
	if len(f.candidates) == 0 {
		return defaultFieldCandidates()
	}
	return f.candidates
}

// RowDelimiter is a reader option slot: either a concrete RowDelimiterSet
// to use outright, or a list of candidate sets to run through inference.
type RowDelimiter struct {
	infer      bool
	concrete   delimiter.RowDelimiterSet
	candidates []delimiter.RowDelimiterSet
}

// UseRowDelimiters pins the row delimiter set to ds.
func UseRowDelimiters(ds ...string) RowDelimiter {
	delims := make([]delimiter.Delimiter, len(ds))
	for i, s := range ds {
		delims[i] = delimiter.MustNew(s)
	}
	set, err := delimiter.NewRowDelimiterSet(delims...)
	if err != nil {
		panic(err)
	}
	return RowDelimiter{concrete: set}
}

// InferRowDelimiter runs inference treating each candidate scalar as a
// one-element row delimiter set. The tokenizer's multi-alternative
// row-delimiter support is only exercised when the user explicitly passes
// a set via UseRowDelimiters. If candidates is empty, the package default
// (`{"\n", "\r\n"}`) is used.
func InferRowDelimiter(candidates ...string) RowDelimiter {
	sets := make([]delimiter.RowDelimiterSet, len(candidates))
	for i, c := range candidates {
		set, err := delimiter.NewRowDelimiterSet(delimiter.MustNew(c))
		if err != nil {
			panic(err)
		}
		sets[i] = set
	}
	return RowDelimiter{infer: true, candidates: sets}
}

// resolved is RowDelimiter's counterpart to FieldDelimiter.resolved.
func (r RowDelimiter) resolved() []delimiter.RowDelimiterSet {
	if !r.infer {
		return []delimiter.RowDelimiterSet{r.concrete}
	}
	if len(r.candidates) == 0 {
		return defaultRowCandidates()
	}
	return r.candidates
}

// EscapeStrategy selects how fields are escaped on read/write.
type EscapeStrategy struct {
	has    bool
	scalar rune
}

// EscapeNone disables field escaping: delimiters may never appear raw
// inside a field.
func EscapeNone() EscapeStrategy { return EscapeStrategy{} }

// EscapeScalar enables escaping with the given scalar.
func EscapeScalar(r rune) EscapeStrategy { return EscapeStrategy{has: true, scalar: r} }

// EscapeDoubleQuote is EscapeScalar('"').
func EscapeDoubleQuote() EscapeStrategy { return EscapeScalar('"') }

// HeaderStrategy controls whether the first row is captured as a header.
type HeaderStrategy int

const (
	HeaderNone HeaderStrategy = iota
	HeaderFirstLine
)

// BOMStrategy controls whether the writer emits a byte-order mark.
type BOMStrategy int

const (
	// BOMConvention emits a BOM only when the configured encoding
	// conventionally carries one (e.g. UTF-16); the writer's own scalar
	// encoding is UTF-8, for which the convention is "no BOM".
	BOMConvention BOMStrategy = iota
	BOMAlways
	BOMNever
)

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	Field   FieldDelimiter
	Row     RowDelimiter
	Escape  EscapeStrategy
	Header  HeaderStrategy
	TrimSet map[rune]struct{}
	Comment rune

	// OnBadRow selects recovery behavior for a row-width violation; see
	// internal/tokenizer.BadRowMode.
	OnBadRow   BadRowMode
	Warning    func(row int, message string)
	SampleSize int
}

// BadRowMode mirrors internal/tokenizer.BadRowMode at the package
// boundary so callers don't need to import the internal package.
type BadRowMode int

const (
	BadRowError BadRowMode = iota
	BadRowWarn
	BadRowSkip
)

// Validate checks cfg's delimiter/escape/trim configuration on its own,
// without reading any input. For a concrete Field/Row it checks the one
// resulting pair; for an inference-enabled slot it checks every
// field/row combination the candidate lists could produce, so a
// configuration that could never infer a valid dialect is caught before
// NewReader ever samples the source.
func (cfg ReaderConfig) Validate() error {
	opts := delimiter.ValidationOptions{HasEscape: cfg.Escape.has, Escape: cfg.Escape.scalar, TrimSet: cfg.TrimSet}
	for _, field := range cfg.Field.resolved() {
		for _, row := range cfg.Row.resolved() {
			pair := delimiter.DelimitersPair{Field: field, Row: row}
			if err := pair.Validate(opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefaultReaderConfig returns a sensible default reader configuration:
// both delimiters inferred from their default candidate sets, no escape,
// no header capture, no trimming, no comment lines, hard-fail on bad rows.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Field:      InferFieldDelimiter(),
		Row:        InferRowDelimiter(),
		Escape:     EscapeNone(),
		Header:     HeaderNone,
		OnBadRow:   BadRowError,
		SampleSize: infer.DefaultSampleSize,
	}
}

// WriterConfig configures a Writer. It mirrors ReaderConfig where
// symmetric, plus the BOM strategy. Unlike the reader, a writer's
// delimiters are always concrete: inference only makes sense when reading
// unknown data, and the writer emits exactly one row delimiter per
// end_row, not a set.
type WriterConfig struct {
	Field  delimiter.Delimiter
	Row    delimiter.Delimiter
	Escape EscapeStrategy
	BOM    BOMStrategy
}

// DefaultWriterConfig returns comma fields, LF rows, double-quote
// escaping, and BOM-by-convention (none, for UTF-8).
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Field:  delimiter.MustNew(","),
		Row:    delimiter.MustNew("\n"),
		Escape: EscapeDoubleQuote(),
		BOM:    BOMConvention,
	}
}

// Validate checks cfg's delimiter/escape configuration on its own,
// without writing anything.
func (cfg WriterConfig) Validate() error {
	rowSet, err := delimiter.NewRowDelimiterSet(cfg.Row)
	if err != nil {
		return err
	}
	pair := delimiter.DelimitersPair{Field: cfg.Field, Row: rowSet}
	opts := delimiter.ValidationOptions{HasEscape: cfg.Escape.has, Escape: cfg.Escape.scalar}
	return pair.Validate(opts)
}

// defaultFieldCandidates is the default field-inference candidate set.
func defaultFieldCandidates() []delimiter.Delimiter {
	return []delimiter.Delimiter{
		delimiter.MustNew(","),
		delimiter.MustNew(";"),
		delimiter.MustNew("\t"),
	}
}

// defaultRowCandidates is the default row-inference candidate set.
func defaultRowCandidates() []delimiter.RowDelimiterSet {
	lf, _ := delimiter.NewRowDelimiterSet(delimiter.MustNew("\n"))
	crlf, _ := delimiter.NewRowDelimiterSet(delimiter.MustNew("\r\n"))
	return []delimiter.RowDelimiterSet{lf, crlf}
}

// StandardRowDelimiters accepts mixed CRLF/LF within one stream, as a
// concrete Use option.
func StandardRowDelimiters() RowDelimiter {
	return UseRowDelimiters("\n", "\r\n")
}
