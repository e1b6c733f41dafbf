// Package tokenizer implements the streaming Reader core: the row-oriented
// parse loop of field assembly, escaping, trimming, and delimiter dispatch.
//
// Unlike a recursive-descent parser fixed at a single comma/quote/newline
// token alphabet, this is a scalar-at-a-time state machine driven by
// configurable, possibly multi-scalar, delimiters chosen (or inferred) at
// configuration time.
package tokenizer

import (
	"io"
	"strings"

	"github.com/shapestone/scalarcsv/internal/buffer"
	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/matcher"
)

// BadRowMode specifies how the reader handles malformed rows.
type BadRowMode int

const (
	// BadRowError returns an error on malformed rows (default).
	BadRowError BadRowMode = iota
	// BadRowWarn invokes Config.Warning (if set) and skips the row.
	BadRowWarn
	// BadRowSkip silently discards the row.
	BadRowSkip
)

// Status is the reader's lifecycle state.
type Status int

const (
	StatusActive Status = iota
	StatusFinished
	StatusFailed
)

// Config configures a Reader. Field/Row have already been validated by the
// caller — typically pkg/csv after resolving its inference-option slots via
// internal/infer.
type Config struct {
	Field     delimiter.Delimiter
	Row       delimiter.RowDelimiterSet
	HasEscape bool
	Escape    rune
	TrimSet   map[rune]struct{}
	Comment   rune // 0 disables comment-line skipping
	OnBadRow  BadRowMode
	Warning   func(row int, msg string)

	// SkipWidthInvariant disables row-width enforcement entirely, returning
	// each row's raw field count unchecked. Set only by the dialect
	// inferrer's speculative trial readers (internal/infer): pattern
	// scoring needs the actual, possibly varying, field count per row — a
	// wrong candidate dialect is expected to shatter into rows of
	// differing widths, which is the very signal the scorer measures.
	SkipWidthInvariant bool
}

// Reader is the streaming tokenizer. It is single-owner and not
// thread-safe.
type Reader struct {
	src matcher.Source
	buf *buffer.ScalarBuffer
	cfg Config

	fieldDelim []rune
	rowCands   []matcher.Candidate

	status  Status
	failErr error

	rowIndex       int
	expectedFields int // 0 = not yet fixed
	inputOffset    int64
}

// New constructs a Reader. The caller is responsible for having validated
// cfg.Field/cfg.Row/cfg.Escape/cfg.TrimSet before calling New
// (construction-time errors are surfaced by the caller, not here, since
// validation may need to run once up front for both Reader and the
// dialect inferrer).
func New(src matcher.Source, cfg Config) *Reader {
	return NewWithBuffer(buffer.New(), src, cfg)
}

// NewWithBuffer is like New but reuses a caller-supplied, presumably
// freshly-drained ScalarBuffer instead of allocating one. The dialect
// inferrer (internal/infer) borrows buffers from a pool and builds a trial
// Reader per candidate dialect this way, avoiding one allocation per
// candidate evaluated against the sample.
func NewWithBuffer(buf *buffer.ScalarBuffer, src matcher.Source, cfg Config) *Reader {
	rowDs := cfg.Row.Delimiters()
	cands := make([]matcher.Candidate, len(rowDs))
	for i, d := range rowDs {
		cands[i] = matcher.Candidate{Scalars: d.Runes(), Token: i}
	}
	return &Reader{
		src:        src,
		buf:        buf,
		cfg:        cfg,
		fieldDelim: cfg.Field.Runes(),
		rowCands:   cands,
	}
}

// Buffer exposes the reader's ScalarBuffer so callers (the dialect
// inferrer's sampling step) can pre-load and later restore a lookahead
// sample.
func (r *Reader) Buffer() *buffer.ScalarBuffer {
	return r.buf
}

// Status reports the reader's current lifecycle state.
func (r *Reader) Status() Status {
	return r.status
}

// Err returns the sticky failure, if the reader is in StatusFailed.
func (r *Reader) Err() error {
	return r.failErr
}

// RowIndex returns the number of rows successfully returned so far
// (including any row the caller consumed as a header).
func (r *Reader) RowIndex() int {
	return r.rowIndex
}

// InputOffset returns an approximate count of scalars the reader has
// irrevocably consumed from the stream (restored lookahead scalars are not
// counted twice).
func (r *Reader) InputOffset() int64 {
	return r.inputOffset
}

// pull pulls the next scalar, preferring the buffer over the source, and
// counts it toward InputOffset.
func (r *Reader) pull() (rune, bool, error) {
	if v, ok := r.buf.Next(); ok {
		r.inputOffset++
		return v, true, nil
	}
	v, ok, err := r.src()
	if err != nil {
		return 0, false, &StreamError{Err: err}
	}
	if ok {
		r.inputOffset++
	}
	return v, ok, nil
}

func (r *Reader) isFieldDelim(s rune) (bool, error) {
	return matcher.Match(r.fieldDelim, s, r.buf, r.src)
}

func (r *Reader) isRowDelim(s rune) (bool, error) {
	_, ok, err := matcher.MatchAny(r.rowCands, s, r.buf, r.src)
	return ok, err
}

func (r *Reader) isTrim(s rune) bool {
	if len(r.cfg.TrimSet) == 0 {
		return false
	}
	_, ok := r.cfg.TrimSet[s]
	return ok
}

// ReadRow reads the next row. It returns (nil, io.EOF) at a clean end of
// stream, mirroring the convention of encoding/csv.Reader.Read and the
// standard library's own io.Reader-based surfaces.
func (r *Reader) ReadRow() ([]string, error) {
	switch r.status {
	case StatusFailed:
		return nil, r.failErr
	case StatusFinished:
		return nil, io.EOF
	}

	for {
		row, err := r.readOneRow()
		if err != nil {
			if err == io.EOF {
				r.status = StatusFinished
				return nil, io.EOF
			}
			if badErr, isBad := err.(*badRowError); isBad {
				switch r.cfg.OnBadRow {
				case BadRowSkip:
					continue
				case BadRowWarn:
					if r.cfg.Warning != nil {
						r.cfg.Warning(r.rowIndex, badErr.Error())
					}
					continue
				}
			}
			r.status = StatusFailed
			r.failErr = err
			return nil, err
		}
		if row == nil {
			// Comment line: keep looping without advancing rowIndex.
			continue
		}
		r.rowIndex++
		return row, nil
	}
}

// badRowError marks a row-level error eligible for BadRowWarn/BadRowSkip
// recovery (row-width mismatch, malformed escaped field) as opposed to
// construction-time or stream errors, which are never recoverable.
type badRowError struct{ err error }

func (e *badRowError) Error() string { return e.err.Error() }
func (e *badRowError) Unwrap() error { return e.err }

// readOneRow reads a single row, or returns (nil, nil) for a skipped
// comment line so the caller's loop can continue without counting it.
func (r *Reader) readOneRow() ([]string, error) {
	if r.cfg.Comment != 0 {
		isComment, eof, err := r.checkCommentLine()
		if err != nil {
			return nil, err
		}
		if eof {
			return nil, io.EOF
		}
		if isComment {
			r.skipToRowEnd()
			return nil, nil
		}
	}

	fields := make([]string, 0, max(r.expectedFields, 4))
	for {
		field, closed, atStreamEnd, err := r.readField()
		if err != nil {
			return nil, err
		}
		if atStreamEnd {
			// Field-start found nothing at all: if fields were already
			// produced in this row (a field delimiter was consumed just
			// before), the row ends here without a trailing empty field;
			// otherwise this is a clean end of stream, not a new row.
			if len(fields) == 0 {
				return nil, io.EOF
			}
			break
		}
		fields = append(fields, field)
		if closed {
			break
		}
	}

	if r.cfg.SkipWidthInvariant {
		return fields, nil
	}
	if r.expectedFields == 0 {
		r.expectedFields = len(fields)
	} else if len(fields) != r.expectedFields {
		return nil, &badRowError{err: &WidthError{
			Row:      r.rowIndex,
			Got:      len(fields),
			Expected: r.expectedFields,
		}}
	}
	return fields, nil
}

// checkCommentLine peeks the first non-trim scalar of the row. If it
// equals the configured comment scalar, reports isComment=true, leaving
// the scalar consumed (the caller then discards the rest of the line via
// skipToRowEnd). Otherwise the scalar is pushed back so normal field
// parsing sees it.
func (r *Reader) checkCommentLine() (isComment bool, eof bool, err error) {
	s, ok, perr := r.skipLeadingTrim()
	if perr != nil {
		return false, false, perr
	}
	if !ok {
		return false, true, nil
	}
	if s == r.cfg.Comment {
		return true, false, nil
	}
	r.buf.Push(s)
	return false, false, nil
}

// skipToRowEnd discards scalars up to and including the next row delimiter
// or EOF, used for comment-line skipping.
func (r *Reader) skipToRowEnd() {
	for {
		s, ok, err := r.pull()
		if err != nil || !ok {
			return
		}
		isRow, err := r.isRowDelim(s)
		if err != nil {
			return
		}
		if isRow {
			return
		}
	}
}

// readField reads one field starting at field-start state. It returns the
// field's content, whether the row closed after it (a row delimiter was
// consumed or EOF finalized the last field), and atStreamEnd — true only
// when field-start found no scalar other than trim scalars before EOF, as
// opposed to a field whose content was legitimately finalized by EOF.
func (r *Reader) readField() (content string, rowClosed bool, atStreamEnd bool, err error) {
	s, ok, perr := r.skipLeadingTrim()
	if perr != nil {
		return "", false, false, perr
	}
	if !ok {
		return "", false, true, nil
	}

	if r.cfg.HasEscape && s == r.cfg.Escape {
		return r.readEscapedField()
	}

	if isDelim, derr := r.isFieldDelim(s); derr != nil {
		return "", false, false, derr
	} else if isDelim {
		return "", false, false, nil
	}

	if isRow, rerr := r.isRowDelim(s); rerr != nil {
		return "", false, false, rerr
	} else if isRow {
		return "", true, false, nil
	}

	var b strings.Builder
	b.WriteRune(s)
	for {
		s, ok, perr := r.pull()
		if perr != nil {
			return "", false, false, perr
		}
		if !ok {
			// EOF mid-field: finalize the last field and row.
			return r.trimTrailing(b.String()), true, false, nil
		}
		if isDelim, derr := r.isFieldDelim(s); derr != nil {
			return "", false, false, derr
		} else if isDelim {
			return r.trimTrailing(b.String()), false, false, nil
		}
		if isRow, rerr := r.isRowDelim(s); rerr != nil {
			return "", false, false, rerr
		} else if isRow {
			return r.trimTrailing(b.String()), true, false, nil
		}
		b.WriteRune(s)
	}
}

// skipLeadingTrim discards leading trim scalars, returning the first
// non-trim scalar encountered (or ok=false at EOF).
func (r *Reader) skipLeadingTrim() (rune, bool, error) {
	for {
		s, ok, err := r.pull()
		if err != nil || !ok {
			return 0, ok, err
		}
		if !r.isTrim(s) {
			return s, true, nil
		}
	}
}

// trimTrailing strips trailing trim scalars from an unescaped field's
// accumulated content; escaped fields are never trimmed.
func (r *Reader) trimTrailing(s string) string {
	if len(r.cfg.TrimSet) == 0 {
		return s
	}
	return strings.TrimRightFunc(s, r.isTrim)
}

// readEscapedField implements §4.3.1's escaped field mode and the
// after-escape state that follows it.
func (r *Reader) readEscapedField() (content string, rowClosed bool, atStreamEnd bool, err error) {
	var b strings.Builder
	for {
		s, ok, perr := r.pull()
		if perr != nil {
			return "", false, false, perr
		}
		if !ok {
			return "", false, false, &badRowError{err: &MalformedEscapeError{Row: r.rowIndex}}
		}
		if s != r.cfg.Escape {
			b.WriteRune(s)
			continue
		}
		// s is the escape scalar: peek the next scalar.
		peek, pOk, pErr := r.pull()
		if pErr != nil {
			return "", false, false, pErr
		}
		if pOk && peek == r.cfg.Escape {
			b.WriteRune(r.cfg.Escape)
			continue
		}
		if pOk {
			r.buf.Push(peek)
		}
		return r.afterEscape(b.String())
	}
}

// afterEscape implements the "after-escape" state of §4.3.1: lenient
// trailing-content handling, concatenating any non-delimiter scalar as
// content and remaining in after-escape.
func (r *Reader) afterEscape(content string) (string, bool, bool, error) {
	var b strings.Builder
	b.WriteString(content)
	for {
		s, ok, err := r.pull()
		if err != nil {
			return "", false, false, err
		}
		if !ok {
			// EOF after a close escape: finalize field and row.
			return b.String(), true, false, nil
		}
		if isDelim, derr := r.isFieldDelim(s); derr != nil {
			return "", false, false, derr
		} else if isDelim {
			return b.String(), false, false, nil
		}
		if isRow, rerr := r.isRowDelim(s); rerr != nil {
			return "", false, false, rerr
		} else if isRow {
			return b.String(), true, false, nil
		}
		b.WriteRune(s)
	}
}
