// Package writer implements the Writer core: WriteField/WriteFields/
// EndRow/WriteRow/WriteEmptyRow/EndFile, row-width padding, and symmetric
// per-field escaping.
//
// The escaping logic — detect need-to-quote, double embedded escape
// scalars — works over a configurable Delimiter/escape-scalar pair rather
// than a fixed comma/double-quote pair, and enforces the row-width
// invariant that a plain field-by-field emitter would otherwise skip.
package writer

import (
	"io"
	"strings"

	"github.com/shapestone/scalarcsv/internal/delimiter"
)

// Config carries the writer's delimiter and escaping configuration. The
// row delimiter is a single Delimiter (not a set): a writer always emits
// exactly one concrete row terminator, even though a reader may be
// configured to accept several.
type Config struct {
	Field     delimiter.Delimiter
	Row       delimiter.Delimiter
	HasEscape bool
	Escape    rune
}

// Writer is the sink-side counterpart to tokenizer.Reader. It is
// single-owner and not safe for concurrent use.
type Writer struct {
	dst io.Writer
	cfg Config

	expectedFields int
	fieldsInRow    int
	rowStarted     bool
	finished       bool
}

// New constructs a Writer over dst.
func New(dst io.Writer, cfg Config) *Writer {
	return &Writer{dst: dst, cfg: cfg}
}

// WriteField writes a single field and advances the in-row field count.
// Writing past expected_fields (once known) fails with *OperationError.
func (w *Writer) WriteField(s string) error {
	if w.finished {
		return &OperationError{Reason: "write_field called after end_file"}
	}
	if w.expectedFields > 0 && w.fieldsInRow >= w.expectedFields {
		return &OperationError{Reason: "write_field called after row's expected_fields was reached"}
	}
	if w.rowStarted {
		if _, err := io.WriteString(w.dst, string(w.cfg.Field)); err != nil {
			return &StreamError{Err: err}
		}
	}
	if err := w.writeEscaped(s); err != nil {
		return err
	}
	w.rowStarted = true
	w.fieldsInRow++
	return nil
}

// WriteFields writes each field of seq in order.
func (w *Writer) WriteFields(seq []string) error {
	for _, s := range seq {
		if err := w.WriteField(s); err != nil {
			return err
		}
	}
	return nil
}

// EndRow closes the current row, padding with empty trailing fields if the
// row wrote fewer than expected_fields (never truncating), fixing
// expected_fields from the first row if not yet known, and emitting the
// writer's single row delimiter.
func (w *Writer) EndRow() error {
	if w.finished {
		return &OperationError{Reason: "end_row called after end_file"}
	}
	if w.expectedFields == 0 {
		w.expectedFields = w.fieldsInRow
	} else {
		for w.fieldsInRow < w.expectedFields {
			if err := w.WriteField(""); err != nil {
				return err
			}
		}
	}
	if _, err := io.WriteString(w.dst, string(w.cfg.Row)); err != nil {
		return &StreamError{Err: err}
	}
	w.rowStarted = false
	w.fieldsInRow = 0
	return nil
}

// WriteRow writes every field of seq then ends the row.
func (w *Writer) WriteRow(seq []string) error {
	if err := w.WriteFields(seq); err != nil {
		return err
	}
	return w.EndRow()
}

// WriteEmptyRow writes a row of expected_fields empty fields. It fails
// with *OperationError if no row has fixed expected_fields yet, since
// there is nothing to pad to.
func (w *Writer) WriteEmptyRow() error {
	if w.finished {
		return &OperationError{Reason: "write_empty_row called after end_file"}
	}
	if w.expectedFields == 0 {
		return &OperationError{Reason: "write_empty_row called before expected_fields is known"}
	}
	return w.WriteRow(make([]string, w.expectedFields))
}

// EndFile marks the writer terminal. Any further write call fails with
// *OperationError.
func (w *Writer) EndFile() error {
	w.finished = true
	return nil
}

// writeEscaped emits one field's scalars, applying the per-field escaping
// rule.
func (w *Writer) writeEscaped(s string) error {
	if !w.cfg.HasEscape {
		if w.containsAnyDelimiter(s) {
			return &InputError{Reason: "field contains a raw delimiter and no escape scalar is configured", Field: s}
		}
		_, err := io.WriteString(w.dst, s)
		if err != nil {
			return &StreamError{Err: err}
		}
		return nil
	}

	esc := string(w.cfg.Escape)
	needsEscaping := s == "" || w.containsAnyDelimiter(s) || strings.ContainsRune(s, w.cfg.Escape)
	if !needsEscaping {
		_, err := io.WriteString(w.dst, s)
		if err != nil {
			return &StreamError{Err: err}
		}
		return nil
	}

	var b strings.Builder
	b.WriteString(esc)
	for _, r := range s {
		if r == w.cfg.Escape {
			b.WriteString(esc)
			b.WriteString(esc)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteString(esc)
	if _, err := io.WriteString(w.dst, b.String()); err != nil {
		return &StreamError{Err: err}
	}
	return nil
}

func (w *Writer) containsAnyDelimiter(s string) bool {
	if strings.Contains(s, string(w.cfg.Field)) {
		return true
	}
	if strings.Contains(s, string(w.cfg.Row)) {
		return true
	}
	return false
}
