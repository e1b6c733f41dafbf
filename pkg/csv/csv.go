// Package csv provides a streaming CSV reader and writer over configurable
// (and optionally inferred) field/row delimiters.
//
// # Reading
//
//	r, err := csv.NewReader(file, csv.DefaultReaderConfig())
//	for {
//		row, err := r.ReadRow()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			// handle error
//		}
//	}
//
// # Writing
//
//	w, err := csv.NewWriter(file, csv.DefaultWriterConfig())
//	w.WriteRow([]string{"name", "age"})
//	w.WriteRow([]string{"Alice", "30"})
//	w.EndFile()
package csv

import (
	"bufio"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/shapestone/scalarcsv/internal/buffer"
	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/infer"
	"github.com/shapestone/scalarcsv/internal/matcher"
	"github.com/shapestone/scalarcsv/internal/tokenizer"
	"github.com/shapestone/scalarcsv/internal/writer"
)

// scalarSource adapts an io.Reader into a matcher.Source by decoding one
// Unicode scalar at a time. Its side effects are confined to advancing the
// input, and it is invoked only from the Reader.
func scalarSource(r io.Reader) matcher.Source {
	br := bufio.NewReader(r)
	return func() (rune, bool, error) {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, &tokenizer.StreamError{Err: err}
		}
		return ch, true, nil
	}
}

// Reader reads rows from a scalar stream under a fixed or inferred
// dialect. It is single-owner and not safe for concurrent use.
type Reader struct {
	id     uuid.UUID
	tok    *tokenizer.Reader
	header []string
	hasHdr bool
}

// NewReader constructs a Reader over src. If cfg's field or row delimiter
// is an inference option, NewReader samples up to cfg.SampleSize leading
// scalars, runs dialect inference over them, and restores the sample to
// the reader's internal buffer before returning. If cfg.Header is
// HeaderFirstLine, the first row is consumed here and captured as the
// header rather than returned from ReadRow.
func NewReader(src io.Reader, cfg ReaderConfig) (*Reader, error) {
	id := uuid.New()
	source := scalarSource(src)
	buf := buffer.New()

	dialect, err := resolveDialect(buf, source, cfg)
	if err != nil {
		return nil, wrapReadError(id, err)
	}

	tokCfg := tokenizer.Config{
		Field:     dialect.Field,
		Row:       dialect.Row,
		HasEscape: dialect.HasEscape,
		Escape:    dialect.Escape,
		TrimSet:   cfg.TrimSet,
		Comment:   cfg.Comment,
		OnBadRow:  tokenizer.BadRowMode(cfg.OnBadRow),
		Warning:   cfg.Warning,
	}
	tok := tokenizer.NewWithBuffer(buf, source, tokCfg)

	r := &Reader{id: id, tok: tok}
	if cfg.Header == HeaderFirstLine {
		row, err := tok.ReadRow()
		if err != nil && err != io.EOF {
			return nil, wrapReadError(id, err)
		}
		if err == nil {
			r.header = row
			r.hasHdr = true
		}
	}
	return r, nil
}

// resolveDialect builds the DelimitersPair/escape pair the tokenizer will
// use, running inference for whichever side of cfg asks for it.
func resolveDialect(buf *buffer.ScalarBuffer, source matcher.Source, cfg ReaderConfig) (delimiter.Dialect, error) {
	needsInference := cfg.Field.infer || cfg.Row.infer
	if !needsInference {
		d := delimiter.Dialect{
			Field:     cfg.Field.concrete,
			Row:       cfg.Row.concrete,
			HasEscape: cfg.Escape.has,
			Escape:    cfg.Escape.scalar,
		}
		opts := delimiter.ValidationOptions{HasEscape: cfg.Escape.has, Escape: cfg.Escape.scalar, TrimSet: cfg.TrimSet}
		if err := d.Pair().Validate(opts); err != nil {
			return delimiter.Dialect{}, err
		}
		return d, nil
	}

	sampleSize := cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = infer.DefaultSampleSize
	}
	sample := make([]rune, 0, sampleSize)
	for len(sample) < sampleSize {
		ch, ok, err := source()
		if err != nil {
			return delimiter.Dialect{}, err
		}
		if !ok {
			break
		}
		sample = append(sample, ch)
	}
	buf.PushAll(sample)

	fieldCands := cfg.Field.candidates
	if cfg.Field.infer && len(fieldCands) == 0 {
		fieldCands = defaultFieldCandidates()
	}
	if !cfg.Field.infer {
		fieldCands = []delimiter.Delimiter{cfg.Field.concrete}
	}
	rowCands := cfg.Row.candidates
	if cfg.Row.infer && len(rowCands) == 0 {
		rowCands = defaultRowCandidates()
	}
	if !cfg.Row.infer {
		rowCands = []delimiter.RowDelimiterSet{cfg.Row.concrete}
	}

	result, err := infer.New().Infer(sample, infer.Candidates{Fields: fieldCands, Rows: rowCands}, cfg.Escape.has, cfg.Escape.scalar)
	if err != nil {
		return delimiter.Dialect{}, err
	}
	opts := delimiter.ValidationOptions{HasEscape: cfg.Escape.has, Escape: cfg.Escape.scalar, TrimSet: cfg.TrimSet}
	if err := result.Dialect.Pair().Validate(opts); err != nil {
		return delimiter.Dialect{}, err
	}
	return result.Dialect, nil
}

// ReadRow returns the next row, or io.EOF at a clean end of stream.
func (r *Reader) ReadRow() ([]string, error) {
	row, err := r.tok.ReadRow()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, wrapReadError(r.id, err)
	}
	return row, nil
}

// Validate reports whether input parses cleanly under cfg, reading every
// row to completion without returning the rows themselves.
func Validate(input string, cfg ReaderConfig) error {
	return ValidateReader(strings.NewReader(input), cfg)
}

// ValidateReader is Validate over an io.Reader.
func ValidateReader(src io.Reader, cfg ReaderConfig) error {
	r, err := NewReader(src, cfg)
	if err != nil {
		return err
	}
	_, err = r.ReadAll()
	return err
}

// ReadAll reads every remaining row into memory.
func (r *Reader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// Header returns the captured header row and whether one was captured.
func (r *Reader) Header() ([]string, bool) {
	return r.header, r.hasHdr
}

// FieldIndex returns the position of name within the captured header row,
// or ok=false if no header was captured or name is not present.
func (r *Reader) FieldIndex(name string) (int, bool) {
	for i, h := range r.header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// RowIndex returns the number of data rows returned so far.
func (r *Reader) RowIndex() int {
	n := r.tok.RowIndex()
	if r.hasHdr {
		n--
	}
	return n
}

// InputOffset returns the number of scalars consumed from the source so
// far.
func (r *Reader) InputOffset() int64 { return r.tok.InputOffset() }

// FieldPos returns the row and column of the field with the given index
// in the row most recently returned by ReadRow, mirroring
// encoding/csv.Reader's FieldPos. Rows are 0-based via RowIndex; columns
// are the field's 0-based position within that row.
func (r *Reader) FieldPos(field int) (row, col int) {
	return r.RowIndex() - 1, field
}

// Status reports the reader's lifecycle state.
func (r *Reader) Status() Status { return Status(r.tok.Status()) }

// Status mirrors internal/tokenizer.Status at the package boundary.
type Status int

const (
	StatusActive   Status = Status(tokenizer.StatusActive)
	StatusFinished Status = Status(tokenizer.StatusFinished)
	StatusFailed   Status = Status(tokenizer.StatusFailed)
)

// Writer writes rows to a byte sink under a fixed dialect. It is
// single-owner and not safe for concurrent use.
type Writer struct {
	id uuid.UUID
	w  *writer.Writer
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewWriter constructs a Writer over dst. Escape delimiter/field validity
// is checked immediately; a BOMAlways strategy writes the UTF-8 BOM before
// any row.
func NewWriter(dst io.Writer, cfg WriterConfig) (*Writer, error) {
	id := uuid.New()
	if err := cfg.Validate(); err != nil {
		return nil, wrapWriteError(id, err)
	}

	if cfg.BOM == BOMAlways {
		if _, err := dst.Write(utf8BOM); err != nil {
			return nil, wrapWriteError(id, &writer.StreamError{Err: err})
		}
	}

	w := writer.New(dst, writer.Config{
		Field:     cfg.Field,
		Row:       cfg.Row,
		HasEscape: cfg.Escape.has,
		Escape:    cfg.Escape.scalar,
	})
	return &Writer{id: id, w: w}, nil
}

func (w *Writer) WriteField(s string) error {
	if err := w.w.WriteField(s); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}

func (w *Writer) WriteFields(seq []string) error {
	if err := w.w.WriteFields(seq); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}

func (w *Writer) EndRow() error {
	if err := w.w.EndRow(); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}

func (w *Writer) WriteRow(seq []string) error {
	if err := w.w.WriteRow(seq); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}

func (w *Writer) WriteEmptyRow() error {
	if err := w.w.WriteEmptyRow(); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}

func (w *Writer) EndFile() error {
	if err := w.w.EndFile(); err != nil {
		return wrapWriteError(w.id, err)
	}
	return nil
}
