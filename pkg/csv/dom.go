// Document represents a CSV file with optional headers and data records,
// built directly over the rows a Reader returns:
//
//	doc := csv.NewDocument().
//		SetHeaders([]string{"name", "age"}).
//		AddRecord([]string{"Alice", "30"}).
//		AddRecord([]string{"Bob", "25"})
package csv

import (
	"strings"
)

// Document represents a CSV file with a fluent API for manipulation.
// All setter methods return *Document to enable method chaining.
type Document struct {
	headers []string
	records [][]string
}

// Record represents a single row in a CSV file, with type-safe access to
// field values by index or by header name.
type Record struct {
	fields  []string
	headers []string
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{records: make([][]string, 0)}
}

// ParseDocument reads every row of input with cfg and collects it into a
// Document. If cfg.Header is HeaderFirstLine, the captured header row
// becomes the Document's headers; otherwise every row is a data record.
func ParseDocument(input string, cfg ReaderConfig) (*Document, error) {
	r, err := NewReader(strings.NewReader(input), cfg)
	if err != nil {
		return nil, err
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	if hdr, ok := r.Header(); ok {
		doc.SetHeaders(hdr)
	}
	for _, row := range rows {
		doc.AddRecord(row)
	}
	return doc, nil
}

// SetHeaders sets the column headers for this CSV document.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord adds a data record (row) to the document.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Headers returns the column headers, or an empty slice if none are set.
func (d *Document) Headers() []string {
	return d.headers
}

// Records returns all data records as Record objects.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{fields: fields, headers: d.headers}
	}
	return records
}

// RecordCount returns the number of data records, excluding the header.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at index, or (Record{}, false) if out of
// bounds.
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return Record{fields: d.records[index], headers: d.headers}, true
}

// GuessHeader reports whether this document's first row (its headers if
// set, otherwise its first record) looks like a header rather than data
// (see Sniff for dialect detection instead).
func (d *Document) GuessHeader() bool {
	rows := make([][]string, 0, len(d.records)+1)
	if len(d.headers) > 0 {
		rows = append(rows, d.headers)
	}
	rows = append(rows, d.records...)
	return GuessHeader(rows)
}

// SelectColumns returns a new Document containing only the columns sel
// admits, in their original order. Column names are taken from the
// receiver's headers; a Document with no headers can still select by
// index via sel.UseColIndexes.
func (d *Document) SelectColumns(sel ColumnSelector) *Document {
	keep := make([]int, 0, len(d.headers))
	for i, h := range d.headers {
		if sel.ShouldInclude(h, i) {
			keep = append(keep, i)
		}
	}
	if len(d.headers) == 0 {
		width := 0
		for _, rec := range d.records {
			width = max(width, len(rec))
		}
		for i := 0; i < width; i++ {
			if sel.ShouldInclude("", i) {
				keep = append(keep, i)
			}
		}
	}

	out := NewDocument()
	if len(d.headers) > 0 {
		out.SetHeaders(selectFields(d.headers, keep))
	}
	for _, rec := range d.records {
		out.AddRecord(selectFields(rec, keep))
	}
	return out
}

func selectFields(fields []string, keep []int) []string {
	picked := make([]string, 0, len(keep))
	for _, i := range keep {
		if i < len(fields) {
			picked = append(picked, fields[i])
		} else {
			picked = append(picked, "")
		}
	}
	return picked
}

// ConvertHeaders returns a new Document with every header name passed
// through conv, leaving the records untouched.
func (d *Document) ConvertHeaders(conv HeaderConverter) *Document {
	converted := make([]string, len(d.headers))
	for i, h := range d.headers {
		converted[i] = conv(h)
	}
	out := NewDocument()
	out.SetHeaders(converted)
	for _, rec := range d.records {
		out.AddRecord(rec)
	}
	return out
}

// Write renders the Document through a Writer: headers first (if set),
// then every data record.
func (d *Document) Write(w *Writer) error {
	if len(d.headers) > 0 {
		if err := w.WriteRow(d.headers); err != nil {
			return err
		}
	}
	for _, record := range d.records {
		if err := w.WriteRow(record); err != nil {
			return err
		}
	}
	return nil
}

// CSV renders the Document back to a CSV string using cfg.
func (d *Document) CSV(cfg WriterConfig) (string, error) {
	var sb strings.Builder
	w, err := NewWriter(&sb, cfg)
	if err != nil {
		return "", err
	}
	if err := d.Write(w); err != nil {
		return "", err
	}
	if err := w.EndFile(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Get gets the field value at index, or ("", false) if out of bounds.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName gets the field value by header name, or ("", false) if the
// name is not found or no headers are set.
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns a copy of the record's field values.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}
