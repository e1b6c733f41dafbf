package csv

import "io"

// Scanner provides a streaming interface for reading CSV records one at a
// time, row by row through a Reader, rather than parsing the whole input
// up front.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//		record := scanner.Record()
//		name, _ := record.GetByName("name")
//		fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//		// handle error
//	}
type Scanner struct {
	src        io.Reader
	cfg        ReaderConfig
	hasHeaders bool

	reader  *Reader
	headers []string
	cur     []string
	err     error
}

// NewScanner creates a Scanner that reads CSV from src using
// DefaultReaderConfig. Use NewScannerWithConfig to control the dialect.
func NewScanner(src io.Reader) *Scanner {
	return NewScannerWithConfig(src, DefaultReaderConfig())
}

// NewScannerWithConfig is like NewScanner but with an explicit
// ReaderConfig. SetHasHeaders(true) before the first Scan sets cfg.Header
// to HeaderFirstLine; SetHasHeaders(false) leaves cfg.Header as given.
func NewScannerWithConfig(src io.Reader, cfg ReaderConfig) *Scanner {
	return &Scanner{src: src, cfg: cfg}
}

// SetHasHeaders(true) makes the first row be captured as headers rather
// than returned as a data record. SetHasHeaders(false) does not turn off
// header capture that the ReaderConfig already asks for. Has no effect
// once scanning has started. Returns the Scanner for method chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// Scan advances to the next record, building the underlying Reader (and
// running dialect inference, if configured) on the first call. It returns
// false at end of stream or on error; check Err afterward.
func (s *Scanner) Scan() bool {
	if s.reader == nil {
		cfg := s.cfg
		if s.hasHeaders {
			cfg.Header = HeaderFirstLine
		}
		r, err := NewReader(s.src, cfg)
		if err != nil {
			s.err = err
			return false
		}
		s.reader = r
		if hdr, ok := r.Header(); ok {
			s.headers = hdr
		}
	}

	row, err := s.reader.ReadRow()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = err
		return false
	}
	s.cur = row
	return true
}

// Record returns the current record. Only valid after Scan returns true.
func (s *Scanner) Record() Record {
	return Record{fields: s.cur, headers: s.headers}
}

// Err returns the error, if any, that stopped scanning. Returns nil at a
// clean end of stream.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the captured header row, available after the first
// call to Scan() when SetHasHeaders(true) was set.
func (s *Scanner) Headers() []string {
	return s.headers
}
