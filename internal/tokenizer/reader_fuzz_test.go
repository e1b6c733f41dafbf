//go:build go1.18
// +build go1.18

package tokenizer

import (
	"io"
	"testing"

	"github.com/shapestone/scalarcsv/internal/delimiter"
)

// FuzzReadRow tests Reader.ReadRow with random inputs to find edge cases
// and panics under the default comma/LF-or-CRLF dialect.
// Run with: go test -fuzz=FuzzReadRow -fuzztime=30s ./internal/tokenizer
func FuzzReadRow(f *testing.F) {
	seeds := []string{
		"",
		"a",
		",",
		"\n",
		"\r\n",
		"\"",
		"\"\"",
		"a,b,c",
		"\"quoted\"",
		"\"with,comma\"",
		"\"with\"\"quote\"",
		"a\nb\nc",
		"a,b\nc,d,e\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	comma, err := delimiter.New(",")
	if err != nil {
		f.Fatalf("delimiter.New(\",\"): %v", err)
	}
	lf, err := delimiter.New("\n")
	if err != nil {
		f.Fatalf("delimiter.New(\"\\n\"): %v", err)
	}
	crlf, err := delimiter.New("\r\n")
	if err != nil {
		f.Fatalf("delimiter.New(\"\\r\\n\"): %v", err)
	}
	rowSet, err := delimiter.NewRowDelimiterSet(lf, crlf)
	if err != nil {
		f.Fatalf("NewRowDelimiterSet: %v", err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		cfg := Config{
			Field:     comma,
			Row:       rowSet,
			HasEscape: true,
			Escape:    '"',
			OnBadRow:  BadRowSkip,
		}
		r := New(sourceFromString(input), cfg)
		for {
			_, err := r.ReadRow()
			if err == io.EOF || err != nil {
				break
			}
		}
	})
}
