package csv

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/infer"
)

// Sniff runs dialect inference over sample and returns the winning
// dialect. Unlike a regex/count-consistency heuristic, it scores each
// candidate by actually tokenizing the sample under it and measuring how
// regular the resulting rows are.
func Sniff(sample string, fieldCandidates, rowCandidates []string) (delimiter.Dialect, error) {
	fields := make([]delimiter.Delimiter, len(fieldCandidates))
	for i, s := range fieldCandidates {
		fields[i] = delimiter.MustNew(s)
	}
	if len(fields) == 0 {
		fields = defaultFieldCandidates()
	}
	rowSets := make([]delimiter.RowDelimiterSet, 0, len(rowCandidates))
	for _, s := range rowCandidates {
		set, err := delimiter.NewRowDelimiterSet(delimiter.MustNew(s))
		if err != nil {
			return delimiter.Dialect{}, err
		}
		rowSets = append(rowSets, set)
	}
	if len(rowSets) == 0 {
		rowSets = defaultRowCandidates()
	}

	result, err := infer.New().Infer([]rune(sample), infer.Candidates{Fields: fields, Rows: rowSets}, false, 0)
	if err != nil {
		return delimiter.Dialect{}, err
	}
	return result.Dialect, nil
}

// GuessHeader answers a different question than dialect inference: given
// already-parsed rows, does the first one look like a header rather than
// data? It applies a small set of name-shape and value-shape heuristics
// independent of how the delimiter was chosen.
func GuessHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	first, second := rows[0], rows[1]
	if len(first) == 0 || len(second) == 0 {
		return false
	}

	headerScore, dataScore := 0, 0
	for _, field := range first {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

// isLikelyHeader checks if a field looks like a header name.
func isLikelyHeader(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) {
		return false
	}
	headerPatterns := []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`),
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isLikelyData checks if a field looks like data rather than a header.
func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) {
		return true
	}
	if strings.Contains(s, "@") {
		return true
	}
	datePatterns := []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric checks if a string represents a number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	hasDot := false
	for _, ch := range s {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
		} else if !unicode.IsDigit(ch) {
			return false
		}
	}
	return len(s) > 0
}

// HeaderConverter is a function that transforms header names.
type HeaderConverter func(string) string

// LowercaseHeader converts headers to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts headers to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts headers to snake_case.
func SnakeCaseHeader(s string) string {
	var result strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if result.Len() > 0 && !prevWasSpace {
				result.WriteRune('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return result.String()
}

// ColumnSelector specifies which columns to include.
type ColumnSelector struct {
	// UseCols selects columns by name.
	UseCols []string
	// UseColIndexes selects columns by index (0-based).
	UseColIndexes []int
}

// ShouldInclude checks if a column should be included.
func (c *ColumnSelector) ShouldInclude(name string, index int) bool {
	if len(c.UseCols) == 0 && len(c.UseColIndexes) == 0 {
		return true
	}
	for _, col := range c.UseCols {
		if col == name {
			return true
		}
	}
	for _, idx := range c.UseColIndexes {
		if idx == index {
			return true
		}
	}
	return false
}
