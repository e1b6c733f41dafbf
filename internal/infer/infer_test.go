package infer

import (
	"testing"

	"github.com/shapestone/scalarcsv/internal/delimiter"
)

func mustDelim(t *testing.T, s string) delimiter.Delimiter {
	t.Helper()
	d, err := delimiter.New(s)
	if err != nil {
		t.Fatalf("delimiter.New(%q): %v", s, err)
	}
	return d
}

func mustRowSet(t *testing.T, ds ...string) delimiter.RowDelimiterSet {
	t.Helper()
	delims := make([]delimiter.Delimiter, len(ds))
	for i, s := range ds {
		delims[i] = mustDelim(t, s)
	}
	set, err := delimiter.NewRowDelimiterSet(delims...)
	if err != nil {
		t.Fatalf("NewRowDelimiterSet: %v", err)
	}
	return set
}

func candidateFields(t *testing.T, symbols ...string) []delimiter.Delimiter {
	t.Helper()
	out := make([]delimiter.Delimiter, len(symbols))
	for i, s := range symbols {
		out[i] = mustDelim(t, s)
	}
	return out
}

func TestInferPatternScoreArithmetic(t *testing.T) {
	// Five rows: two with four comma-separated fields, three with three.
	// contribution = 2*max(eps,3)/4 + 3*max(eps,2)/3 = 1.5 + 2.0 = 3.5
	// pattern_score = 3.5 / 2 distinct patterns = 1.75.
	sample := []rune("a,b,c,d\ne,f,g,h\ni,j,k\nl,m,n\no,p,q\n")
	d := delimiter.Dialect{
		Field: mustDelim(t, ","),
		Row:   mustRowSet(t, "\n"),
	}
	inf := New()
	score, err := inf.score(sample, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.75 {
		t.Fatalf("got score %v, want 1.75", score)
	}
}

func TestInferPicksCommaOverSlashDecoy(t *testing.T) {
	// All four rows share the same comma structure (4 commas -> 5 fields)
	// and the same embedded-date slash structure (2 slashes -> 3 segments)
	// but the comma split is both more numerous and equally regular, so it
	// must win.
	sample := "Harry's, Arlington Heights, IL, 2/1/03, Kimi Hayes\n" +
		"Sally's, Chicago, IL, 3/2/04, Joe Smith\n" +
		"Tom's, Skokie, IL, 4/3/05, Ann Lee\n" +
		"Ida's, Evanston, IL, 5/4/06, Bob Young\n"

	cands := Candidates{
		Fields: candidateFields(t, ",", ";", "\t", ":", "?", "/"),
		Rows:   []delimiter.RowDelimiterSet{mustRowSet(t, "\n")},
	}
	inf := New()
	result, err := inf.Infer([]rune(sample), cands, false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dialect.Field != mustDelim(t, ",") {
		t.Fatalf("got field delimiter %q, want \",\"", result.Dialect.Field)
	}
}

func TestInferPicksSoleDelimiterPresentInSample(t *testing.T) {
	// None of the other candidates appear anywhere in the content, so
	// every row collapses to a single field under them; "?" is the only
	// candidate that splits the rows at all.
	sample := "aaa?bbb?ccc?ddd\neee?fff?ggg?hhh\niii?jjj?kkk?lll\n"

	cands := Candidates{
		Fields: candidateFields(t, ",", ";", "\t", ":", "?", "/"),
		Rows:   []delimiter.RowDelimiterSet{mustRowSet(t, "\n")},
	}
	inf := New()
	result, err := inf.Infer([]rune(sample), cands, false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dialect.Field != mustDelim(t, "?") {
		t.Fatalf("got field delimiter %q, want \"?\"", result.Dialect.Field)
	}
}

func TestInferDiscardsPrefixConflictingCandidates(t *testing.T) {
	// field="-" and row={"-"} would be a prefix conflict; Infer must skip
	// that pair rather than propagate the configuration error.
	sample := "a-b-c\nd-e-f\n"
	cands := Candidates{
		Fields: candidateFields(t, "-", ","),
		Rows:   []delimiter.RowDelimiterSet{mustRowSet(t, "-"), mustRowSet(t, "\n")},
	}
	inf := New()
	result, err := inf.Infer([]rune(sample), cands, false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dialect.Field != mustDelim(t, "-") {
		t.Fatalf("got field delimiter %q, want \"-\"", result.Dialect.Field)
	}
	if !result.Dialect.Row.Equal(mustRowSet(t, "\n")) {
		t.Fatalf("got row delimiters %v, want newline", result.Dialect.Row.Delimiters())
	}
}

func TestInferFailsWithoutPositiveScore(t *testing.T) {
	// An empty sample produces zero rows under every candidate dialect,
	// so every trial scores 0 and inference must fail outright.
	cands := Candidates{
		Fields: candidateFields(t, ","),
		Rows:   []delimiter.RowDelimiterSet{mustRowSet(t, "\n")},
	}
	inf := New()
	_, err := inf.Infer([]rune(""), cands, false, 0)
	if err == nil {
		t.Fatal("expected an inference error for an empty sample")
	}
	if _, ok := err.(*InferenceError); !ok {
		t.Fatalf("expected *InferenceError, got %T: %v", err, err)
	}
}

func TestDedupeFieldsPreservesFirstSeenOrder(t *testing.T) {
	in := candidateFields(t, ",", ";", ",", "\t", ";")
	out := dedupeFields(in)
	want := candidateFields(t, ",", ";", "\t")
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestDedupeRowsIgnoresMemberOrder(t *testing.T) {
	a := mustRowSet(t, "\n", "\r\n")
	b := mustRowSet(t, "\r\n", "\n")
	out := dedupeRows([]delimiter.RowDelimiterSet{a, b})
	if len(out) != 1 {
		t.Fatalf("expected a and b to dedupe to one entry, got %d", len(out))
	}
}
