package delimiter

import "testing"

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty delimiter")
	}
}

func TestDelimiterEquality(t *testing.T) {
	a := MustNew(",")
	b := MustNew(",")
	if a != b {
		t.Fatalf("expected %q == %q", a, b)
	}
	if a == MustNew(";") {
		t.Fatal("expected different scalar sequences to differ")
	}
}

func TestIsPrefixOf(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		wantAofB bool
	}{
		{"equal strings are prefixes", "--", "--", true},
		{"short prefix of long", "*", "**", true},
		{"long is not prefix of short", "**", "*", false},
		{"disjoint", ",", ";", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustNew(tt.a), MustNew(tt.b)
			if got := a.IsPrefixOf(b); got != tt.wantAofB {
				t.Fatalf("IsPrefixOf(%q,%q) = %v, want %v", tt.a, tt.b, got, tt.wantAofB)
			}
		})
	}
}

func TestRowDelimiterSetOrdering(t *testing.T) {
	set, err := NewRowDelimiterSet(MustNew("\n"), MustNew("\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	ds := set.Delimiters()
	if ds[0] != MustNew("\r\n") {
		t.Fatalf("expected longest delimiter first, got %v", ds)
	}
}

func TestNewRowDelimiterSetRejectsEmpty(t *testing.T) {
	if _, err := NewRowDelimiterSet(); err == nil {
		t.Fatal("expected error for empty row delimiter set")
	}
}

func TestDelimitersPairValidatePrefixDisjointness(t *testing.T) {
	cases := []struct {
		name  string
		field string
		rows  []string
	}{
		{"field equals row", "--", []string{"--"}},
		{"field is prefix of row", "**", []string{"**~"}},
		{"row is prefix of field", "**~", []string{"**"}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rowDs := make([]Delimiter, len(tt.rows))
			for i, r := range tt.rows {
				rowDs[i] = MustNew(r)
			}
			row, err := NewRowDelimiterSet(rowDs...)
			if err != nil {
				t.Fatal(err)
			}
			pair := DelimitersPair{Field: MustNew(tt.field), Row: row}
			if err := pair.Validate(ValidationOptions{}); err == nil {
				t.Fatal("expected prefix-disjointness error")
			}
		})
	}
}

func TestDelimitersPairValidateEscapeCollision(t *testing.T) {
	row, _ := NewRowDelimiterSet(MustNew("\n"))
	pair := DelimitersPair{Field: MustNew(","), Row: row}
	if err := pair.Validate(ValidationOptions{HasEscape: true, Escape: ','}); err == nil {
		t.Fatal("expected escape/field collision error")
	}
}

func TestDelimitersPairValidateTrimCollision(t *testing.T) {
	row, _ := NewRowDelimiterSet(MustNew("\n"))
	pair := DelimitersPair{Field: MustNew(","), Row: row}
	trim := map[rune]struct{}{',': {}}
	if err := pair.Validate(ValidationOptions{TrimSet: trim}); err == nil {
		t.Fatal("expected trim/field collision error")
	}
}

func TestDelimitersPairValidateAcceptsDisjointConfig(t *testing.T) {
	row, _ := NewRowDelimiterSet(MustNew("\n"), MustNew("\r\n"))
	pair := DelimitersPair{Field: MustNew(","), Row: row}
	trim := map[rune]struct{}{' ': {}, '\t': {}}
	if err := pair.Validate(ValidationOptions{HasEscape: true, Escape: '"', TrimSet: trim}); err != nil {
		t.Fatalf("expected valid configuration, got %v", err)
	}
}

func TestDialectKeyDeterministic(t *testing.T) {
	row, _ := NewRowDelimiterSet(MustNew("\r\n"), MustNew("\n"))
	d1 := Dialect{Field: MustNew(","), Row: row, HasEscape: true, Escape: '"'}
	row2, _ := NewRowDelimiterSet(MustNew("\n"), MustNew("\r\n"))
	d2 := Dialect{Field: MustNew(","), Row: row2, HasEscape: true, Escape: '"'}
	if d1.Key() != d2.Key() {
		t.Fatalf("expected order-independent key equality: %q vs %q", d1.Key(), d2.Key())
	}
}
