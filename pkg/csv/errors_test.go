package csv

import (
	"errors"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{InvalidConfiguration, "invalidConfiguration"},
		{InvalidInput, "invalidInput"},
		{InferenceFailure, "inferenceFailure"},
		{StreamFailure, "streamFailure"},
		{InvalidOperation, "invalidOperation"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestReaderPrefixConflictIsInvalidConfiguration(t *testing.T) {
	_, err := NewReader(strings.NewReader("a--b--c"), ReaderConfig{
		Field: UseFieldDelimiter("--"),
		Row:   UseRowDelimiters("--"),
	})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != InvalidConfiguration {
		t.Fatalf("got Kind %v, want InvalidConfiguration", e.Kind)
	}
}

func TestReaderRowWidthMismatchIsInvalidInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("a,b\nc"), ReaderConfig{
		Field: UseFieldDelimiter(","),
		Row:   UseRowDelimiters("\n"),
	})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.ReadRow(); err != nil {
		t.Fatalf("first row: %v", err)
	}
	_, err = r.ReadRow()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != InvalidInput {
		t.Fatalf("got Kind %v, want InvalidInput", e.Kind)
	}
	if e.Diagnostics["expected"] != 2 || e.Diagnostics["got"] != 1 {
		t.Fatalf("unexpected diagnostics: %+v", e.Diagnostics)
	}
}

func TestReaderStickyFailureReturnsSameErrorKind(t *testing.T) {
	r, err := NewReader(strings.NewReader("a,b\nc"), ReaderConfig{
		Field: UseFieldDelimiter(","),
		Row:   UseRowDelimiters("\n"),
	})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.ReadRow(); err != nil {
		t.Fatalf("first row: %v", err)
	}
	_, first := r.ReadRow()
	_, second := r.ReadRow()
	if first == nil || second == nil {
		t.Fatal("expected both calls to fail")
	}
	var e1, e2 *Error
	errors.As(first, &e1)
	errors.As(second, &e2)
	if e1.Kind != e2.Kind {
		t.Fatalf("sticky failure changed kind: %v -> %v", e1.Kind, e2.Kind)
	}
}

func TestWriterPastExpectedFieldsIsInvalidOperation(t *testing.T) {
	var sb strings.Builder
	w, err := NewWriter(&sb, DefaultWriterConfig())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteRow([]string{"a", "b"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.WriteField("x"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := w.WriteField("y"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	err = w.WriteField("z")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != InvalidOperation {
		t.Fatalf("got Kind %v, want InvalidOperation", e.Kind)
	}
}

func TestReaderPrefixConflictIsErrInvalidConfigurationSentinel(t *testing.T) {
	_, err := NewReader(strings.NewReader("a--b--c"), ReaderConfig{
		Field: UseFieldDelimiter("--"),
		Row:   UseRowDelimiters("--"),
	})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected errors.Is(err, ErrInvalidConfiguration), got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatal("did not expect err to match ErrInvalidInput")
	}
}

func TestWriterPastExpectedFieldsIsErrInvalidOperationSentinel(t *testing.T) {
	var sb strings.Builder
	w, err := NewWriter(&sb, DefaultWriterConfig())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteRow([]string{"a"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.WriteField("x"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	err = w.WriteField("y")
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected errors.Is(err, ErrInvalidOperation), got %v", err)
	}
}

func TestErrorCarriesInstanceID(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), ReaderConfig{
		Field: UseFieldDelimiter("--"),
		Row:   UseRowDelimiters("--"),
	})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.InstanceID.String() == "" {
		t.Fatal("expected a non-empty instance ID")
	}
}
