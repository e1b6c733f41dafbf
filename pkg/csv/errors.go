package csv

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/infer"
	"github.com/shapestone/scalarcsv/internal/tokenizer"
	"github.com/shapestone/scalarcsv/internal/writer"
)

// Kind identifies the category of a package error. Numeric values are
// part of the stable public surface; do not reorder.
type Kind int

const (
	// InvalidConfiguration: a delimiter is a prefix of another, or the
	// escape scalar or trim set collides with a delimiter or with each
	// other. An inference option with an empty candidate list is not an
	// error: it falls back to the default candidates.
	InvalidConfiguration Kind = iota
	// InvalidInput: row width mismatch, a field contains a raw delimiter
	// when escaping is disabled, or a malformed escaped field.
	InvalidInput
	// InferenceFailure: no dialect candidate produced a positive pattern
	// score.
	InferenceFailure
	// StreamFailure: the underlying decoder or sink reported an I/O
	// failure.
	StreamFailure
	// InvalidOperation: writer misuse (fields past expected_fields, an
	// empty row before width is known) or reading captured data before
	// end_file/construction completes.
	InvalidOperation
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalidConfiguration"
	case InvalidInput:
		return "invalidInput"
	case InferenceFailure:
		return "inferenceFailure"
	case StreamFailure:
		return "streamFailure"
	case InvalidOperation:
		return "invalidOperation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors, one per Kind, so callers can check a returned error's
// category with errors.Is(err, csv.ErrInvalidInput) instead of switching
// on Kind directly.
var (
	ErrInvalidConfiguration = errors.New("invalidConfiguration")
	ErrInvalidInput         = errors.New("invalidInput")
	ErrInferenceFailure     = errors.New("inferenceFailure")
	ErrStreamFailure        = errors.New("streamFailure")
	ErrInvalidOperation     = errors.New("invalidOperation")
)

// sentinel returns the package sentinel error for k.
func (k Kind) sentinel() error {
	switch k {
	case InvalidConfiguration:
		return ErrInvalidConfiguration
	case InvalidInput:
		return ErrInvalidInput
	case InferenceFailure:
		return ErrInferenceFailure
	case StreamFailure:
		return ErrStreamFailure
	case InvalidOperation:
		return ErrInvalidOperation
	default:
		return nil
	}
}

// Error is the package's single public error type. It carries a Kind, a
// human-readable Message, auxiliary Diagnostics (offending delimiter,
// escape scalar, row/field index, whichever apply), the instance's
// InstanceID, and the underlying internal error it wraps, so callers can
// still errors.As into the concrete internal type when they need to.
type Error struct {
	Kind        Kind
	Message     string
	Diagnostics map[string]any
	InstanceID  uuid.UUID
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the package sentinel for e.Kind, so
// errors.Is(err, csv.ErrInvalidInput) works against a wrapped *Error
// without callers needing to switch on Kind themselves.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// newError wraps err into a *Error of the given kind, attaching id and
// diagnostics. diagnostics may be nil.
func newError(kind Kind, id uuid.UUID, err error, diagnostics map[string]any) *Error {
	return &Error{
		Kind:        kind,
		Message:     err.Error(),
		Diagnostics: diagnostics,
		InstanceID:  id,
		Err:         err,
	}
}

// wrapReadError classifies an error surfaced by internal/tokenizer or
// internal/infer into the public Kind taxonomy.
func wrapReadError(id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	var widthErr *tokenizer.WidthError
	if errors.As(err, &widthErr) {
		return newError(InvalidInput, id, err, map[string]any{
			"row":      widthErr.Row,
			"got":      widthErr.Got,
			"expected": widthErr.Expected,
		})
	}
	var malformedErr *tokenizer.MalformedEscapeError
	if errors.As(err, &malformedErr) {
		return newError(InvalidInput, id, err, map[string]any{"row": malformedErr.Row})
	}
	var streamErr *tokenizer.StreamError
	if errors.As(err, &streamErr) {
		return newError(StreamFailure, id, err, nil)
	}
	var inferErr *infer.InferenceError
	if errors.As(err, &inferErr) {
		return newError(InferenceFailure, id, err, nil)
	}
	var cfgErr *delimiter.ConfigError
	if errors.As(err, &cfgErr) {
		return newError(InvalidConfiguration, id, err, map[string]any{
			"field":  cfgErr.Field,
			"row":    cfgErr.Row,
			"escape": cfgErr.Escape,
		})
	}
	return newError(StreamFailure, id, err, nil)
}

// wrapWriteError classifies an error surfaced by internal/writer.
func wrapWriteError(id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	var opErr *writer.OperationError
	if errors.As(err, &opErr) {
		return newError(InvalidOperation, id, err, nil)
	}
	var inErr *writer.InputError
	if errors.As(err, &inErr) {
		return newError(InvalidInput, id, err, map[string]any{"field": inErr.Field})
	}
	var streamErr *writer.StreamError
	if errors.As(err, &streamErr) {
		return newError(StreamFailure, id, err, nil)
	}
	var cfgErr *delimiter.ConfigError
	if errors.As(err, &cfgErr) {
		return newError(InvalidConfiguration, id, err, nil)
	}
	return newError(StreamFailure, id, err, nil)
}
