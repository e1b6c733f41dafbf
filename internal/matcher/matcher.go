// Package matcher answers the predicate "does a delimiter start at this
// scalar", with side-effect-free-on-mismatch lookahead via the shared
// ScalarBuffer.
//
// The buffer is passed by explicit reference into pure matcher functions
// rather than captured non-owningly inside a closure: the buffer's
// lifetime equals the reader's, and a closure with a hidden alias to it
// would make that lifetime much harder to reason about.
package matcher

import "github.com/shapestone/scalarcsv/internal/buffer"

// Source pulls the next scalar directly from the decoder, bypassing the
// buffer. It reports ok=false at end of stream and a non-nil error only on
// a genuine decode failure.
type Source func() (r rune, ok bool, err error)

// pull returns the next scalar, preferring the buffer over the source.
func pull(buf *buffer.ScalarBuffer, src Source) (rune, bool, error) {
	if r, ok := buf.Next(); ok {
		return r, true, nil
	}
	return src()
}

// Match reports whether the delimiter d begins at scalar s, consuming any
// additional lookahead scalars it needs from buf/src. On a true result, all
// of the delimiter's scalars after s have been consumed (not s itself — the
// caller already holds s). On a false result, buf is left exactly as it was
// before the call: any scalars pulled while probing are pushed back in
// their original order.
func Match(delim []rune, s rune, buf *buffer.ScalarBuffer, src Source) (bool, error) {
	if len(delim) == 0 {
		return false, nil
	}
	if s != delim[0] {
		return false, nil
	}
	if len(delim) == 1 {
		return true, nil
	}

	var extras []rune
	for i := 1; i < len(delim); i++ {
		r, ok, err := pull(buf, src)
		if err != nil {
			restore(buf, extras)
			return false, err
		}
		if !ok {
			restore(buf, extras)
			return false, nil
		}
		if r != delim[i] {
			buf.Push(r)
			restore(buf, extras)
			return false, nil
		}
		extras = append(extras, r)
	}
	return true, nil
}

// restore pushes previously-pulled extras back onto buf in their original
// order, so a failed match leaves no trace in the buffer.
func restore(buf *buffer.ScalarBuffer, extras []rune) {
	for i := len(extras) - 1; i >= 0; i-- {
		buf.Push(extras[i])
	}
}

// Candidate pairs a delimiter's scalar sequence with an opaque token the
// caller uses to identify which delimiter matched.
type Candidate struct {
	Scalars []rune
	Token   int
}

// MatchAny tries each candidate whose first scalar equals s, longest scalar
// sequence first (callers are expected to have pre-sorted candidates
// longest-first, as RowDelimiterSet does). It returns the token of the
// first full match, or ok=false if none match — in which case buf is left
// exactly as it was before the call.
func MatchAny(candidates []Candidate, s rune, buf *buffer.ScalarBuffer, src Source) (token int, ok bool, err error) {
	for _, c := range candidates {
		matched, err := Match(c.Scalars, s, buf, src)
		if err != nil {
			return 0, false, err
		}
		if matched {
			return c.Token, true, nil
		}
	}
	return 0, false, nil
}
