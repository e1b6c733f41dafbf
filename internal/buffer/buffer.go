// Package buffer implements ScalarBuffer, the pushback stack of
// already-decoded Unicode scalars used by the tokenizer and its matchers.
package buffer

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// ScalarBuffer is a LIFO pushback buffer of Unicode scalars, exclusively
// owned by its Reader. It never calls a decoder itself — Next reports
// only what has already been pushed back.
type ScalarBuffer struct {
	stack *arraystack.Stack
}

// New returns an empty ScalarBuffer.
func New() *ScalarBuffer {
	return &ScalarBuffer{stack: arraystack.New()}
}

// Next pops the most recently pushed scalar, if any. It does not consult
// any decoder; an empty buffer reports ok=false and the caller is expected
// to fall back to its own decoder.
func (b *ScalarBuffer) Next() (r rune, ok bool) {
	v, ok := b.stack.Pop()
	if !ok {
		return 0, false
	}
	return v.(rune), true
}

// Push pushes a single scalar onto the buffer; it will be the next scalar
// returned by Next.
func (b *ScalarBuffer) Push(r rune) {
	b.stack.Push(r)
}

// PushAll pushes a sequence of scalars such that scalars[0] is the first to
// come out on subsequent Next calls (original order is preserved).
func (b *ScalarBuffer) PushAll(scalars []rune) {
	for i := len(scalars) - 1; i >= 0; i-- {
		b.stack.Push(scalars[i])
	}
}

// Len reports the number of buffered scalars.
func (b *ScalarBuffer) Len() int {
	return b.stack.Size()
}

// Empty reports whether the buffer currently holds no scalars.
func (b *ScalarBuffer) Empty() bool {
	return b.stack.Empty()
}
