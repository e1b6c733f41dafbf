package buffer

import "testing"

func TestNextOnEmpty(t *testing.T) {
	b := New()
	if _, ok := b.Next(); ok {
		t.Fatal("expected Next on empty buffer to report ok=false")
	}
}

func TestPushThenNext(t *testing.T) {
	b := New()
	b.Push('a')
	b.Push('b')
	// LIFO: last pushed comes out first.
	if r, ok := b.Next(); !ok || r != 'b' {
		t.Fatalf("got (%q,%v), want ('b',true)", r, ok)
	}
	if r, ok := b.Next(); !ok || r != 'a' {
		t.Fatalf("got (%q,%v), want ('a',true)", r, ok)
	}
	if _, ok := b.Next(); ok {
		t.Fatal("expected buffer to be empty")
	}
}

func TestPushAllPreservesOrder(t *testing.T) {
	b := New()
	b.PushAll([]rune{'x', 'y', 'z'})
	for _, want := range []rune{'x', 'y', 'z'} {
		r, ok := b.Next()
		if !ok || r != want {
			t.Fatalf("got (%q,%v), want (%q,true)", r, ok, want)
		}
	}
}

func TestPushAllThenPushInteraction(t *testing.T) {
	// Pushback conservation: restoring consumed lookahead scalars must put
	// them back in original order so the caller sees the same sequence it
	// would have seen without the speculative read.
	b := New()
	b.PushAll([]rune{'1', '2', '3'})
	b.Push('0')
	if r, _ := b.Next(); r != '0' {
		t.Fatalf("most recently pushed scalar should come out first, got %q", r)
	}
	if r, _ := b.Next(); r != '1' {
		t.Fatalf("expected '1' next, got %q", r)
	}
}

func TestLenAndEmpty(t *testing.T) {
	b := New()
	if !b.Empty() || b.Len() != 0 {
		t.Fatal("expected new buffer to be empty")
	}
	b.Push('a')
	if b.Empty() || b.Len() != 1 {
		t.Fatal("expected buffer to report one scalar")
	}
}
