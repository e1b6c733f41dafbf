// Package infer implements dialect inference: candidate dialect generation,
// speculative tokenization of a leading sample, and pattern-regularity
// scoring.
//
// Rather than guessing a delimiter by counting literal occurrences per line
// with a regex, this package actually runs the tokenizer under each
// candidate dialect and scores how regular the rows it produces are — the
// dialect that shatters the sample into the most self-consistent row shape
// wins.
package infer

import (
	"context"
	"sort"

	pool "github.com/jolestar/go-commons-pool"

	"github.com/shapestone/scalarcsv/internal/buffer"
	"github.com/shapestone/scalarcsv/internal/delimiter"
	"github.com/shapestone/scalarcsv/internal/tokenizer"
)

// epsilon is the score floor applied to single-field row patterns,
// preventing a pattern with zero delimiters from scoring zero
// contribution outright.
const epsilon = 0.001

// DefaultSampleSize bounds how many scalars the reader pre-buffers before
// running inference.
const DefaultSampleSize = 500

// TypeAwareness optionally re-weights a row pattern's contribution using
// the fields that produced it. The hook stays wired into the scoring
// pipeline but is left disabled (nil) by default — equivalent to a
// constant multiplier of 1.0 — since type-aware reweighting is not yet
// calibrated against real data.
type TypeAwareness func(fields []string) float64

// Candidates bundles the field/row candidate lists fed to Infer.
type Candidates struct {
	Fields []delimiter.Delimiter
	Rows   []delimiter.RowDelimiterSet
}

// Result is the winning dialect together with its pattern score.
type Result struct {
	Dialect delimiter.Dialect
	Score   float64
}

// Inferrer runs dialect inference over a sample. It pools the
// ScalarBuffer scratch objects backing each trial reader, since a trial
// reader is a short-lived object evaluated once per candidate and not
// worth allocating fresh every time.
type Inferrer struct {
	ctx           context.Context
	pool          *pool.ObjectPool
	TypeAwareness TypeAwareness
}

// New constructs an Inferrer with a fresh scratch-buffer pool.
func New() *Inferrer {
	inf := &Inferrer{ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(func(context.Context) (interface{}, error) {
		return buffer.New(), nil
	})
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = -1
	cfg.BlockWhenExhausted = false
	inf.pool = pool.NewObjectPool(inf.ctx, factory, cfg)
	return inf
}

func (inf *Inferrer) borrowBuffer() *buffer.ScalarBuffer {
	o, err := inf.pool.BorrowObject(inf.ctx)
	if err != nil {
		return buffer.New()
	}
	return o.(*buffer.ScalarBuffer)
}

func (inf *Inferrer) releaseBuffer(b *buffer.ScalarBuffer) {
	for {
		if _, ok := b.Next(); !ok {
			break
		}
	}
	_ = inf.pool.ReturnObject(inf.ctx, b)
}

// Infer picks the best-scoring dialect for sample among the candidate
// pairs, with the given escape configuration held fixed across every
// trial: the escape scalar is always configured explicitly, never
// inferred, since there's no scoring signal that distinguishes one escape
// scalar from another.
func (inf *Inferrer) Infer(sample []rune, cands Candidates, hasEscape bool, escape rune) (Result, error) {
	fields := dedupeFields(cands.Fields)
	rows := dedupeRows(cands.Rows)

	type trial struct {
		rank int
		d    delimiter.Dialect
	}
	var trials []trial
	for i, f := range fields {
		for j, row := range rows {
			dp := delimiter.DelimitersPair{Field: f, Row: row}
			opts := delimiter.ValidationOptions{HasEscape: hasEscape, Escape: escape}
			if err := dp.Validate(opts); err != nil {
				continue
			}
			trials = append(trials, trial{
				rank: i + j,
				d:    delimiter.Dialect{Field: f, Row: row, HasEscape: hasEscape, Escape: escape},
			})
		}
	}
	sort.SliceStable(trials, func(a, b int) bool {
		return trials[a].rank < trials[b].rank
	})

	var best Result
	haveBest := false
	for _, tr := range trials {
		score, err := inf.score(sample, tr.d)
		if err != nil || score <= 0 {
			continue
		}
		if !haveBest || inf.betterThan(tr.d, score, best.Dialect, best.Score) {
			best = Result{Dialect: tr.d, Score: score}
			haveBest = true
		}
	}
	if !haveBest {
		return Result{}, &InferenceError{Reason: "no candidate dialect produced a positive pattern score"}
	}
	return best, nil
}

// betterThan breaks a scoring tie: larger score wins outright; on equal
// score, smaller row-delimiter-set cardinality wins (fewer alternative row
// terminators is a simpler, more specific dialect); on a further tie,
// longer total delimiter scalar length wins (a longer, more distinctive
// delimiter is less likely to be a coincidental match).
func (inf *Inferrer) betterThan(d delimiter.Dialect, score float64, best delimiter.Dialect, bestScore float64) bool {
	if score != bestScore {
		return score > bestScore
	}
	if d.Row.Len() != best.Row.Len() {
		return d.Row.Len() < best.Row.Len()
	}
	return totalScalarLen(d) > totalScalarLen(best)
}

func totalScalarLen(d delimiter.Dialect) int {
	return d.Field.Len() + d.Row.TotalScalarLen()
}

// score speculatively tokenizes sample under d and computes its pattern
// score: how consistently the candidate dialect splits the sample into
// rows of the same shape.
func (inf *Inferrer) score(sample []rune, d delimiter.Dialect) (float64, error) {
	buf := inf.borrowBuffer()
	defer inf.releaseBuffer(buf)
	buf.PushAll(sample)

	cfg := tokenizer.Config{
		Field:              d.Field,
		Row:                d.Row,
		HasEscape:          d.HasEscape,
		Escape:             d.Escape,
		SkipWidthInvariant: true,
	}
	exhausted := func() (rune, bool, error) { return 0, false, nil }
	r := tokenizer.NewWithBuffer(buf, exhausted, cfg)

	// Each row's Abstraction pattern (Cell, FieldDelim, Cell, ..., Cell) is
	// fully determined by its field count k: the pattern alphabet carries
	// no information beyond "how many cells, separated by how many field
	// delimiters", so two rows are the same pattern iff they have the same
	// k. The map key is therefore simply k.
	counts := make(map[int]int)
	weights := make(map[int]float64)
	var order []int
	for {
		row, err := r.ReadRow()
		if err != nil {
			break // clean EOF, sticky failure, or a catastrophic error: stop scoring
		}
		k := len(row)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
		if inf.TypeAwareness != nil {
			weights[k] += inf.TypeAwareness(row)
		}
	}

	if len(order) == 0 {
		return 0, nil
	}

	var total float64
	for _, k := range order {
		c := counts[k]
		f := float64(k)
		contribution := float64(c) * max(epsilon, f-1) / f
		if inf.TypeAwareness != nil {
			// Scale by the mean weight the hook gave this pattern's rows.
			contribution *= weights[k] / float64(c)
		}
		total += contribution
	}
	return total / float64(len(order)), nil
}
