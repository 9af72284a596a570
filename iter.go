package peapod

import (
	"iter"

	"go.uber.org/zap"

	"github.com/wippyai/peapod/internal/bitvec"
	"github.com/wippyai/peapod/phenotype"
)

// IntoIter consumes the values of a container from either end.
//
// Values in [index, len(data)) have not been produced yet. Next reads at
// index and moves it forward; NextBack shortens data. A produced slot is
// zeroed and never read again.
//
// Call Close, or drain the iterator, to release values that were never
// produced.
type IntoIter[T, P any] struct {
	ph    phenotype.Phenotype[T, P]
	data  []P
	tags  bitvec.Vector
	index int
}

// IntoIter takes both streams out of p. p is left empty and nothing is
// released.
func (p *Peapod[T, P]) IntoIter() *IntoIter[T, P] {
	it := &IntoIter[T, P]{
		ph:   p.ph,
		data: p.data,
		tags: p.tags,
	}
	p.data = nil
	p.tags = bitvec.New(p.ph.Bits())
	return it
}

// Len returns the exact number of values left.
func (it *IntoIter[T, P]) Len() int {
	return len(it.data) - it.index
}

// Next returns the first value not yet produced.
func (it *IntoIter[T, P]) Next() (T, bool) {
	if it.index >= len(it.data) {
		var zero T
		return zero, false
	}
	i := it.index
	tag := it.tags.Load(i)
	payload := it.take(i)
	it.index++
	return it.ph.Reassemble(tag, payload), true
}

// NextBack returns the last value not yet produced.
func (it *IntoIter[T, P]) NextBack() (T, bool) {
	if it.index >= len(it.data) {
		var zero T
		return zero, false
	}
	last := len(it.data) - 1
	tag := it.tags.Load(last)
	payload := it.take(last)
	// Tags past the new end are dead; they go away with the stream.
	it.data = it.data[:last]
	return it.ph.Reassemble(tag, payload), true
}

func (it *IntoIter[T, P]) take(i int) P {
	var zero P
	payload := it.data[i]
	it.data[i] = zero
	return payload
}

// All yields the remaining values front to back. Breaking out of the loop
// leaves the rest for Close.
func (it *IntoIter[T, P]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Backward yields the remaining values back to front.
func (it *IntoIter[T, P]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.NextBack()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close releases every value not yet produced, front to back, and frees the
// streams. It is safe to call more than once.
func (it *IntoIter[T, P]) Close() {
	left := it.Len()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		phenotype.Release(it.ph, v)
	}
	it.data = nil
	it.index = 0
	it.tags.Free()
	if left > 0 {
		if ce := Logger().Check(zap.DebugLevel, "closed iterator early"); ce != nil {
			ce.Write(zap.Int("released", left))
		}
	}
}

// Drain consumes p front to back when ranged over. If the loop stops early
// the values it did not reach are released. p is empty afterwards.
func (p *Peapod[T, P]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := p.IntoIter()
		defer it.Close()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
