package peapod

import (
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/peapod/internal/bitvec"
	"github.com/wippyai/peapod/phenotype"
)

// Peapod is a growable sequence of values of the variant set T, stored as a
// bit-packed tag stream and a payload stream of P.
//
// Slot i of both streams is the split of exactly one value. Values go in
// through Push and come out through Pop or an iterator; there is no random
// access, because reading a payload without removing it would leave two
// owners of the same resources.
//
// The zero Peapod has no adapter and is not usable; create one with New.
// A Peapod is not safe for concurrent use.
type Peapod[T, P any] struct {
	ph   phenotype.Phenotype[T, P]
	data []P
	tags bitvec.Vector
}

// New returns an empty container without allocating either stream. It panics with an *errors.Error if ph fails
// phenotype.Validate.
func New[T, P any](ph phenotype.Phenotype[T, P]) *Peapod[T, P] {
	mustValidate(ph)
	return &Peapod[T, P]{
		ph:   ph,
		tags: bitvec.New(ph.Bits()),
	}
}

// WithCapacity returns an empty container with room for n values.
func WithCapacity[T, P any](ph phenotype.Phenotype[T, P], n int) *Peapod[T, P] {
	mustValidate(ph)
	return &Peapod[T, P]{
		ph:   ph,
		tags: bitvec.WithCapacity(ph.Bits(), n),
		data: make([]P, 0, n),
	}
}

func mustValidate[T, P any](ph phenotype.Phenotype[T, P]) {
	if err := phenotype.Validate(ph); err != nil {
		panic(err)
	}
}

// Phenotype returns the adapter the container was created with.
func (p *Peapod[T, P]) Phenotype() phenotype.Phenotype[T, P] {
	return p.ph
}

// Len returns the number of values.
func (p *Peapod[T, P]) Len() int {
	return len(p.data)
}

// IsEmpty reports whether the container holds no values.
func (p *Peapod[T, P]) IsEmpty() bool {
	return len(p.data) == 0
}

// Cap returns how many values fit without reallocating either stream.
func (p *Peapod[T, P]) Cap() int {
	return min(p.tags.Cap(), cap(p.data))
}

// Reserve makes room for at least n more values.
func (p *Peapod[T, P]) Reserve(n int) {
	if n <= 0 {
		return
	}
	old := cap(p.data)
	p.tags.Reserve(n)
	p.data = slices.Grow(p.data, n)
	p.traceGrow(old)
}

// Push splits v and appends it. v must not be used afterwards.
func (p *Peapod[T, P]) Push(v T) {
	tag, payload := p.ph.Split(v)
	old := cap(p.data)
	// Tag space is secured before the payload lands, so the length (taken
	// from the payload stream) never runs ahead of a committed tag.
	p.tags.Reserve(1)
	p.data = append(p.data, payload)
	p.tags.Push(tag)
	p.traceGrow(old)
}

// Pop removes and returns the last value, or false if the container is
// empty.
func (p *Peapod[T, P]) Pop() (T, bool) {
	n := len(p.data)
	if n == 0 {
		var zero T
		return zero, false
	}
	tag := p.tags.Load(n - 1)
	p.tags.Truncate(n - 1)
	payload := p.take(n - 1)
	p.data = p.data[:n-1]
	return p.ph.Reassemble(tag, payload), true
}

// take moves payload i out, leaving the zero P behind.
func (p *Peapod[T, P]) take(i int) P {
	var zero P
	payload := p.data[i]
	p.data[i] = zero
	return payload
}

// TagAt returns the tag of value i without touching its payload.
func (p *Peapod[T, P]) TagAt(i int) uint64 {
	if uint(i) >= uint(len(p.data)) {
		panic("peapod: index out of range")
	}
	return p.tags.Load(i)
}

// Truncate shortens the container to n values. Every removed value is
// reassembled and released, last first, exactly as if it had been popped
// and dropped. Capacity is kept. It is a no-op if n >= Len.
func (p *Peapod[T, P]) Truncate(n int) {
	n = max(n, 0)
	removed := len(p.data) - n
	if removed <= 0 {
		return
	}
	for len(p.data) > n {
		v, _ := p.Pop()
		phenotype.Release(p.ph, v)
	}
	if ce := Logger().Check(zap.DebugLevel, "truncated peapod"); ce != nil {
		ce.Write(zap.Int("released", removed), zap.Int("len", n))
	}
}

// Clear releases every value. Capacity is kept.
func (p *Peapod[T, P]) Clear() {
	p.Truncate(0)
}

// Release clears the container and frees both streams. The container stays
// usable and starts over empty.
func (p *Peapod[T, P]) Release() {
	p.Clear()
	p.tags.Free()
	p.data = nil
}

// Append moves every value of other to the end of p, leaving other empty
// with its storage freed. Values are moved as (tag, payload) pairs without
// being reassembled. Both containers must use the same adapter.
func (p *Peapod[T, P]) Append(other *Peapod[T, P]) {
	if other == p {
		panic("peapod: append to self")
	}
	if other.IsEmpty() {
		return
	}
	old := cap(p.data)
	p.tags.AppendFrom(&other.tags)
	p.data = append(p.data, other.data...)
	p.traceGrow(old)

	clear(other.data)
	other.data = nil
	other.tags.Free()
}

func (p *Peapod[T, P]) traceGrow(old int) {
	if cap(p.data) == old {
		return
	}
	if ce := Logger().Check(zap.DebugLevel, "grew payload stream"); ce != nil {
		ce.Write(
			zap.Int("from", old),
			zap.Int("to", cap(p.data)),
			zap.Int("tag_bits", p.tags.BitCap()),
		)
	}
}
