package peapod

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/peapod/phenotype"
)

// FromSlice splits every element of vs, in order, into a new container.
func FromSlice[T, P any](ph phenotype.Phenotype[T, P], vs []T) *Peapod[T, P] {
	p := WithCapacity(ph, len(vs))
	for _, v := range vs {
		p.Push(v)
	}
	return p
}

// Of builds a container from a fixed list of values.
func Of[T, P any](ph phenotype.Phenotype[T, P], vs ...T) *Peapod[T, P] {
	return FromSlice(ph, vs)
}

// Collect builds a container from a sequence.
func Collect[T, P any](ph phenotype.Phenotype[T, P], seq iter.Seq[T]) *Peapod[T, P] {
	p := New(ph)
	p.Extend(seq)
	return p
}

// Extend pushes every value of seq.
func (p *Peapod[T, P]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		p.Push(v)
	}
}

// ExtendSlice pushes every element of vs.
func (p *Peapod[T, P]) ExtendSlice(vs []T) {
	p.Reserve(len(vs))
	for _, v := range vs {
		p.Push(v)
	}
}

// ToSlice reassembles every value, in order, and leaves p empty.
func (p *Peapod[T, P]) ToSlice() []T {
	it := p.IntoIter()
	defer it.Close()
	out := make([]T, 0, it.Len())
	for v := range it.All() {
		out = append(out, v)
	}
	return out
}

// Equal reports whether a and b hold the same tags and payloads.
func Equal[T any, P comparable](a, b *Peapod[T, P]) bool {
	return a.tags.Equal(&b.tags) && slices.Equal(a.data, b.data)
}

// EqualFunc is like Equal, comparing payloads with eq.
func EqualFunc[T, P any](a, b *Peapod[T, P], eq func(P, P) bool) bool {
	return a.tags.Equal(&b.tags) && slices.EqualFunc(a.data, b.data, eq)
}

// Clone returns a copy sharing nothing with p but the payload values
// themselves. Payloads holding pointers or handles end up shared.
func (p *Peapod[T, P]) Clone() *Peapod[T, P] {
	return &Peapod[T, P]{
		ph:   p.ph,
		tags: p.tags.Clone(),
		data: slices.Clone(p.data),
	}
}

// CloneFunc returns a copy whose payloads are produced by cp, which gets
// each payload together with its tag.
func (p *Peapod[T, P]) CloneFunc(cp func(tag uint64, payload P) P) *Peapod[T, P] {
	c := &Peapod[T, P]{
		ph:   p.ph,
		tags: p.tags.Clone(),
		data: make([]P, len(p.data), cap(p.data)),
	}
	for i, payload := range p.data {
		c.data[i] = cp(p.tags.Load(i), payload)
	}
	return c
}

// Tags returns the decoded tag of every value.
func (p *Peapod[T, P]) Tags() []uint64 {
	return p.tags.Slots()
}

// String lists each element's tag; payloads are opaque:
//
//	[ { tag: 0, data: .. }, { tag: 2, data: .. }, ]
func (p *Peapod[T, P]) String() string {
	return p.render(func(tag uint64) string {
		return strconv.FormatUint(tag, 10)
	})
}

// Describe is like String but names each tag when the adapter is a
// phenotype.Namer.
func (p *Peapod[T, P]) Describe() string {
	n, ok := p.ph.(phenotype.Namer)
	if !ok {
		return p.String()
	}
	return p.render(n.Name)
}

func (p *Peapod[T, P]) render(tagName func(uint64) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range p.data {
		b.WriteString(" { tag: ")
		b.WriteString(tagName(p.tags.Load(i)))
		b.WriteString(", data: .. },")
	}
	b.WriteString(" ]")
	return b.String()
}

// GoString renders the container for %#v.
func (p *Peapod[T, P]) GoString() string {
	return fmt.Sprintf("Peapod{tags: %v, data: [..]}", p.Tags())
}
