package phenotype

import (
	"fmt"

	"github.com/wippyai/peapod/errors"
	"github.com/wippyai/peapod/phenotype/internal/layout"
)

// Phenotype converts values of a closed variant set T to and from a tag and
// a payload union P.
//
// Split moves all state of v into the payload; the caller forgets v
// afterwards and never releases it. Reassemble rebuilds the value. tag must
// be the exact tag Split returned for payload, otherwise the result is
// undefined.
type Phenotype[T, P any] interface {
	NumVariants() int
	Bits() int
	Split(v T) (tag uint64, payload P)
	Reassemble(tag uint64, payload P) T
}

// Namer is implemented by adapters that can name a tag for diagnostics.
type Namer interface {
	Name(tag uint64) string
}

// Releaser is implemented by adapters that know how to release the
// resources held by a reassembled value.
type Releaser[T any] interface {
	Release(v T)
}

// Dropper is implemented by values that own resources. It is consulted when
// the adapter is not a Releaser.
type Dropper interface {
	Drop()
}

// Discriminator is implemented by adapters that can report the tag of a
// whole value without splitting it.
type Discriminator[T any] interface {
	Discriminant(v T) uint64
}

// Bits returns the tag width for n variants: ceil(log2(n)), and 0 for a
// single variant.
func Bits(n int) int {
	return layout.TagBits(n)
}

// Release disposes of v the way a container does when it drops an element:
// through the adapter if it is a Releaser, else through v's own Drop.
func Release[T, P any](ph Phenotype[T, P], v T) {
	if r, ok := ph.(Releaser[T]); ok {
		r.Release(v)
		return
	}
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

// Discriminant returns the tag of v if the adapter can tell it without
// splitting.
func Discriminant[T, P any](ph Phenotype[T, P], v T) (uint64, bool) {
	if d, ok := ph.(Discriminator[T]); ok {
		return d.Discriminant(v), true
	}
	return 0, false
}

// Validate checks the constant part of an adapter: at least one and at most
// MaxVariants cases, and a tag width of exactly Bits(NumVariants()). A
// narrower width would silently truncate tags.
func Validate[T, P any](ph Phenotype[T, P]) error {
	name := ""
	if s, ok := ph.(interface{ SetName() string }); ok {
		name = s.SetName()
	}
	var path []string
	if name != "" {
		path = []string{name}
	}

	n := ph.NumVariants()
	if n < 1 {
		return errors.NoVariants(errors.PhaseDefine, name)
	}
	if n > MaxVariants {
		return errors.TooManyVariants(errors.PhaseDefine, name, n, MaxVariants)
	}
	switch bits, want := ph.Bits(), Bits(n); {
	case bits < want:
		return errors.Overflow(errors.PhaseDefine, path, uint64(n-1), fmt.Sprintf("%d-bit tag", bits))
	case bits > want:
		return errors.New(errors.PhaseDefine, errors.KindInvalidInput).
			Path(path...).
			Value(bits).
			Detailf("tag width %d bits, %d variants need %d", bits, n, want).
			Build()
	}
	return nil
}
