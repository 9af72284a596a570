package phenotype

import (
	"fmt"

	"github.com/wippyai/peapod/errors"
)

// Funcs is an adapter assembled from a Descriptor and closures.
//
// SplitFunc and ReassembleFunc are required. ReleaseFunc, when set,
// replaces the value's own Drop. DiscriminantFunc, when set, reports the tag
// of a value without splitting it; otherwise Discriminant falls back to
// SplitFunc, which must then be free of side effects.
type Funcs[T, P any] struct {
	SplitFunc        func(v T) (uint64, P)
	ReassembleFunc   func(tag uint64, payload P) T
	ReleaseFunc      func(v T)
	DiscriminantFunc func(v T) uint64
	Descriptor
}

// NewFuncs builds an adapter from a descriptor and the two required
// closures. It fails if desc is not a valid descriptor, such as the zero
// Descriptor.
func NewFuncs[T, P any](desc Descriptor, split func(T) (uint64, P), reassemble func(uint64, P) T) (Funcs[T, P], error) {
	f := Funcs[T, P]{
		SplitFunc:      split,
		ReassembleFunc: reassemble,
		Descriptor:     desc,
	}
	if split == nil || reassemble == nil {
		return Funcs[T, P]{}, errors.InvalidInput(errors.PhaseDefine, "split and reassemble are required")
	}
	if err := Validate[T, P](f); err != nil {
		return Funcs[T, P]{}, err
	}
	return f, nil
}

func (f Funcs[T, P]) Split(v T) (uint64, P) {
	return f.SplitFunc(v)
}

func (f Funcs[T, P]) Reassemble(tag uint64, payload P) T {
	return f.ReassembleFunc(tag, payload)
}

func (f Funcs[T, P]) Release(v T) {
	if f.ReleaseFunc != nil {
		f.ReleaseFunc(v)
		return
	}
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

func (f Funcs[T, P]) Discriminant(v T) uint64 {
	if f.DiscriminantFunc != nil {
		return f.DiscriminantFunc(v)
	}
	tag, _ := f.SplitFunc(v)
	return tag
}

// checked validates every tag crossing the adapter boundary.
type checked[T, P any] struct {
	inner Phenotype[T, P]
	desc  Descriptor
}

// Checked wraps ph so that Split, Reassemble and Discriminant panic with an
// invalid_tag error instead of passing an out-of-range tag through. Release,
// Name and Discriminant keep working through the wrapper. It panics if ph
// fails Validate.
func Checked[T, P any](ph Phenotype[T, P]) Phenotype[T, P] {
	if err := Validate(ph); err != nil {
		panic(err)
	}
	d, err := Count("", ph.NumVariants())
	if err != nil {
		panic(err)
	}
	c := checked[T, P]{inner: ph, desc: d}
	if _, ok := ph.(Discriminator[T]); ok {
		return checkedDiscriminator[T, P]{c}
	}
	return c
}

func (c checked[T, P]) NumVariants() int { return c.inner.NumVariants() }

func (c checked[T, P]) Bits() int { return c.inner.Bits() }

func (c checked[T, P]) Split(v T) (uint64, P) {
	tag, p := c.inner.Split(v)
	c.check(tag, v)
	return tag, p
}

func (c checked[T, P]) Reassemble(tag uint64, payload P) T {
	if err := c.desc.Check(tag); err != nil {
		panic(err)
	}
	return c.inner.Reassemble(tag, payload)
}

func (c checked[T, P]) Release(v T) {
	Release(c.inner, v)
}

func (c checked[T, P]) Name(tag uint64) string {
	if n, ok := c.inner.(Namer); ok {
		return n.Name(tag)
	}
	return c.desc.Name(tag)
}

func (c checked[T, P]) check(tag uint64, v T) {
	if c.desc.Valid(tag) {
		return
	}
	panic(errors.New(errors.PhaseDefine, errors.KindInvalidTag).
		GoType(fmt.Sprintf("%T", v)).
		Value(tag).
		Detailf("tag %d out of range (variants %d)", tag, c.desc.NumVariants()).
		Build())
}

type checkedDiscriminator[T, P any] struct {
	checked[T, P]
}

func (c checkedDiscriminator[T, P]) Discriminant(v T) uint64 {
	tag := c.inner.(Discriminator[T]).Discriminant(v)
	c.check(tag, v)
	return tag
}
