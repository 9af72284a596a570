package phenotype

import (
	"strconv"

	"github.com/wippyai/peapod/errors"
)

// MaxVariants bounds the number of cases in one set. Tags are stored in a
// uint64 slot; the bound keeps descriptors small.
const MaxVariants = 1 << 24

// Descriptor is the validated, constant part of an adapter: how many cases
// a variant set has, how wide its tags are and what the cases are called.
// The zero Descriptor is invalid; build one with NewDescriptor or Count.
type Descriptor struct {
	index map[string]uint64
	name  string
	cases []string
	n     int
	bits  int
}

// NewDescriptor describes a set called name with the given case names, in
// tag order. It fails if there are no cases or a name repeats.
func NewDescriptor(name string, cases ...string) (Descriptor, error) {
	if len(cases) == 0 {
		return Descriptor{}, errors.NoVariants(errors.PhaseDefine, name)
	}
	if len(cases) > MaxVariants {
		return Descriptor{}, errors.TooManyVariants(errors.PhaseDefine, name, len(cases), MaxVariants)
	}
	index := make(map[string]uint64, len(cases))
	for i, c := range cases {
		if _, dup := index[c]; dup {
			return Descriptor{}, errors.DuplicateCase(errors.PhaseDefine, name, c)
		}
		index[c] = uint64(i)
	}
	return Descriptor{
		index: index,
		name:  name,
		cases: append([]string(nil), cases...),
		n:     len(cases),
		bits:  Bits(len(cases)),
	}, nil
}

// Count describes an unnamed set of n cases. Cases are named by their tag.
func Count(name string, n int) (Descriptor, error) {
	if n <= 0 {
		return Descriptor{}, errors.NoVariants(errors.PhaseDefine, name)
	}
	if n > MaxVariants {
		return Descriptor{}, errors.TooManyVariants(errors.PhaseDefine, name, n, MaxVariants)
	}
	return Descriptor{name: name, n: n, bits: Bits(n)}, nil
}

// MustDescriptor is like NewDescriptor but panics on error. It is meant for
// package-level variables.
func MustDescriptor(name string, cases ...string) Descriptor {
	d, err := NewDescriptor(name, cases...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Descriptor) NumVariants() int { return d.n }

func (d Descriptor) Bits() int { return d.bits }

// SetName returns the name of the variant set.
func (d Descriptor) SetName() string { return d.name }

// Valid reports whether tag names a case.
func (d Descriptor) Valid(tag uint64) bool {
	return tag < uint64(d.n)
}

// Check returns an invalid_tag error if tag names no case.
func (d Descriptor) Check(tag uint64) error {
	if !d.Valid(tag) {
		return errors.InvalidTag(errors.PhaseDefine, d.path(), tag, d.n)
	}
	return nil
}

func (d Descriptor) path() []string {
	if d.name == "" {
		return nil
	}
	return []string{d.name}
}

// CaseName returns the bare name of case tag. It panics on a tag that names
// no case.
func (d Descriptor) CaseName(tag uint64) string {
	if err := d.Check(tag); err != nil {
		panic(err)
	}
	if d.cases == nil {
		return strconv.FormatUint(tag, 10)
	}
	return d.cases[tag]
}

// Name returns the qualified name of case tag, "set::case". It panics on a
// tag that names no case.
func (d Descriptor) Name(tag uint64) string {
	c := d.CaseName(tag)
	if d.name == "" {
		return c
	}
	return d.name + "::" + c
}

// Tag looks up a case by bare name.
func (d Descriptor) Tag(name string) (uint64, bool) {
	if d.cases == nil {
		tag, err := strconv.ParseUint(name, 10, 64)
		if err != nil || !d.Valid(tag) {
			return 0, false
		}
		return tag, true
	}
	tag, ok := d.index[name]
	return tag, ok
}

// Cases returns the case names in tag order.
func (d Descriptor) Cases() []string {
	out := make([]string, d.n)
	for i := range out {
		out[i] = d.CaseName(uint64(i))
	}
	return out
}
