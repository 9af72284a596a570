package phenotype

import "unsafe"

// Footprint compares the per-element cost of storing T directly with the
// cost of a tag slot plus a payload P.
type Footprint struct {
	TagBits      int
	PayloadBytes uintptr
	// PeapodBytes is the tag rounded up to whole bytes plus the payload.
	PeapodBytes uintptr
	// NaiveBytes is the size of T itself, what a []T spends per element.
	NaiveBytes uintptr
}

// Measure reports the footprint of ph's variant set.
func Measure[T, P any](ph Phenotype[T, P]) Footprint {
	var (
		v T
		p P
	)
	bits := ph.Bits()
	return Footprint{
		TagBits:      bits,
		PayloadBytes: unsafe.Sizeof(p),
		PeapodBytes:  uintptr((bits+7)/8) + unsafe.Sizeof(p),
		NaiveBytes:   unsafe.Sizeof(v),
	}
}

// ElementBits is the exact per-element cost inside a peapod, where tags are
// packed without byte rounding.
func (f Footprint) ElementBits() uint64 {
	return uint64(f.TagBits) + 8*uint64(f.PayloadBytes)
}

// MoreCompact reports whether the split form is no larger than T. Equal
// sizes count as compact.
func (f Footprint) MoreCompact() bool {
	return f.PeapodBytes <= f.NaiveBytes
}
