// Package bitvec implements the packed tag stream: a growable array of
// fixed-width unsigned slots stored back to back in uint64 words.
//
// Slot i occupies bits [i*width, (i+1)*width) of the stream. Bit k of the
// stream is bit k%64 of word k/64 (least significant bit first), so a slot
// may straddle two words. A width of zero is valid: every slot reads as 0
// and the vector never allocates.
package bitvec

import (
	"math"
	"math/bits"
	"slices"
)

const (
	wordBits = 64

	// MaxWidth is the widest slot a Vector can hold.
	MaxWidth = wordBits
)

// Vector is a bit-packed array of width-bit slots.
//
// A zero Vector has width 0; use New to pick a width. Vector is not safe for
// concurrent mutation.
type Vector struct {
	words  []uint64
	nbits  int
	width  int
	mask   uint64
	nslots int
}

// New returns an empty vector of width-bit slots. It panics if width is
// outside [0, MaxWidth].
func New(width int) Vector {
	return WithCapacity(width, 0)
}

// WithCapacity returns an empty vector able to hold slots slots without
// reallocating.
func WithCapacity(width, slots int) Vector {
	if width < 0 || width > MaxWidth {
		panic("bitvec: slot width out of range")
	}
	v := Vector{width: width, mask: slotMask(width)}
	if slots > 0 && width > 0 {
		v.words = make([]uint64, 0, wordsFor(SaturatingMul(slots, width)))
	}
	return v
}

func slotMask(width int) uint64 {
	if width == wordBits {
		return math.MaxUint64
	}
	return 1<<uint(width) - 1
}

func wordsFor(nbits int) int {
	return (nbits + wordBits - 1) / wordBits
}

// SaturatingMul returns a*b, or math.MaxInt when the product overflows.
// Both operands must be non-negative.
func SaturatingMul(a, b int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

// Width returns the slot width in bits.
func (v *Vector) Width() int { return v.width }

// Len returns the number of slots.
func (v *Vector) Len() int { return v.nslots }

// BitLen returns the number of bits in use (Len * Width).
func (v *Vector) BitLen() int { return v.nbits }

// BitCap returns the number of bits the vector can hold without reallocating.
func (v *Vector) BitCap() int { return cap(v.words) * wordBits }

// Cap returns the number of slots the vector can hold without reallocating.
// A zero-width vector never needs storage, so its capacity is unbounded.
func (v *Vector) Cap() int {
	if v.width == 0 {
		return math.MaxInt
	}
	return v.BitCap() / v.width
}

// Reserve ensures room for at least n more slots.
func (v *Vector) Reserve(n int) {
	if v.width == 0 || n <= 0 {
		return
	}
	need := wordsFor(SaturatingMul(v.nslots+n, v.width))
	if need > cap(v.words) {
		v.words = slices.Grow(v.words, need-len(v.words))
	}
}

// Push appends one slot holding tag. Bits of tag above Width are ignored.
func (v *Vector) Push(tag uint64) {
	if v.width == 0 {
		v.nslots++
		return
	}
	end := v.nbits + v.width
	if need := wordsFor(end); need > len(v.words) {
		v.words = append(v.words, make([]uint64, need-len(v.words))...)
	}
	v.nbits = end
	v.nslots++
	v.store(v.nslots-1, tag)
}

// Load decodes slot i. The index must be in range.
func (v *Vector) Load(i int) uint64 {
	if uint(i) >= uint(v.nslots) {
		panic("bitvec: slot index out of range")
	}
	if v.width == 0 {
		return 0
	}
	off := i * v.width
	w, shift := off/wordBits, uint(off%wordBits)
	val := v.words[w] >> shift
	if int(shift)+v.width > wordBits {
		val |= v.words[w+1] << (wordBits - shift)
	}
	return val & v.mask
}

// Store overwrites slot i with tag. The index must be in range.
func (v *Vector) Store(i int, tag uint64) {
	if uint(i) >= uint(v.nslots) {
		panic("bitvec: slot index out of range")
	}
	if v.width == 0 {
		return
	}
	v.store(i, tag)
}

func (v *Vector) store(i int, tag uint64) {
	tag &= v.mask
	off := i * v.width
	w, shift := off/wordBits, uint(off%wordBits)
	v.words[w] = v.words[w]&^(v.mask<<shift) | tag<<shift
	if spill := int(shift) + v.width - wordBits; spill > 0 {
		hi := slotMask(spill)
		v.words[w+1] = v.words[w+1]&^hi | tag>>(wordBits-shift)
	}
}

// Truncate shrinks the vector to n slots. It is a no-op when n >= Len.
// The bit length n*Width saturates instead of overflowing; no vector can
// hold that many bits, so saturation never discards live slots.
// Capacity is kept. Vacated bits are zeroed.
func (v *Vector) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= v.nslots {
		return
	}
	keep := SaturatingMul(n, v.width)
	if keep < v.nbits {
		v.clearFrom(keep)
		v.nbits = keep
		v.words = v.words[:wordsFor(keep)]
	}
	v.nslots = n
}

func (v *Vector) clearFrom(bit int) {
	w := bit / wordBits
	if r := bit % wordBits; r != 0 {
		v.words[w] &= 1<<uint(r) - 1
		w++
	}
	clear(v.words[w:])
}

// Clear removes every slot, keeping capacity.
func (v *Vector) Clear() {
	v.Truncate(0)
}

// Free drops the backing array.
func (v *Vector) Free() {
	v.words = nil
	v.nbits = 0
	v.nslots = 0
}

// AppendFrom appends every slot of other.
func (v *Vector) AppendFrom(other *Vector) {
	if other.nslots == 0 {
		return
	}
	if v.width != other.width {
		panic("bitvec: width mismatch")
	}
	if v.width == 0 {
		v.nslots += other.nslots
		return
	}
	v.Reserve(other.nslots)
	if v.nbits%wordBits == 0 {
		v.words = append(v.words[:v.nbits/wordBits], other.words[:wordsFor(other.nbits)]...)
		v.nbits += other.nbits
		v.nslots += other.nslots
		return
	}
	for i := 0; i < other.nslots; i++ {
		v.Push(other.Load(i))
	}
}

// Equal reports whether both vectors hold the same slots.
func (v *Vector) Equal(other *Vector) bool {
	if v.width != other.width || v.nslots != other.nslots {
		return false
	}
	return slices.Equal(v.words[:wordsFor(v.nbits)], other.words[:wordsFor(other.nbits)])
}

// Clone returns an independent copy with the same capacity in slots.
func (v *Vector) Clone() Vector {
	c := *v
	if v.words != nil {
		c.words = make([]uint64, len(v.words), cap(v.words))
		copy(c.words, v.words)
	}
	return c
}

// Slots decodes every slot, mostly for debugging.
func (v *Vector) Slots() []uint64 {
	out := make([]uint64, v.nslots)
	for i := range out {
		out[i] = v.Load(i)
	}
	return out
}
