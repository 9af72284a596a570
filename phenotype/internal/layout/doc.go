// Package layout sizes WIT types and compares the two ways a variant set can
// be stored in memory.
//
// # Layout Rules
//
// Canonical ABI sizing follows the Component Model:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records and tuples: fields laid out sequentially with padding
//   - Variants: discriminant followed by the largest payload case
//   - Lists/Strings: (pointer, length) pair, content elsewhere
//   - Handles: one u32
//
// The split layout drops the per-element discriminant byte(s) in favour of a
// TagBits-wide slot in a shared bit stream, and keeps only the payload union.
//
// # Usage
//
//	c := layout.NewCalculator()
//	cases, ok := layout.CasesOf(typedef)
//	s := c.Split(cases)
//	// s.Canonical.Size, s.Payload.Size, s.TagBits
//
// This package is internal to phenotype.
package layout
