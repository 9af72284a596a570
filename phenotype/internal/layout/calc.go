package layout

import (
	"math"

	"go.bytecodealliance.org/wit"
)

// Info is the size and alignment of a type in bytes.
type Info struct {
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
}

type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		info = c.calculateRecord(kind)
	case *wit.Variant, *wit.Enum, *wit.Option, *wit.Result:
		cases, _ := CasesOf(t)
		info = c.canonical(cases)
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Tuple:
		info = c.calculateTuple(kind)
	case *wit.Flags:
		info = c.calculateFlags(kind)
	case *wit.Own, *wit.Borrow:
		info = Info{Size: 4, Align: 4} // i32 handle
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

// satAdd saturates at MaxUint32 so absurd records report as huge, not small.
func satAdd(a, b uint32) uint32 {
	if s, ok := SafeAddU32(a, b); ok {
		return s
	}
	return math.MaxUint32
}

func (c *Calculator) calculateRecord(r *wit.Record) Info {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}
	}

	fieldOffs := make(map[string]uint32)
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		fieldLayout := c.Calculate(field.Type)

		offset = AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset = satAdd(offset, fieldLayout.Size)
	}

	return Info{
		Size:      AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}
}

func (c *Calculator) calculateTuple(t *wit.Tuple) Info {
	if len(t.Types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	maxAlign := uint32(1)
	offset := uint32(0)

	for _, typ := range t.Types {
		elemLayout := c.Calculate(typ)
		offset = AlignTo(offset, elemLayout.Align)

		if elemLayout.Align > maxAlign {
			maxAlign = elemLayout.Align
		}

		offset = satAdd(offset, elemLayout.Size)
	}

	return Info{
		Size:  AlignTo(offset, maxAlign),
		Align: maxAlign,
	}
}

func (c *Calculator) calculateFlags(f *wit.Flags) Info {
	numFlags := len(f.Flags)

	if numFlags == 0 {
		return Info{Size: 0, Align: 1}
	}

	if numFlags <= 8 {
		return Info{Size: 1, Align: 1}
	} else if numFlags <= 16 {
		return Info{Size: 2, Align: 2}
	} else if numFlags <= 32 {
		return Info{Size: 4, Align: 4}
	} else if numFlags <= 64 {
		return Info{Size: 8, Align: 8}
	}

	// >64 flags: one u32 per 32 flags
	size, ok := SafeMulU32(uint32((numFlags+31)/32), 4)
	if !ok {
		size = math.MaxUint32
	}
	return Info{Size: size, Align: 4}
}

// Case is one alternative of a variant-like type. Type is nil for a case
// without payload.
type Case struct {
	Type wit.Type
	Name string
}

// CasesOf lists the alternatives of a variant, enum, option or result
// typedef. It reports false for anything else.
func CasesOf(t *wit.TypeDef) ([]Case, bool) {
	switch kind := t.Kind.(type) {
	case *wit.Variant:
		cases := make([]Case, len(kind.Cases))
		for i, cs := range kind.Cases {
			cases[i] = Case{Name: cs.Name, Type: cs.Type}
		}
		return cases, true
	case *wit.Enum:
		cases := make([]Case, len(kind.Cases))
		for i, cs := range kind.Cases {
			cases[i] = Case{Name: cs.Name}
		}
		return cases, true
	case *wit.Option:
		return []Case{{Name: "none"}, {Name: "some", Type: kind.Type}}, true
	case *wit.Result:
		return []Case{{Name: "ok", Type: kind.OK}, {Name: "error", Type: kind.Err}}, true
	default:
		return nil, false
	}
}

func (c *Calculator) caseInfo(cs Case) Info {
	if cs.Type == nil {
		return Info{Size: 0, Align: 1}
	}
	return c.Calculate(cs.Type)
}

// canonical is the canonical ABI variant layout: discriminant, padding up to
// the widest alignment, widest payload, tail padding.
func (c *Calculator) canonical(cases []Case) Info {
	if len(cases) == 0 {
		return Info{Size: 0, Align: 1}
	}

	discSize := DiscriminantSize(len(cases))
	maxAlign := discSize
	maxSize := uint32(0)

	for _, cs := range cases {
		caseLayout := c.caseInfo(cs)
		if caseLayout.Align > maxAlign {
			maxAlign = caseLayout.Align
		}
		if caseLayout.Size > maxSize {
			maxSize = caseLayout.Size
		}
	}

	payloadOffset := AlignTo(discSize, maxAlign)
	return Info{
		Size:  AlignTo(satAdd(payloadOffset, maxSize), maxAlign),
		Align: maxAlign,
	}
}

// Split compares the canonical layout of a variant set with the split
// layout: TagBits in a shared bit stream plus a payload union.
type Split struct {
	CaseSizes []Info
	Payload   Info
	Canonical Info
	TagBits   int
}

// Split measures cases both ways.
func (c *Calculator) Split(cases []Case) Split {
	s := Split{
		CaseSizes: make([]Info, len(cases)),
		Payload:   Info{Size: 0, Align: 1},
		Canonical: c.canonical(cases),
		TagBits:   TagBits(len(cases)),
	}

	maxSize := uint32(0)
	for i, cs := range cases {
		info := c.caseInfo(cs)
		s.CaseSizes[i] = info
		if info.Align > s.Payload.Align {
			s.Payload.Align = info.Align
		}
		if info.Size > maxSize {
			maxSize = info.Size
		}
	}
	s.Payload.Size = AlignTo(maxSize, s.Payload.Align)
	return s
}

// ElementBits is the per-element cost of the split layout.
func (s Split) ElementBits() uint64 {
	return uint64(s.TagBits) + 8*uint64(s.Payload.Size)
}

// CanonicalBits is the per-element cost of the canonical layout.
func (s Split) CanonicalBits() uint64 {
	return 8 * uint64(s.Canonical.Size)
}

// Compact reports whether the split layout is strictly smaller.
func (s Split) Compact() bool {
	return s.ElementBits() < s.CanonicalBits()
}

// Saving is the fraction of canonical bits the split layout saves; negative
// when it costs more.
func (s Split) Saving() float64 {
	if s.CanonicalBits() == 0 {
		return 0
	}
	return 1 - float64(s.ElementBits())/float64(s.CanonicalBits())
}
