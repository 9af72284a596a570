package phenotype

import (
	"io"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/peapod/errors"
	"github.com/wippyai/peapod/phenotype/internal/layout"
)

// CaseLayout is the payload of one case, in canonical ABI bytes.
type CaseLayout struct {
	Name       string
	Size       uint32
	Align      uint32
	HasPayload bool
}

// Layout compares the canonical ABI layout of a WIT variant-like type with
// its split (tag stream plus payload union) layout.
type Layout struct {
	Name           string
	Kind           string
	Cases          []CaseLayout
	TagBits        int
	PayloadSize    uint32
	PayloadAlign   uint32
	CanonicalSize  uint32
	CanonicalAlign uint32
	ElementBits    uint64
	CanonicalBits  uint64
}

// Compact reports whether the split layout is strictly smaller per element.
func (l Layout) Compact() bool {
	return l.ElementBits < l.CanonicalBits
}

// Saving is the fraction of canonical bits saved per element.
func (l Layout) Saving() float64 {
	if l.CanonicalBits == 0 {
		return 0
	}
	return 1 - float64(l.ElementBits)/float64(l.CanonicalBits)
}

// FromWIT derives a Descriptor and a Layout from a WIT variant, enum, option
// or result typedef.
func FromWIT(td *wit.TypeDef) (Descriptor, Layout, error) {
	return fromWIT(layout.NewCalculator(), td)
}

func fromWIT(calc *layout.Calculator, td *wit.TypeDef) (Descriptor, Layout, error) {
	name := typeDefName(td)
	cases, ok := layout.CasesOf(td)
	if !ok {
		return Descriptor{}, Layout{}, errors.UnsupportedWIT(errors.PhaseMeasure, []string{name}, KindName(td.Kind))
	}

	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}
	desc, err := NewDescriptor(name, names...)
	if err != nil {
		return Descriptor{}, Layout{}, err
	}

	s := calc.Split(cases)
	l := Layout{
		Name:           name,
		Kind:           KindName(td.Kind),
		Cases:          make([]CaseLayout, len(cases)),
		TagBits:        s.TagBits,
		PayloadSize:    s.Payload.Size,
		PayloadAlign:   s.Payload.Align,
		CanonicalSize:  s.Canonical.Size,
		CanonicalAlign: s.Canonical.Align,
		ElementBits:    s.ElementBits(),
		CanonicalBits:  s.CanonicalBits(),
	}
	for i, c := range cases {
		l.Cases[i] = CaseLayout{
			Name:       c.Name,
			Size:       s.CaseSizes[i].Size,
			Align:      s.CaseSizes[i].Align,
			HasPayload: c.Type != nil,
		}
	}
	return desc, l, nil
}

// DecodeWIT reads a WIT resolve document in the JSON form produced by
// `wasm-tools component wit --json`.
func DecodeWIT(r io.Reader) (*wit.Resolve, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Load("decode WIT JSON", err)
	}
	return res, nil
}

// Layouts measures every named variant-like typedef in res, in document
// order. Other typedefs are skipped.
func Layouts(res *wit.Resolve) []Layout {
	calc := layout.NewCalculator()
	var out []Layout
	for _, td := range res.TypeDefs {
		if td.Name == nil {
			continue
		}
		_, l, err := fromWIT(calc, td)
		if err != nil {
			Logger().Debug("skipping typedef",
				zap.String("name", *td.Name),
				zap.String("kind", KindName(td.Kind)),
				zap.Error(err))
			continue
		}
		out = append(out, l)
	}
	Logger().Debug("measured WIT typedefs",
		zap.Int("typedefs", len(res.TypeDefs)),
		zap.Int("variant_like", len(out)))
	return out
}

// Lookup finds a named typedef in res.
func Lookup(res *wit.Resolve, name string) (*wit.TypeDef, error) {
	for _, td := range res.TypeDefs {
		if td.Name != nil && *td.Name == name {
			return td, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, "type", name)
}

func typeDefName(td *wit.TypeDef) string {
	if td.Name != nil {
		return *td.Name
	}
	return ""
}

// KindName returns the WIT keyword for a typedef kind.
func KindName(kind wit.TypeDefKind) string {
	switch kind.(type) {
	case *wit.Record:
		return "record"
	case *wit.Variant:
		return "variant"
	case *wit.Enum:
		return "enum"
	case *wit.Flags:
		return "flags"
	case *wit.Tuple:
		return "tuple"
	case *wit.List:
		return "list"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Own:
		return "own"
	case *wit.Borrow:
		return "borrow"
	case *wit.Resource:
		return "resource"
	case wit.Type:
		return "type"
	default:
		return "unknown"
	}
}
