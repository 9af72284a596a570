// Package peapod provides a compact growable container for values of a
// closed variant set (a tagged union).
//
// A []T of a sealed interface spends an interface header per element and a
// heap object per case value. A Peapod instead splits each value into a tag
// and a payload: tags live in a bit stream at ceil(log2(cases)) bits each,
// payloads in a plain []P sized for the widest case.
//
// # Architecture Overview
//
//	peapod/              Container, consuming iterator, conversions
//	├── phenotype/       Adapter contract, descriptors, WIT layout analysis
//	├── resource/        Handle table for resources owned by variants
//	├── errors/          Structured error types
//	├── internal/bitvec  Bit-packed tag stream
//	└── cmd/peapod-layout  Layout inspector for WIT packages
//
// # Quick Start
//
// Describe the variant set and how to split it:
//
//	type Shape interface{ isShape() }
//	type Circle struct{ R float64 }
//	type Rect struct{ W, H float64 }
//
//	type shapeData struct{ a, b float64 }
//
//	var shapes = phenotype.Funcs[Shape, shapeData]{
//		Descriptor: phenotype.MustDescriptor("shape", "circle", "rect"),
//		SplitFunc: func(v Shape) (uint64, shapeData) {
//			switch s := v.(type) {
//			case Circle:
//				return 0, shapeData{a: s.R}
//			default:
//				r := s.(Rect)
//				return 1, shapeData{a: r.W, b: r.H}
//			}
//		},
//		ReassembleFunc: func(tag uint64, d shapeData) Shape {
//			if tag == 0 {
//				return Circle{R: d.a}
//			}
//			return Rect{W: d.a, H: d.b}
//		},
//	}
//
// Then use the container:
//
//	pod := peapod.New[Shape, shapeData](shapes)
//	pod.Push(Circle{R: 1})
//	pod.Push(Rect{W: 2, H: 3})
//
//	last, _ := pod.Pop() // Rect{W: 2, H: 3}
//	fmt.Println(pod)     // [ { tag: 0, data: .. }, ]
//
// # Ownership
//
// Push moves a value in; Pop and the iterators move it back out. A value
// that leaves the container any other way (Truncate, Clear, Release,
// IntoIter.Close, an abandoned Drain loop) is reassembled and released
// exactly once: through the adapter if it implements phenotype.Releaser,
// otherwise through the value's own Drop method if it has one.
//
// A payload must only be reassembled with the tag its Split produced. The
// container upholds that on its own; adapters are not asked to check it.
//
// # Thread Safety
//
// A Peapod is not safe for concurrent use. Guard it externally.
package peapod
