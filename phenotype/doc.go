// Package phenotype defines the adapter contract between a closed variant
// set and a peapod.Peapod.
//
// A variant set is any Go type T whose values take one of a fixed number of
// shapes, usually a sealed interface with one struct per case. An adapter
// turns a whole value into a (tag, payload) pair and back:
//
//	tag, payload := ph.Split(v)
//	v2 := ph.Reassemble(tag, payload)
//
// The payload type P is chosen by the adapter and must be able to hold the
// fields of any single case. The tag says which case is live; Reassemble
// trusts it without checking, so a payload must only ever be reassembled
// with the tag Split returned for it. Wrap an adapter with Checked while
// debugging to turn mismatches into panics.
//
// Adapters are usually assembled from a Descriptor and two closures:
//
//	var shapes = phenotype.MustDescriptor("shape", "circle", "rect", "empty")
//
//	var ph = phenotype.Funcs[Shape, shapeData]{
//		Descriptor:     shapes,
//		SplitFunc:      splitShape,
//		ReassembleFunc: reassembleShape,
//	}
//
// FromWIT derives a Descriptor and a layout comparison from a WIT variant,
// enum, option or result definition.
package phenotype
