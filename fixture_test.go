package peapod

import (
	"github.com/wippyai/peapod/phenotype"
	"github.com/wippyai/peapod/resource"
)

// test is the three-case set used throughout: two positional fields, two
// named fields and no fields.
type test interface{ isTest() }

type positional [2]int32

type named struct{ X, Y int32 }

type unit struct{}

func (positional) isTest() {}
func (named) isTest()      {}
func (unit) isTest()       {}

type testData struct{ a, b int32 }

var testSet = phenotype.MustDescriptor("test", "positional", "named", "unit")

func testPhenotype() phenotype.Phenotype[test, testData] {
	return phenotype.Funcs[test, testData]{
		Descriptor: testSet,
		SplitFunc: func(v test) (uint64, testData) {
			switch t := v.(type) {
			case positional:
				return 0, testData{a: t[0], b: t[1]}
			case named:
				return 1, testData{a: t.X, b: t.Y}
			default:
				return 2, testData{}
			}
		},
		ReassembleFunc: func(tag uint64, d testData) test {
			switch tag {
			case 0:
				return positional{d.a, d.b}
			case 1:
				return named{X: d.a, Y: d.b}
			default:
				return unit{}
			}
		},
	}
}

// file owns a table entry; closed owns nothing.
type file interface{ isFile() }

type open struct{ h resource.Owned[string] }

type closed struct{}

func (open) isFile()   {}
func (closed) isFile() {}

func (o open) Drop() { o.h.Drop() }

type fileData struct{ h resource.Owned[string] }

func filePhenotype() phenotype.Phenotype[file, fileData] {
	return phenotype.Funcs[file, fileData]{
		Descriptor: phenotype.MustDescriptor("file", "open", "closed"),
		SplitFunc: func(v file) (uint64, fileData) {
			if o, ok := v.(open); ok {
				return 0, fileData{h: o.h}
			}
			return 1, fileData{}
		},
		ReassembleFunc: func(tag uint64, d fileData) file {
			if tag == 0 {
				return open{h: d.h}
			}
			return closed{}
		},
	}
}

// fileFixture returns an empty table with a tally subscribed.
func fileFixture() (*resource.Table[string], *resource.Tally) {
	table := resource.NewTable[string]()
	tally := &resource.Tally{}
	table.Subscribe(tally)
	return table, tally
}

// openFiles pushes n open files followed by one closed file.
func openFiles(table *resource.Table[string], n int) *Peapod[file, fileData] {
	p := New(filePhenotype())
	for i := 0; i < n; i++ {
		p.Push(open{h: table.Own("f")})
	}
	p.Push(closed{})
	return p
}

// single is a set with exactly one case.
type single struct{ n int }

func singlePhenotype() phenotype.Phenotype[single, int] {
	d, err := phenotype.Count("single", 1)
	if err != nil {
		panic(err)
	}
	return phenotype.Funcs[single, int]{
		Descriptor:     d,
		SplitFunc:      func(v single) (uint64, int) { return 0, v.n },
		ReassembleFunc: func(_ uint64, n int) single { return single{n: n} },
	}
}
