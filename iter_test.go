package peapod

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourValues() (*Peapod[test, testData], []test) {
	vs := []test{positional{1, 1}, named{X: 2, Y: 2}, unit{}, positional{4, 4}}
	return FromSlice(testPhenotype(), vs), vs
}

func TestIntoIterTakesStreams(t *testing.T) {
	p, _ := fourValues()
	it := p.IntoIter()
	defer it.Close()

	assert.Equal(t, 4, it.Len())
	assert.True(t, p.IsEmpty())
	assert.Equal(t, 0, p.Cap())

	p.Push(unit{})
	assert.Equal(t, 1, p.Len(), "donor is reusable")
	assert.Equal(t, 4, it.Len())
}

func TestDoubleEnded(t *testing.T) {
	p, vs := fourValues()
	it := p.IntoIter()

	var got []test
	for i := 0; i < 2; i++ {
		v, ok := it.Next()
		require.True(t, ok)
		got = append(got, v)
		v, ok = it.NextBack()
		require.True(t, ok)
		got = append(got, v)
	}

	assert.Equal(t, []test{vs[0], vs[3], vs[1], vs[2]}, got)
	assert.Equal(t, 0, it.Len())
	_, ok := it.Next()
	assert.False(t, ok)
	_, ok = it.NextBack()
	assert.False(t, ok)
}

func TestExactSize(t *testing.T) {
	ph := testPhenotype()
	f := func(n uint8, dirs []bool) bool {
		vs := make([]test, int(n))
		for i := range vs {
			vs[i] = named{X: int32(i)}
		}
		it := FromSlice(ph, vs).IntoIter()
		defer it.Close()

		lo, hi := 0, len(vs)
		for _, back := range dirs {
			if it.Len() != hi-lo {
				return false
			}
			had := lo < hi
			var (
				v  test
				ok bool
			)
			if back {
				v, ok = it.NextBack()
				if ok && v != vs[hi-1] {
					return false
				}
				if ok {
					hi--
				}
			} else {
				v, ok = it.Next()
				if ok && v != vs[lo] {
					return false
				}
				if ok {
					lo++
				}
			}
			if ok != had {
				return false
			}
		}
		return it.Len() == hi-lo
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestIterSeqs(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		p, vs := fourValues()
		it := p.IntoIter()
		var got []test
		for v := range it.All() {
			got = append(got, v)
		}
		assert.Equal(t, vs, got)
		assert.Equal(t, 0, it.Len())
	})

	t.Run("backward", func(t *testing.T) {
		p, vs := fourValues()
		it := p.IntoIter()
		var got []test
		for v := range it.Backward() {
			got = append(got, v)
		}
		assert.Equal(t, []test{vs[3], vs[2], vs[1], vs[0]}, got)
	})

	t.Run("break keeps the rest", func(t *testing.T) {
		p, vs := fourValues()
		it := p.IntoIter()
		defer it.Close()
		for v := range it.All() {
			assert.Equal(t, vs[0], v)
			break
		}
		assert.Equal(t, 3, it.Len())
		v, ok := it.NextBack()
		require.True(t, ok)
		assert.Equal(t, vs[3], v)
	})
}

func TestIterZeroesProducedSlots(t *testing.T) {
	table, _ := fileFixture()
	it := openFiles(table, 3).IntoIter()
	defer it.Close()

	v, _ := it.Next()
	v.(open).Drop()
	v, _ = it.NextBack()
	assert.Equal(t, closed{}, v)
	v, _ = it.NextBack()
	v.(open).Drop()

	assert.Equal(t, fileData{}, it.data[0])
	assert.Equal(t, fileData{}, it.data[:3][2])
	assert.Equal(t, 1, it.Len())
}

func TestCloseIdempotent(t *testing.T) {
	p, _ := fourValues()
	it := p.IntoIter()
	it.Close()
	assert.Equal(t, 0, it.Len())
	assert.NotPanics(t, it.Close)
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestDrain(t *testing.T) {
	p, vs := fourValues()
	var got []test
	for v := range p.Drain() {
		got = append(got, v)
	}
	assert.Equal(t, vs, got)
	assert.True(t, p.IsEmpty())
}
