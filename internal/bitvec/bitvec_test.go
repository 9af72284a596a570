package bitvec

import (
	"math"
	"testing"
)

func TestPushLoad(t *testing.T) {
	tests := []struct {
		name  string
		width int
		tags  []uint64
	}{
		{"width 1", 1, []uint64{1, 0, 1, 1, 0, 0, 1}},
		{"width 2", 2, []uint64{0, 1, 2, 3, 3, 2, 1, 0}},
		{"width 3 straddles words", 3, seq(100, 8)},
		{"width 7", 7, seq(40, 128)},
		{"width 63", 63, []uint64{math.MaxUint64 >> 1, 1, 0, 42}},
		{"width 64", 64, []uint64{math.MaxUint64, 0, 1 << 63, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.width)
			for _, tag := range tt.tags {
				v.Push(tag)
			}
			if v.Len() != len(tt.tags) {
				t.Fatalf("Len() = %d, want %d", v.Len(), len(tt.tags))
			}
			if v.BitLen() != len(tt.tags)*tt.width {
				t.Errorf("BitLen() = %d, want %d", v.BitLen(), len(tt.tags)*tt.width)
			}
			for i, want := range tt.tags {
				if got := v.Load(i); got != want {
					t.Errorf("Load(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func seq(n int, mod uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(i*7+3) % mod
	}
	return out
}

func TestPushMasksHighBits(t *testing.T) {
	v := New(2)
	v.Push(0b111)
	v.Push(0)
	if got := v.Load(0); got != 0b11 {
		t.Errorf("Load(0) = %b, want 11", got)
	}
	if got := v.Load(1); got != 0 {
		t.Errorf("neighbour slot clobbered: Load(1) = %b", got)
	}
}

func TestStore(t *testing.T) {
	v := New(5)
	for i := 0; i < 30; i++ {
		v.Push(uint64(i))
	}
	v.Store(12, 31)
	v.Store(13, 0)
	for i := 0; i < 30; i++ {
		want := uint64(i)
		switch i {
		case 12:
			want = 31
		case 13:
			want = 0
		}
		if got := v.Load(i); got != want {
			t.Errorf("Load(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestLoadOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Load past the end should panic")
		}
	}()
	v := New(3)
	v.Push(1)
	v.Load(1)
}

func TestNewInvalidWidth(t *testing.T) {
	for _, w := range []int{-1, 65} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) should panic", w)
				}
			}()
			New(w)
		}()
	}
}

func TestZeroWidth(t *testing.T) {
	v := New(0)
	for i := 0; i < 1000; i++ {
		v.Push(0)
	}
	if v.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", v.Len())
	}
	if v.BitLen() != 0 || v.BitCap() != 0 {
		t.Errorf("zero width consumed storage: BitLen=%d BitCap=%d", v.BitLen(), v.BitCap())
	}
	if v.Cap() != math.MaxInt {
		t.Errorf("Cap() = %d, want MaxInt", v.Cap())
	}
	if v.Load(999) != 0 {
		t.Error("zero width slot should read 0")
	}
	v.Truncate(10)
	if v.Len() != 10 {
		t.Errorf("Len() after Truncate = %d, want 10", v.Len())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		n       int
		to      int
		wantLen int
	}{
		{"shrink", 3, 50, 20, 20},
		{"to zero", 3, 50, 0, 0},
		{"negative", 3, 50, -4, 0},
		{"no-op at len", 3, 50, 50, 50},
		{"no-op past len", 3, 50, 500, 50},
		{"huge saturates", 3, 50, math.MaxInt, 50},
		{"word boundary", 16, 9, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.width)
			for i := 0; i < tt.n; i++ {
				v.Push(uint64(i))
			}
			capBefore := v.Cap()
			v.Truncate(tt.to)
			if v.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", v.Len(), tt.wantLen)
			}
			if v.BitLen() != tt.wantLen*tt.width {
				t.Errorf("BitLen() = %d, want %d", v.BitLen(), tt.wantLen*tt.width)
			}
			if v.Cap() != capBefore {
				t.Errorf("Cap() = %d, want %d", v.Cap(), capBefore)
			}
			mask := uint64(1)<<uint(tt.width) - 1
			for i := 0; i < v.Len(); i++ {
				if got := v.Load(i); got != uint64(i)&mask {
					t.Errorf("Load(%d) = %d, want %d", i, got, uint64(i)&mask)
				}
			}
		})
	}
}

func TestTruncateZeroesTail(t *testing.T) {
	a := New(4)
	b := New(4)
	for i := 0; i < 10; i++ {
		a.Push(15)
	}
	a.Truncate(3)
	for i := 0; i < 3; i++ {
		b.Push(15)
	}
	if !a.Equal(&b) {
		t.Errorf("truncated %v != fresh %v", a.Slots(), b.Slots())
	}
	// regrowing after a truncate must not resurrect old bits
	a.Push(0)
	if a.Load(3) != 0 {
		t.Errorf("Load(3) = %d, want 0", a.Load(3))
	}
}

func TestSaturatingMul(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 5, 0},
		{3, 7, 21},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, 2, math.MaxInt},
		{math.MaxInt / 2, 3, math.MaxInt},
		{1 << 40, 1 << 30, math.MaxInt},
	}
	for _, tt := range tests {
		if got := SaturatingMul(tt.a, tt.b); got != tt.want {
			t.Errorf("SaturatingMul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCapacity(t *testing.T) {
	v := WithCapacity(3, 100)
	if v.Cap() < 100 {
		t.Errorf("Cap() = %d, want >= 100", v.Cap())
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.Len())
	}

	v = New(5)
	if v.Cap() != 0 {
		t.Errorf("empty Cap() = %d, want 0", v.Cap())
	}
	v.Reserve(40)
	if v.Cap() < 40 {
		t.Errorf("Cap() after Reserve = %d, want >= 40", v.Cap())
	}
	before := v.BitCap()
	for i := 0; i < 40; i++ {
		v.Push(1)
	}
	if v.BitCap() != before {
		t.Errorf("reserved pushes reallocated: %d -> %d", before, v.BitCap())
	}
	v.Clear()
	if v.Len() != 0 || v.BitCap() != before {
		t.Errorf("Clear: Len=%d BitCap=%d, want 0 and %d", v.Len(), v.BitCap(), before)
	}
	v.Free()
	if v.BitCap() != 0 {
		t.Errorf("Free left BitCap=%d", v.BitCap())
	}
}

func TestAppendFrom(t *testing.T) {
	tests := []struct {
		name  string
		width int
		a, b  int
	}{
		{"aligned", 8, 8, 13},
		{"unaligned", 3, 11, 25},
		{"empty other", 3, 5, 0},
		{"empty self", 5, 0, 9},
		{"zero width", 0, 4, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := New(tt.width), New(tt.width)
			var want []uint64
			mask := uint64(1)<<uint(tt.width) - 1
			for i := 0; i < tt.a; i++ {
				a.Push(uint64(i))
				want = append(want, uint64(i)&mask)
			}
			for i := 0; i < tt.b; i++ {
				b.Push(uint64(i * 3))
				want = append(want, uint64(i*3)&mask)
			}
			a.AppendFrom(&b)
			if a.Len() != len(want) {
				t.Fatalf("Len() = %d, want %d", a.Len(), len(want))
			}
			for i, w := range want {
				if got := a.Load(i); got != w {
					t.Errorf("Load(%d) = %d, want %d", i, got, w)
				}
			}
		})
	}
}

func TestEqualClone(t *testing.T) {
	a := New(3)
	for i := 0; i < 20; i++ {
		a.Push(uint64(i))
	}
	c := a.Clone()
	if !a.Equal(&c) {
		t.Fatal("clone should equal original")
	}
	c.Store(0, 7)
	if a.Load(0) != 0 {
		t.Error("clone shares storage with original")
	}
	if a.Equal(&c) {
		t.Error("modified clone should differ")
	}
	other := New(4)
	if a.Equal(&other) {
		t.Error("different widths should differ")
	}
}

func TestSlots(t *testing.T) {
	v := New(2)
	for _, tag := range []uint64{0, 1, 2} {
		v.Push(tag)
	}
	got := v.Slots()
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Slots() = %v, want [0 1 2]", got)
	}
}
