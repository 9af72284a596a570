package resource

import "testing"

func TestOwned_Drop(t *testing.T) {
	table := NewTable[*dropCounter]()
	d := &dropCounter{}

	o := table.Own(d)
	if !o.Valid() {
		t.Fatal("fresh Owned should be valid")
	}
	if v, ok := o.Get(); !ok || v != d {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	o.Drop()
	if d.count != 1 {
		t.Fatalf("Drop ran %d times, want 1", d.count)
	}
	if o.Valid() {
		t.Error("dropped Owned should be invalid")
	}
	if _, ok := o.Get(); ok {
		t.Error("Get after Drop should fail")
	}
}

func TestOwned_DoubleDropIsStale(t *testing.T) {
	table := NewTable[*dropCounter]()
	first := &dropCounter{}
	o := table.Own(first)
	o.Drop()

	// the freed slot is reused by a new entry
	second := &dropCounter{}
	o2 := table.Own(second)
	if o2.Handle() != o.Handle() {
		t.Fatalf("expected slot reuse: %d vs %d", o2.Handle(), o.Handle())
	}

	o.Drop()
	if second.count != 0 {
		t.Fatal("stale Drop released the entry that reused the slot")
	}
	if first.count != 1 {
		t.Errorf("first dropped %d times, want 1", first.count)
	}
	if table.Stale() != 1 {
		t.Errorf("Stale() = %d, want 1", table.Stale())
	}
	if !o2.Valid() {
		t.Error("reused entry should still be valid")
	}
}

func TestOwned_Zero(t *testing.T) {
	var o Owned[int]
	o.Drop()
	if o.Valid() {
		t.Error("zero Owned should be invalid")
	}
	if _, ok := o.Get(); ok {
		t.Error("zero Owned Get should fail")
	}
}

func TestOwned_DropAfterCloseIsNotStale(t *testing.T) {
	table := NewTable[*dropCounter]()
	v := &dropCounter{}
	o := table.Own(v)

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	o.Drop()
	o.Drop()

	if v.count != 1 {
		t.Errorf("value dropped %d times, want 1", v.count)
	}
	if table.Stale() != 0 {
		t.Errorf("Stale() = %d, want 0 after Close", table.Stale())
	}
	if o.Valid() {
		t.Error("Owned should be invalid after Close")
	}
}
