package resource

// Owned is an owning reference to a table entry. Copies share ownership:
// only the first Drop of any copy releases the entry.
//
// The zero Owned is invalid and its Drop does nothing.
type Owned[T any] struct {
	table  *Table[T]
	handle Handle
	gen    uint32
}

func (o Owned[T]) Handle() Handle { return o.handle }

// Valid reports whether the entry is still live.
func (o Owned[T]) Valid() bool {
	if o.table == nil {
		return false
	}
	gen, ok := o.table.store.generation(o.handle)
	return ok && gen == o.gen
}

// Get returns the owned value while the entry is live.
func (o Owned[T]) Get() (T, bool) {
	if !o.Valid() {
		var zero T
		return zero, false
	}
	return o.table.Get(o.handle)
}

// Drop releases the entry, running the value's Drop. Dropping an entry
// that is already gone is counted by Table.Stale.
func (o Owned[T]) Drop() {
	if o.table == nil {
		return
	}
	o.table.removeOwned(o.handle, o.gen)
}
