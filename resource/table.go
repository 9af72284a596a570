package resource

import (
	"sync"
	"sync/atomic"
)

// Table maps handles to values of type T and runs their Drop on removal.
type Table[T any] struct {
	store     *store[T]
	observers []Observer
	obsMu     sync.RWMutex
	stale     atomic.Int64
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		store: newStore[T](),
	}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *Table[T]) Insert(value T) Handle {
	handle, _, err := t.store.create(value)
	if err != nil {
		return 0
	}
	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Value:  value,
	})
	return handle
}

// Own inserts value and returns an owning reference to it. On a closed
// table the reference is invalid and dropping it is a no-op.
func (t *Table[T]) Own(value T) Owned[T] {
	handle, gen, err := t.store.create(value)
	if err != nil {
		return Owned[T]{}
	}
	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Value:  value,
	})
	return Owned[T]{table: t, handle: handle, gen: gen}
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	return t.store.get(handle)
}

// Remove drops a value and returns (value, true) if the handle was live.
func (t *Table[T]) Remove(handle Handle) (T, bool) {
	value, ok := t.store.drop(handle, 0, true)
	if ok {
		t.dropped(handle, value)
	}
	return value, ok
}

func (t *Table[T]) removeOwned(handle Handle, gen uint32) bool {
	value, ok := t.store.drop(handle, gen, false)
	if !ok {
		// Close already dropped every live entry.
		if !t.store.isClosed() {
			t.stale.Add(1)
		}
		return false
	}
	t.dropped(handle, value)
	return true
}

func (t *Table[T]) dropped(handle Handle, value T) {
	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Value:  value,
	})
}

// Stale returns how many times an Owned was dropped after its entry was
// already gone. Drops after Close are not counted.
func (t *Table[T]) Stale() int {
	return int(t.stale.Load())
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[T]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return t.store.count()
}

// Each calls fn for every live value in handle order until fn returns
// false. fn must not modify the table.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.store.each(fn)
}

// Clear drops all values.
func (t *Table[T]) Clear() {
	// Collect handles first to avoid holding the lock during Remove
	var handles []Handle
	t.store.each(func(h Handle, _ T) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops all values and stops accepting inserts.
func (t *Table[T]) Close() error {
	handles, values := t.store.close()
	for i, v := range values {
		t.dropped(handles[i], v)
	}
	return nil
}

func (t *Table[T]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

// Tally is an Observer that counts events. It is safe for concurrent use.
type Tally struct {
	created atomic.Int64
	dropped atomic.Int64
}

func (c *Tally) OnResourceEvent(e Event) {
	switch e.Type {
	case EventCreated:
		c.created.Add(1)
	case EventDropped:
		c.dropped.Add(1)
	}
}

func (c *Tally) Created() int { return int(c.created.Load()) }

func (c *Tally) Dropped() int { return int(c.dropped.Load()) }

// Live is Created minus Dropped.
func (c *Tally) Live() int { return c.Created() - c.Dropped() }
