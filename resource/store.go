package resource

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("resource table closed")

// store is the in-memory slot array behind a Table. Freed handles are
// reused last-in first-out; each reuse bumps the slot generation.
type store[T any] struct {
	entries  []entry[T]
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry[T any] struct {
	value T
	gen   uint32
	valid bool
}

func newStore[T any]() *store[T] {
	return &store[T]{
		entries:  make([]entry[T], 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *store[T]) create(value T) (Handle, uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, 0, ErrClosed
	}

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		e := &s.entries[handle-1]
		e.value = value
		e.valid = true
		return handle, e.gen, nil
	}

	s.entries = append(s.entries, entry[T]{value: value, valid: true})
	return Handle(len(s.entries)), 0, nil
}

// lookup returns the live entry for handle. Callers hold mu.
func (s *store[T]) lookup(handle Handle) *entry[T] {
	if handle == 0 || int(handle) > len(s.entries) {
		return nil
	}
	e := &s.entries[handle-1]
	if !e.valid {
		return nil
	}
	return e
}

func (s *store[T]) get(handle Handle) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e := s.lookup(handle); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

func (s *store[T]) generation(handle Handle) (uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e := s.lookup(handle); e != nil {
		return e.gen, true
	}
	return 0, false
}

// drop frees handle if it is live and, when anyGen is false, still in
// generation gen. The caller runs the destructor.
func (s *store[T]) drop(handle Handle, gen uint32, anyGen bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e := s.lookup(handle)
	if e == nil || (!anyGen && e.gen != gen) {
		return zero, false
	}

	value := e.value
	e.value = zero
	e.valid = false
	e.gen++
	s.freeList = append(s.freeList, handle)
	return value, true
}

func (s *store[T]) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// close marks the store closed and hands back every live entry.
func (s *store[T]) close() ([]Handle, []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil
	}
	s.closed = true

	var (
		handles []Handle
		values  []T
	)
	for i := range s.entries {
		if s.entries[i].valid {
			handles = append(handles, Handle(i+1))
			values = append(values, s.entries[i].value)
		}
	}
	s.entries = nil
	s.freeList = nil
	return handles, values
}

func (s *store[T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) - len(s.freeList)
}

func (s *store[T]) each(fn func(Handle, T) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(Handle(i+1), e.value) {
				break
			}
		}
	}
}
