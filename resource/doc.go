// Package resource provides a handle table for values owned by variant
// payloads.
//
// A payload union is plain data, so a case that owns something (a file, a
// buffer, a connection) stores a handle instead and the table keeps the
// value. Dropping the reassembled variant releases the handle, which runs
// the value's Drop exactly once.
//
// # Handle Table
//
//	table := resource.NewTable[*os.File]()
//
//	// Insert a value, get a handle
//	h := table.Insert(f)
//
//	// Retrieve value by handle
//	f, ok := table.Get(h)
//
//	// Remove and drop
//	f, ok = table.Remove(h)
//
// # Owned Handles
//
// Own returns an Owned, a (table, handle, generation) triple that
// implements Drop. Embed it in a variant and the container's destruction
// protocol releases the entry:
//
//	type Open struct{ file resource.Owned[*os.File] }
//
//	func (o Open) Drop() { o.file.Drop() }
//
// Handles are recycled through a free list. The generation makes a second
// Drop of the same Owned a counted no-op instead of releasing whatever
// reused the slot; Stale reports how often that happened.
//
// # Observers
//
// Subscribe an Observer to watch creation and drop events. Tally is a
// ready-made observer that counts them.
//
// # Thread Safety
//
// Table is safe for concurrent use.
package resource
