// Package pool implements the object-format protocol of a tracing, copying
// memory manager: the contract by which client code describes the layout of
// its garbage-collected objects so a collector can scan, relocate, and
// compact them without knowing the client's type system.
//
// # Overview
//
// The two central types are Arena and Format. An Arena owns the storage and
// identity of its format descriptors: it charges descriptor storage against
// a quota, issues strictly increasing serial numbers, and keeps a registry
// of every live format for enumeration. A Format is one immutable descriptor
// pairing an alignment and variety with the client's ObjectFormat
// implementation — the capability set the collector invokes to scan, skip,
// forward, copy, and pad objects of that layout.
//
// # Descriptor Lifecycle
//
//	a := pool.NewArena(pool.ArenaOpts{})
//	f, err := pool.NewFormat(a, 8, pool.VarietyA, myLayout)
//	if err != nil {
//	    // arena storage exhausted; recoverable
//	}
//	// ... collector uses f ...
//	f.Destroy()
//	a.Destroy()
//
// A format is validated at construction and can be re-validated at any time
// with Check or Valid. Destroy unlinks the format from its arena, invalidates
// its signature so later use is detected, and returns its storage. A format
// is never mutated between construction and destruction.
//
// # Error Model
//
// Resource exhaustion (the arena cannot supply descriptor storage) is an
// ordinary error: NewFormat returns ErrArenaFull and leaves nothing
// registered. Contract violations — wrong variety, a VarietyB format without
// class extraction, destroying twice, operating on a corrupted descriptor —
// are programmer errors and panic. A descriptor that fails Check must not be
// used; continuing risks heap corruption, not just misbehavior.
//
// # Concurrency
//
// The arena guards its registry, serial counter, and storage accounting with
// an internal mutex; construction and destruction may run on any goroutine.
// The single exception to "validate before use" is (*Format).Arena, which is
// documented to read only the write-once arena field so it stays safe under
// a concurrent Destroy.
package pool
