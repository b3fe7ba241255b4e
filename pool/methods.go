package pool

import "github.com/joshuapare/poolkit/internal/layout"

// Addr is a word-aligned byte offset into a client-managed region.
type Addr = uint32

// ObjectFormat is the capability set a client supplies for one object
// layout. The collector invokes these operations on memory that conforms to
// the format's alignment and layout conventions; a descriptor built from an
// implementation whose operations disagree with each other (Skip with Pad,
// Move with IsMoved) will corrupt the heap, not merely misbehave.
type ObjectFormat interface {
	// Scan visits every reference field of every object in the half-open
	// range [base, limit), which is known to contain only objects of this
	// format. Each reference slot is passed through ss.Fix exactly once and
	// the possibly-updated value is stored back. A non-nil error aborts the
	// scan in progress and is propagated to the collector.
	Scan(ss *ScanState, region []byte, base, limit Addr) error

	// Skip returns the address of the object immediately following the
	// object at the given address, including any padding the object
	// contains. Skip must agree exactly with the true size the format
	// imposes; it is what makes a region linearly walkable.
	Skip(region []byte, at Addr) Addr

	// Move overwrites the object at old with a forwarding marker recording
	// its relocation to dst. Afterward IsMoved on old reports dst, and Skip
	// on old still advances by the object's original size.
	Move(region []byte, old, dst Addr)

	// IsMoved reports whether the object at the given address has been
	// forwarded by Move, and if so where to. It must be safe on objects
	// that have not been moved: ordinary object content is never
	// misread as a forwarding marker.
	IsMoved(region []byte, at Addr) (Addr, bool)

	// Copy copies the full content of the object at srcAt in src to dstAt
	// in dst, establishing a live object there. src and dst may be the
	// same region.
	Copy(src []byte, srcAt Addr, dst []byte, dstAt Addr)

	// Pad writes a self-describing filler object of exactly size bytes at
	// the given address, for any size that is a legal multiple of the
	// format's alignment, including the smallest. Skip applied to the
	// filler advances by exactly size, keeping the region walkable after
	// partial reclamation.
	Pad(region []byte, at Addr, size uint32)
}

// Classer is the optional class-extraction capability. VarietyB formats must
// implement it; VarietyA formats may omit it, in which case the class is the
// word at offset zero of the object.
type Classer interface {
	// Class returns the class identifier of the object at the given address.
	Class(region []byte, at Addr) uint32
}

// ClassFunc is the resolved class-extraction operation of a descriptor,
// either the client's Classer or the VarietyA default.
type ClassFunc func(region []byte, at Addr) uint32

// defaultClass is the VarietyA fallback: the class identifier is the word at
// offset zero of the object. This exact convention is part of the protocol.
func defaultClass(region []byte, at Addr) uint32 {
	return layout.ReadWord(region, int(at))
}

// FixFunc classifies or relocates one reference during a scan and returns
// the value the slot should hold afterward.
type FixFunc func(ref uint32) (uint32, error)

// ScanState is the per-scan abstraction the collector hands to Scan. It
// carries the fix operation applied to every reference slot and counts the
// slots visited, so a caller can assert that a scan neither skipped nor
// double-visited a reference.
type ScanState struct {
	fix   FixFunc
	fixed int
}

// NewScanState returns a scan state applying fix to each reference slot.
func NewScanState(fix FixFunc) *ScanState {
	if fix == nil {
		panic("pool: nil fix function")
	}
	return &ScanState{fix: fix}
}

// Fix passes one reference through the caller's fix operation.
// Implementations of Scan call this once per reference slot.
func (ss *ScanState) Fix(ref uint32) (uint32, error) {
	ss.fixed++
	return ss.fix(ref)
}

// Fixed returns the number of references visited so far.
func (ss *ScanState) Fixed() int {
	return ss.fixed
}
