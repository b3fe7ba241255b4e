package pool

import (
	"fmt"
	"io"

	"github.com/joshuapare/poolkit/pool/telemetry"
)

const formatSig uint32 = 0x464D5441 // "FMTA"

// Format is one object-layout descriptor known to one arena. It is immutable
// once constructed; the only permitted mutation is Destroy.
type Format struct {
	sig uint32

	// arena is written exactly once, here at construction, and never again.
	// (*Format).Arena relies on that to stay safe without synchronization.
	arena *Arena

	serial    uint32
	alignment uint32
	variety   Variety
	methods   ObjectFormat
	class     ClassFunc
}

// NewFormat constructs a descriptor in the given arena.
//
// alignment must satisfy the arena's AlignValid predicate. impl supplies the
// six required operations; with VarietyB it must also implement Classer,
// while VarietyA falls back to reading the word at offset zero. The new
// descriptor is serial-stamped, validated, and linked into the arena's
// registry before it is returned.
//
// Storage exhaustion is the one recoverable failure: NewFormat returns
// ErrArenaFull and registers nothing. Malformed inputs — an unrecognized
// variety, a nil implementation, a VarietyB implementation without Classer,
// an alignment the arena rejects — are contract violations and panic.
func NewFormat(a *Arena, alignment uint32, variety Variety, impl ObjectFormat) (*Format, error) {
	if a == nil {
		panic("pool: NewFormat with nil arena")
	}
	if !variety.valid() {
		panic(fmt.Sprintf("pool: NewFormat with unrecognized variety %d", uint8(variety)))
	}
	if impl == nil {
		panic("pool: NewFormat with nil ObjectFormat")
	}
	if !a.AlignValid(alignment) {
		panic(fmt.Sprintf("pool: NewFormat with alignment %d rejected by arena", alignment))
	}
	class := resolveClass(variety, impl)

	f, err := a.createFormat(alignment, variety, impl, class)
	if err != nil {
		return nil, err
	}
	a.emit(telemetry.Event{
		Kind:         telemetry.KindFormatCreate,
		ArenaSerial:  a.serial,
		FormatSerial: f.serial,
		Alignment:    alignment,
		Variety:      uint8(variety),
	})
	return f, nil
}

// resolveClass picks the class-extraction operation for the descriptor.
func resolveClass(variety Variety, impl ObjectFormat) ClassFunc {
	if c, ok := impl.(Classer); ok {
		return c.Class
	}
	if variety != VarietyA {
		panic("pool: VarietyB format must implement Classer")
	}
	return defaultClass
}

func (a *Arena) createFormat(alignment uint32, variety Variety, impl ObjectFormat, class ClassFunc) (*Format, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkLocked(); err != nil {
		panic("pool: NewFormat in invalid arena: " + err.Error())
	}
	if err := a.allocLocked(FormatStorageSize); err != nil {
		return nil, err
	}

	f := &Format{
		sig:       formatSig,
		arena:     a,
		alignment: alignment,
		variety:   variety,
		methods:   impl,
		class:     class,
	}
	f.serial = a.formatSerial
	a.formatSerial++

	// Self-check before linking; a failure here (bad alignment, broken
	// counter) is a defect, not a runtime condition to report.
	if err := f.checkLocked(); err != nil {
		panic("pool: NewFormat produced invalid descriptor: " + err.Error())
	}

	a.formats[f.serial] = f
	return f, nil
}

// Destroy irrevocably retires the descriptor: unlinks it from the arena's
// registry, invalidates its signature so later use is detected, and returns
// its storage. The descriptor must currently pass Check; destroying twice or
// destroying a corrupted handle is a contract violation. No format operation
// is invoked during destruction.
func (f *Format) Destroy() {
	if err := f.Check(); err != nil {
		panic("pool: Destroy on invalid format: " + err.Error())
	}
	a := f.arena
	a.mu.Lock()
	delete(a.formats, f.serial)
	f.sig = sigInvalid
	a.freeLocked(FormatStorageSize)
	a.mu.Unlock()
	a.emit(telemetry.Event{
		Kind:         telemetry.KindFormatDestroy,
		ArenaSerial:  a.serial,
		FormatSerial: f.serial,
	})
}

// Arena returns the owning arena without validating the descriptor.
//
// This is the one operation that is safe to call concurrently with any other
// operation on the same descriptor, including Destroy. It reads only the
// arena field, which is written once at construction and never again, so the
// read needs no synchronization. It must never be extended to read anything
// else: validation dereferences state a concurrent destroyer mutates.
// Callers that need a validated descriptor must rule out concurrent
// destruction by their own discipline and use Check.
func (f *Format) Arena() *Arena {
	return f.arena
}

// Serial returns the descriptor's arena-issued serial number.
func (f *Format) Serial() uint32 {
	return f.serial
}

// Alignment returns the required object alignment of this format.
func (f *Format) Alignment() uint32 {
	return f.alignment
}

// Variety returns the descriptor's variety tag.
func (f *Format) Variety() Variety {
	return f.variety
}

// Methods returns the client's capability set.
func (f *Format) Methods() ObjectFormat {
	return f.methods
}

// Check validates the descriptor's structure. The checks run in a fixed
// order, short-circuiting on the first failure; the returned CheckError
// identifies which check failed. Check has no side effects and is safe to
// call repeatedly — an immediately repeated call yields the same result.
func (f *Format) Check() error {
	if f == nil {
		return formatCheckErr("signature", "nil format")
	}
	if f.sig != formatSig {
		return formatCheckErr("signature", "bad signature 0x%08X", f.sig)
	}
	a := f.arena
	a.mu.Lock()
	defer a.mu.Unlock()
	return f.checkLocked()
}

// Valid reports whether the descriptor passes Check.
func (f *Format) Valid() bool {
	return f.Check() == nil
}

// checkLocked runs the structural checks with the arena's mutex held.
func (f *Format) checkLocked() error {
	a := f.arena
	if f.sig != formatSig {
		return formatCheckErr("signature", "bad signature 0x%08X", f.sig)
	}
	if err := a.checkLocked(); err != nil {
		return formatCheckErr("arena", "owning arena invalid: %v", err)
	}
	if f.serial >= a.formatSerial {
		return formatCheckErr("serial", "serial %d not below arena counter %d", f.serial, a.formatSerial)
	}
	if !f.variety.valid() {
		return formatCheckErr("variety", "unrecognized variety %d", uint8(f.variety))
	}
	// Registry agreement mirrors a ring node's forward/back consistency: an
	// unlinked descriptor is consistent, a linked one must map back to
	// itself under its own serial.
	if reg, ok := a.formats[f.serial]; ok && reg != f {
		return formatCheckErr("registry", "serial %d registered to a different format", f.serial)
	}
	if !a.AlignValid(f.alignment) {
		return formatCheckErr("alignment", "alignment %d rejected by arena", f.alignment)
	}
	if f.methods == nil {
		return formatCheckErr("methods", "nil ObjectFormat")
	}
	if f.class == nil {
		return formatCheckErr("methods", "nil class operation")
	}
	return nil
}

// Scan invokes the format's scan operation over [base, limit).
func (f *Format) Scan(ss *ScanState, region []byte, base, limit Addr) error {
	return f.methods.Scan(ss, region, base, limit)
}

// Skip returns the address following the object at the given address.
func (f *Format) Skip(region []byte, at Addr) Addr {
	return f.methods.Skip(region, at)
}

// Move forwards the object at old to dst.
func (f *Format) Move(region []byte, old, dst Addr) {
	f.methods.Move(region, old, dst)
}

// IsMoved reports whether the object at the given address was forwarded.
func (f *Format) IsMoved(region []byte, at Addr) (Addr, bool) {
	return f.methods.IsMoved(region, at)
}

// Copy copies the object at srcAt in src to dstAt in dst.
func (f *Format) Copy(src []byte, srcAt Addr, dst []byte, dstAt Addr) {
	f.methods.Copy(src, srcAt, dst, dstAt)
}

// Pad writes a filler object of exactly size bytes at the given address.
func (f *Format) Pad(region []byte, at Addr, size uint32) {
	f.methods.Pad(region, at, size)
}

// Class returns the class identifier of the object at the given address,
// through the client's Classer or the VarietyA default.
func (f *Format) Class(region []byte, at Addr) uint32 {
	return f.class(region, at)
}

// classSource names where class extraction comes from, for diagnostics.
func (f *Format) classSource() string {
	if _, ok := f.methods.(Classer); ok {
		return "client"
	}
	return "default"
}

// Describe renders the descriptor's fields to w for diagnostics. A write
// failure of the sink is this operation's failure; descriptor state is
// never affected.
func (f *Format) Describe(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Format %p (%d) {\n", f, f.serial)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  arena %p (%d)\n", f.arena, f.arena.serial)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  alignment %d\n", f.alignment)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  variety %s\n", f.variety)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  methods %T\n", f.methods)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  class %s\n", f.classSource())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "} Format %p (%d)\n", f, f.serial)
	return err
}
