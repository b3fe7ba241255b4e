package pool

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joshuapare/poolkit/internal/layout"
	"github.com/joshuapare/poolkit/pool/telemetry"
)

const (
	arenaSig   uint32 = 0x41524E41 // "ARNA"
	sigInvalid uint32 = 0x494E564C // "INVL"

	// DefaultStorageLimit is the descriptor storage quota used when
	// ArenaOpts.StorageLimit is zero.
	DefaultStorageLimit int64 = 1 << 20

	// FormatStorageSize is the storage charged to the arena per descriptor.
	FormatStorageSize int64 = 64
)

// arenaSerials issues process-wide arena serial numbers. It only increases.
var arenaSerials atomic.Uint32

// ArenaOpts configures a new arena.
type ArenaOpts struct {
	// StorageLimit caps descriptor storage in bytes. Zero means
	// DefaultStorageLimit.
	StorageLimit int64

	// Telemetry, when non-nil, receives arena and format lifecycle events.
	// Emission failures never affect protocol state; check Emitter.Err.
	Telemetry *telemetry.Emitter
}

// Arena owns the storage and identity of its format descriptors: a storage
// quota, a serial counter that only increases, and the registry of live
// formats. All mutation of that state happens under the arena's mutex.
type Arena struct {
	mu  sync.Mutex
	sig uint32

	// serial identifies this arena; assigned from a process-wide counter.
	serial uint32

	limit int64
	inUse int64

	// formatSerial is the next serial to issue. Every live format's serial
	// is strictly below it; serials are never reused.
	formatSerial uint32

	// formats is the registry of live descriptors keyed by serial. Replaces
	// an intrusive membership ring: link and unlink are O(1) and Formats
	// reconstructs insertion order from the serials.
	formats map[uint32]*Format

	tel *telemetry.Emitter
}

// NewArena creates an arena with the given options.
func NewArena(opts ArenaOpts) *Arena {
	limit := opts.StorageLimit
	if limit == 0 {
		limit = DefaultStorageLimit
	}
	if limit < 0 {
		panic("pool: negative arena storage limit")
	}
	a := &Arena{
		sig:     arenaSig,
		serial:  arenaSerials.Add(1) - 1,
		limit:   limit,
		formats: make(map[uint32]*Format),
		tel:     opts.Telemetry,
	}
	a.emit(telemetry.Event{Kind: telemetry.KindArenaCreate, ArenaSerial: a.serial})
	return a
}

// Destroy retires the arena. Destroying an arena that still has live formats
// is a contract violation, as is destroying one that fails its own check.
func (a *Arena) Destroy() {
	if err := a.Check(); err != nil {
		panic("pool: Destroy on invalid arena: " + err.Error())
	}
	a.mu.Lock()
	if n := len(a.formats); n != 0 {
		a.mu.Unlock()
		panic("pool: arena destroyed with live formats")
	}
	a.sig = sigInvalid
	a.mu.Unlock()
	a.emit(telemetry.Event{Kind: telemetry.KindArenaDestroy, ArenaSerial: a.serial})
}

// Serial returns the arena's process-wide serial number.
func (a *Arena) Serial() uint32 {
	return a.serial
}

// FormatSerial returns the serial the next format construction will receive.
func (a *Arena) FormatSerial() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.formatSerial
}

// Formats enumerates the live formats in construction order.
func (a *Arena) Formats() []*Format {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Format, 0, len(a.formats))
	for _, f := range a.formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].serial < out[j].serial })
	return out
}

// StorageInUse returns the descriptor storage currently charged, in bytes.
func (a *Arena) StorageInUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

// StorageLimit returns the arena's descriptor storage quota in bytes.
func (a *Arena) StorageLimit() int64 {
	return a.limit
}

// AlignValid reports whether align is usable as a format alignment for this
// arena: a power of two no smaller than the word granularity.
func (a *Arena) AlignValid(align uint32) bool {
	return layout.IsPow2(align) && align >= layout.WordSize
}

// Check validates the arena's own structure. It has no side effects and is
// safe to call repeatedly.
func (a *Arena) Check() error {
	if a == nil {
		return arenaCheckErr("signature", "nil arena")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkLocked()
}

// Valid reports whether the arena passes Check.
func (a *Arena) Valid() bool {
	return a.Check() == nil
}

func (a *Arena) checkLocked() error {
	if a.sig != arenaSig {
		return arenaCheckErr("signature", "bad signature 0x%08X", a.sig)
	}
	if a.serial >= arenaSerials.Load() {
		return arenaCheckErr("serial", "serial %d not below issued count %d", a.serial, arenaSerials.Load())
	}
	if a.formats == nil {
		return arenaCheckErr("registry", "nil format registry")
	}
	if a.inUse < 0 || a.inUse > a.limit {
		return arenaCheckErr("registry", "storage accounting out of range: %d of %d", a.inUse, a.limit)
	}
	return nil
}

// allocLocked charges n bytes of descriptor storage against the quota.
func (a *Arena) allocLocked(n int64) error {
	if a.inUse+n > a.limit {
		return ErrArenaFull
	}
	a.inUse += n
	return nil
}

// freeLocked returns n bytes of descriptor storage to the quota.
func (a *Arena) freeLocked(n int64) {
	a.inUse -= n
}

// emit sends a telemetry event, stamping the time. Telemetry failures are
// isolated in the emitter; the arena never acts on them.
func (a *Arena) emit(ev telemetry.Event) {
	if a.tel == nil {
		return
	}
	ev.Time = time.Now().UnixNano()
	_ = a.tel.Emit(ev)
}
