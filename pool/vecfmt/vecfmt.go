package vecfmt

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/layout"
	"github.com/joshuapare/poolkit/pool"
)

const (
	// ObjectAlign is the alignment of every vecfmt object, pad, and marker.
	ObjectAlign = 2 * layout.WordSize

	// MinObjectSize is the footprint of a zero-slot object: class word plus
	// count word.
	MinObjectSize = 2 * layout.WordSize

	// MarkerBase is the lowest word value reserved for markers. Class words
	// must stay below it.
	MarkerBase = layout.MarkerBase

	// PadMark heads a pad: [PadMark, size].
	PadMark = MarkerBase + 1

	// FwdMark heads a forwarding marker with an explicit size:
	// [FwdMark, new, size]. Requires at least 16 bytes of old object.
	FwdMark = MarkerBase + 2

	// Fwd2Mark heads the forwarding marker for the two-word minimum object:
	// [Fwd2Mark, new], size implied as MinObjectSize.
	Fwd2Mark = MarkerBase + 3
)

// Layout implements the six required format operations for vector objects.
// Use it with pool.VarietyA; the default class extraction (word at offset
// zero) matches this layout exactly.
type Layout struct{}

// TaggedLayout additionally implements pool.Classer, for use with
// pool.VarietyB. Its class extraction follows the same first-word
// convention.
type TaggedLayout struct {
	Layout
}

var (
	_ pool.ObjectFormat = Layout{}
	_ pool.ObjectFormat = TaggedLayout{}
	_ pool.Classer      = TaggedLayout{}
)

// ObjectSize returns the aligned footprint of an object with n slots.
func ObjectSize(n int) uint32 {
	return layout.AlignUp(uint32(2+n)*layout.WordSize, ObjectAlign)
}

// PutObject writes an object at the given address and returns the address
// immediately after it. class must be below MarkerBase.
func PutObject(region []byte, at pool.Addr, class uint32, refs []uint32) pool.Addr {
	if class >= MarkerBase {
		panic(fmt.Sprintf("vecfmt: class 0x%08X collides with marker space", class))
	}
	layout.PutWord(region, int(at), class)
	layout.PutWord(region, int(at)+layout.WordSize, uint32(len(refs)))
	for i, ref := range refs {
		layout.PutWord(region, int(at)+(2+i)*layout.WordSize, ref)
	}
	return at + ObjectSize(len(refs))
}

// SlotCount returns the number of reference slots of the object at the
// given address. The object must not be a pad or forwarding marker.
func SlotCount(region []byte, at pool.Addr) int {
	return int(layout.ReadWord(region, int(at)+layout.WordSize))
}

// Slot returns the i'th reference slot of the object at the given address.
func Slot(region []byte, at pool.Addr, i int) uint32 {
	return layout.ReadWord(region, int(at)+(2+i)*layout.WordSize)
}

// Scan visits the reference slots of every live object in [base, limit).
// Pads and forwarded objects carry no references and are stepped over.
func (Layout) Scan(ss *pool.ScanState, region []byte, base, limit pool.Addr) error {
	for at := base; at < limit; {
		head := layout.ReadWord(region, int(at))
		size := sizeAt(region, at, head)
		if head < MarkerBase {
			n := SlotCount(region, at)
			for i := 0; i < n; i++ {
				off := int(at) + (2+i)*layout.WordSize
				fixed, err := ss.Fix(layout.ReadWord(region, off))
				if err != nil {
					return err
				}
				layout.PutWord(region, off, fixed)
			}
		}
		at += size
	}
	return nil
}

// Skip returns the address following the object, pad, or forwarding marker
// at the given address.
func (Layout) Skip(region []byte, at pool.Addr) pool.Addr {
	return at + sizeAt(region, at, layout.ReadWord(region, int(at)))
}

// Move overwrites the object at old with a forwarding marker to dst. The
// marker preserves the object's footprint, so Skip on the old address still
// advances correctly.
func (Layout) Move(region []byte, old, dst pool.Addr) {
	size := sizeAt(region, old, layout.ReadWord(region, int(old)))
	if size == MinObjectSize {
		layout.PutWord(region, int(old), Fwd2Mark)
		layout.PutWord(region, int(old)+layout.WordSize, dst)
		return
	}
	layout.PutWord(region, int(old), FwdMark)
	layout.PutWord(region, int(old)+layout.WordSize, dst)
	layout.PutWord(region, int(old)+2*layout.WordSize, size)
}

// IsMoved reports the forwarding address recorded by Move, if any. Live
// object content is never misread: class words are confined below
// MarkerBase.
func (Layout) IsMoved(region []byte, at pool.Addr) (pool.Addr, bool) {
	switch layout.ReadWord(region, int(at)) {
	case FwdMark, Fwd2Mark:
		return layout.ReadWord(region, int(at)+layout.WordSize), true
	default:
		return 0, false
	}
}

// Copy copies the full content of the object at srcAt to dstAt, which may
// live in a different region.
func (Layout) Copy(src []byte, srcAt pool.Addr, dst []byte, dstAt pool.Addr) {
	size := sizeAt(src, srcAt, layout.ReadWord(src, int(srcAt)))
	copy(dst[dstAt:dstAt+size], src[srcAt:srcAt+size])
}

// Pad writes a filler of exactly size bytes. size must be a positive
// multiple of ObjectAlign; the smallest legal pad is one aligned unit.
func (Layout) Pad(region []byte, at pool.Addr, size uint32) {
	if size < ObjectAlign || !layout.IsAligned(size, ObjectAlign) {
		panic(fmt.Sprintf("vecfmt: pad size %d not a positive multiple of %d", size, ObjectAlign))
	}
	layout.PutWord(region, int(at), PadMark)
	layout.PutWord(region, int(at)+layout.WordSize, size)
}

// Class returns the class word of the object at the given address.
func (TaggedLayout) Class(region []byte, at pool.Addr) uint32 {
	return layout.ReadWord(region, int(at))
}

// sizeAt computes the footprint of whatever sits at the address, marker or
// live object, given its already-read head word.
func sizeAt(region []byte, at pool.Addr, head uint32) uint32 {
	switch head {
	case PadMark:
		return layout.ReadWord(region, int(at)+layout.WordSize)
	case Fwd2Mark:
		return MinObjectSize
	case FwdMark:
		return layout.ReadWord(region, int(at)+2*layout.WordSize)
	default:
		return ObjectSize(int(layout.ReadWord(region, int(at)+layout.WordSize)))
	}
}
