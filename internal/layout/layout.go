// Package layout houses the low-level word and alignment conventions shared by
// the object-format protocol. Regions managed through the protocol are byte
// slices addressed by word-aligned offsets; all multi-byte values are stored
// little-endian.
package layout

import "encoding/binary"

const (
	// WordSize is the size in bytes of one protocol word. Object headers,
	// class words, and reference slots all occupy exactly one word.
	WordSize = 4

	// WordShift converts between byte offsets and word indexes.
	WordShift = 2

	// MarkerBase is the lowest word value reserved for protocol markers
	// (padding and forwarding). Client class words must stay below it so
	// ordinary object content can never be mistaken for a marker.
	MarkerBase = 0xFFFFFF00
)

// ReadWord reads the word at the given byte offset.
func ReadWord(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+WordSize])
}

// PutWord writes a word at the given byte offset.
func PutWord(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+WordSize], v)
}

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
func AlignUp(n, align uint32) uint32 {
	return (n + align - 1) &^ (align - 1)
}

// IsAligned reports whether n is a multiple of align.
// align must be a power of two.
func IsAligned(n, align uint32) bool {
	return n&(align-1) == 0
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
