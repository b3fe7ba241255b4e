// Package vecfmt is a complete reference implementation of the object-format
// protocol for simple vector objects. It exists to exercise every format
// operation end to end and to serve as the fixture layout for tests, the
// walker, and the examples.
//
// # Object Layout
//
// Objects are sequences of little-endian words, aligned to 8 bytes:
//
//	+0  class word (must be below MarkerBase)
//	+4  slot count n
//	+8  n reference slots, one word each
//
// The total footprint is (2+n) words rounded up to the 8-byte alignment, so
// the smallest object occupies exactly two words.
//
// # Markers
//
// Word values at or above MarkerBase are reserved so pads and
// forwarding markers can never be confused with live object content:
//
//	pad      [PadMark, size]            any size that is a multiple of 8
//	forward  [FwdMark, new, size]       objects of 16 bytes or more
//	forward2 [Fwd2Mark, new]            the two-word minimum object
//
// The split forwarding encoding is forced by the minimum object: a two-word
// object has no room for an explicit size, so its marker implies one.
package vecfmt
