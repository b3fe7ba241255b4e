package verify

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/layout"
	"github.com/joshuapare/poolkit/pool"
)

// RegionError reports where and how a region violated a format invariant.
type RegionError struct {
	Check   string
	Offset  pool.Addr
	Message string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("verify: %s at offset 0x%X: %s", e.Check, e.Offset, e.Message)
}

// Walkable checks that [base, limit) is a well-formed run of objects under
// the format: every object start is aligned, every Skip makes forward
// progress without crossing limit, and the final Skip lands exactly on
// limit. Returns nil if the region walks clean.
func Walkable(f *pool.Format, region []byte, base, limit pool.Addr) error {
	align := f.Alignment()
	if limit > uint32(len(region)) {
		return &RegionError{
			Check:   "bounds",
			Offset:  limit,
			Message: fmt.Sprintf("limit beyond region of %d bytes", len(region)),
		}
	}
	if base > limit {
		return &RegionError{
			Check:   "bounds",
			Offset:  base,
			Message: fmt.Sprintf("base above limit 0x%X", limit),
		}
	}
	if !layout.IsAligned(base, align) {
		return &RegionError{
			Check:   "alignment",
			Offset:  base,
			Message: fmt.Sprintf("base not %d-byte aligned", align),
		}
	}
	for at := base; at < limit; {
		if !layout.IsAligned(at, align) {
			return &RegionError{
				Check:   "alignment",
				Offset:  at,
				Message: fmt.Sprintf("object start not %d-byte aligned", align),
			}
		}
		next := f.Skip(region, at)
		if next <= at {
			return &RegionError{
				Check:   "progress",
				Offset:  at,
				Message: fmt.Sprintf("skip did not advance (returned 0x%X)", next),
			}
		}
		if next > limit {
			return &RegionError{
				Check:   "overlap",
				Offset:  at,
				Message: fmt.Sprintf("object extends to 0x%X past limit 0x%X", next, limit),
			}
		}
		at = next
	}
	return nil
}

// PadCoverage checks the round trip the protocol promises of Pad and Skip:
// after padding size bytes at the address, Skip advances by exactly size.
// size must be a legal multiple of the format's alignment.
func PadCoverage(f *pool.Format, region []byte, at pool.Addr, size uint32) error {
	align := f.Alignment()
	if size == 0 || !layout.IsAligned(size, align) {
		return &RegionError{
			Check:   "alignment",
			Offset:  at,
			Message: fmt.Sprintf("pad size %d not a positive multiple of %d", size, align),
		}
	}
	f.Pad(region, at, size)
	if got := f.Skip(region, at); got != at+size {
		return &RegionError{
			Check:   "coverage",
			Offset:  at,
			Message: fmt.Sprintf("skip over pad returned 0x%X, want 0x%X", got, at+size),
		}
	}
	return nil
}
