// Package walker provides linear traversal of format-conforming regions.
//
// A walk steps object by object using the format's Skip operation, without
// reference-level scanning, so it is the cheap way to enumerate a region:
// counting objects, surveying forwarding state after a relocation pass, or
// feeding each object to a visitor. The region must satisfy the walkability
// contract (see pool/verify); the walker detects violations and stops
// rather than running off the region.
package walker

import (
	"errors"
	"fmt"

	"github.com/joshuapare/poolkit/pool"
)

// ErrStop may be returned by a visitor to end the walk early without error.
var ErrStop = errors.New("walker: stop")

// VisitFunc receives each object's address and footprint during a walk.
type VisitFunc func(at pool.Addr, size uint32) error

// Walk traverses [base, limit) under the format, invoking visit for every
// object, pad, and forwarding marker encountered. It returns the number of
// steps taken. A visitor returning ErrStop ends the walk cleanly; any other
// visitor error, or a region that fails to walk, is returned.
func Walk(f *pool.Format, region []byte, base, limit pool.Addr, visit VisitFunc) (int, error) {
	steps := 0
	for at := base; at < limit; {
		next := f.Skip(region, at)
		if next <= at || next > limit {
			return steps, fmt.Errorf("walker: region not walkable at 0x%X (skip to 0x%X)", at, next)
		}
		steps++
		if visit != nil {
			if err := visit(at, next-at); err != nil {
				if errors.Is(err, ErrStop) {
					return steps, nil
				}
				return steps, err
			}
		}
		at = next
	}
	return steps, nil
}

// Stats summarizes a surveyed region.
type Stats struct {
	// Objects is the total number of walk steps (live objects, pads, and
	// forwarding markers).
	Objects int

	// Forwarded counts objects whose IsMoved reported a relocation.
	Forwarded int

	// Bytes is the footprint walked, in bytes.
	Bytes uint32
}

// Survey walks the region and tallies forwarding state via IsMoved.
func Survey(f *pool.Format, region []byte, base, limit pool.Addr) (Stats, error) {
	var st Stats
	_, err := Walk(f, region, base, limit, func(at pool.Addr, size uint32) error {
		st.Objects++
		st.Bytes += size
		if _, moved := f.IsMoved(region, at); moved {
			st.Forwarded++
		}
		return nil
	})
	return st, err
}
