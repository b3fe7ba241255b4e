package verify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/layout"
	"github.com/joshuapare/poolkit/pool"
	"github.com/joshuapare/poolkit/pool/vecfmt"
	"github.com/joshuapare/poolkit/pool/verify"
)

func newTestFormat(t *testing.T) *pool.Format {
	t.Helper()
	a := pool.NewArena(pool.ArenaOpts{})
	f, err := pool.NewFormat(a, vecfmt.ObjectAlign, pool.VarietyA, vecfmt.Layout{})
	require.NoError(t, err)
	t.Cleanup(func() {
		f.Destroy()
		a.Destroy()
	})
	return f
}

// TestWalkable_CleanRegion tests a region of objects, pads, and forwarded
// objects walking end to end.
func TestWalkable_CleanRegion(t *testing.T) {
	f := newTestFormat(t)
	region := make([]byte, 256)

	at := vecfmt.PutObject(region, 0, 0x01, []uint32{1, 2})
	f.Pad(region, at, 24)
	at += 24
	at = vecfmt.PutObject(region, at, 0x02, nil)
	limit := vecfmt.PutObject(region, at, 0x03, []uint32{3})
	f.Move(region, at, 0)

	require.NoError(t, verify.Walkable(f, region, 0, limit))
}

// TestWalkable_EmptyRegion tests the degenerate base == limit case.
func TestWalkable_EmptyRegion(t *testing.T) {
	f := newTestFormat(t)
	region := make([]byte, 64)
	require.NoError(t, verify.Walkable(f, region, 16, 16))
}

// TestWalkable_Violations tests detection of bounds, alignment, progress,
// and overlap failures, each identified by check name.
func TestWalkable_Violations(t *testing.T) {
	f := newTestFormat(t)

	t.Run("limit beyond region", func(t *testing.T) {
		region := make([]byte, 32)
		err := verify.Walkable(f, region, 0, 64)
		var re *verify.RegionError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "bounds", re.Check)
	})

	t.Run("base above limit", func(t *testing.T) {
		region := make([]byte, 64)
		err := verify.Walkable(f, region, 32, 16)
		var re *verify.RegionError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "bounds", re.Check)
	})

	t.Run("unaligned base", func(t *testing.T) {
		region := make([]byte, 64)
		err := verify.Walkable(f, region, 4, 32)
		var re *verify.RegionError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "alignment", re.Check)
	})

	t.Run("object past limit", func(t *testing.T) {
		region := make([]byte, 64)
		// A pad claiming more space than the walked range.
		f.Pad(region, 0, 32)
		err := verify.Walkable(f, region, 0, 16)
		var re *verify.RegionError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "overlap", re.Check)
		require.Equal(t, pool.Addr(0), re.Offset)
	})

	t.Run("gap mid-region", func(t *testing.T) {
		region := make([]byte, 64)
		at := vecfmt.PutObject(region, 0, 0x01, nil)
		// Zeroed tail: the next "object" decodes as a zero-slot object of
		// class zero, then walking lands past data that never parses to
		// exactly the limit.
		limit := at + 4
		err := verify.Walkable(f, region, 0, limit)
		var re *verify.RegionError
		require.ErrorAs(t, err, &re)
		require.Equal(t, "overlap", re.Check)
	})
}

// TestPadCoverage tests the pad/skip round trip for the minimum filler and a
// larger multiple, and rejection of illegal sizes.
func TestPadCoverage(t *testing.T) {
	f := newTestFormat(t)
	region := make([]byte, 256)

	require.NoError(t, verify.PadCoverage(f, region, 0, vecfmt.ObjectAlign))
	require.NoError(t, verify.PadCoverage(f, region, 64, 96))

	err := verify.PadCoverage(f, region, 0, vecfmt.ObjectAlign+layout.WordSize)
	var re *verify.RegionError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "alignment", re.Check)
}
