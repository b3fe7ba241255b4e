package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWordRoundTrip tests little-endian word storage.
func TestWordRoundTrip(t *testing.T) {
	b := make([]byte, 16)
	PutWord(b, 4, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadWord(b, 4))
	require.Equal(t, byte(0xEF), b[4], "words are little-endian")
}

// TestAlignUp tests rounding to power-of-two boundaries.
func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, want uint32
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{17, 16, 32},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AlignUp(c.n, c.align), "AlignUp(%d, %d)", c.n, c.align)
	}
}

// TestIsAligned tests the alignment predicate.
func TestIsAligned(t *testing.T) {
	require.True(t, IsAligned(0, 8))
	require.True(t, IsAligned(16, 8))
	require.False(t, IsAligned(12, 8))
}

// TestIsPow2 tests the power-of-two predicate.
func TestIsPow2(t *testing.T) {
	require.True(t, IsPow2(1))
	require.True(t, IsPow2(4096))
	require.False(t, IsPow2(0))
	require.False(t, IsPow2(12))
}
