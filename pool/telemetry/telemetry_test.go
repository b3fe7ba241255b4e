package telemetry_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/pool"
	"github.com/joshuapare/poolkit/pool/telemetry"
)

// stubLayout is a minimal format implementation for lifecycle events.
type stubLayout struct{}

func (stubLayout) Scan(ss *pool.ScanState, region []byte, base, limit pool.Addr) error { return nil }
func (stubLayout) Skip(region []byte, at pool.Addr) pool.Addr                          { return at + 8 }
func (stubLayout) Move(region []byte, old, dst pool.Addr)                              {}
func (stubLayout) IsMoved(region []byte, at pool.Addr) (pool.Addr, bool)               { return 0, false }
func (stubLayout) Copy(src []byte, srcAt pool.Addr, dst []byte, dstAt pool.Addr)       {}
func (stubLayout) Pad(region []byte, at pool.Addr, size uint32)                        {}

// TestEmitReadRoundTrip tests that emitted events decode back unchanged and
// in order.
func TestEmitReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	em := telemetry.NewEmitter(&buf)

	in := []telemetry.Event{
		{Kind: telemetry.KindArenaCreate, Time: 100, ArenaSerial: 7},
		{Kind: telemetry.KindFormatCreate, Time: 200, ArenaSerial: 7, FormatSerial: 0, Alignment: 8, Variety: 1},
		{Kind: telemetry.KindFormatDestroy, Time: 300, ArenaSerial: 7, FormatSerial: 0},
		{Kind: telemetry.KindArenaDestroy, Time: 400, ArenaSerial: 7},
	}
	for _, ev := range in {
		require.NoError(t, em.Emit(ev))
	}
	require.NoError(t, em.Err())

	out, err := telemetry.ReadAll(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// TestReader_EOF tests clean stream exhaustion.
func TestReader_EOF(t *testing.T) {
	r := telemetry.NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}

// TestReader_Corrupt tests that undecodable input surfaces ErrCorruptStream.
func TestReader_Corrupt(t *testing.T) {
	r := telemetry.NewReader(bytes.NewReader([]byte{0xC1, 0x00, 0x01}))
	_, err := r.Next()
	require.ErrorIs(t, err, telemetry.ErrCorruptStream)
}

// TestEmitter_DeadAfterFailure tests that the first write failure sticks.
func TestEmitter_DeadAfterFailure(t *testing.T) {
	sinkErr := errors.New("sink failed")
	em := telemetry.NewEmitter(failingWriter{err: sinkErr})

	require.ErrorIs(t, em.Emit(telemetry.Event{Kind: telemetry.KindArenaCreate}), sinkErr)
	require.ErrorIs(t, em.Emit(telemetry.Event{Kind: telemetry.KindArenaDestroy}), sinkErr)
	require.ErrorIs(t, em.Err(), sinkErr)
}

// TestArenaLifecycleEvents tests the arena-integrated stream: the full
// create/destroy history comes back with matching serials and parameters.
func TestArenaLifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	em := telemetry.NewEmitter(&buf)

	a := pool.NewArena(pool.ArenaOpts{Telemetry: em})
	f, err := pool.NewFormat(a, 8, pool.VarietyA, stubLayout{})
	require.NoError(t, err)
	serial := f.Serial()
	f.Destroy()
	a.Destroy()
	require.NoError(t, em.Err())

	events, err := telemetry.ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, events, 4)

	require.Equal(t, telemetry.KindArenaCreate, events[0].Kind)
	require.Equal(t, telemetry.KindFormatCreate, events[1].Kind)
	require.Equal(t, telemetry.KindFormatDestroy, events[2].Kind)
	require.Equal(t, telemetry.KindArenaDestroy, events[3].Kind)

	require.Equal(t, a.Serial(), events[0].ArenaSerial)
	require.Equal(t, serial, events[1].FormatSerial)
	require.Equal(t, uint32(8), events[1].Alignment)
	require.Equal(t, uint8(pool.VarietyA), events[1].Variety)
	require.Equal(t, serial, events[2].FormatSerial)

	for _, ev := range events {
		require.NotZero(t, ev.Time, "events should be time-stamped")
	}
}

// TestKindString tests kind names and the unknown fallback.
func TestKindString(t *testing.T) {
	require.Equal(t, "FormatCreate", telemetry.KindFormatCreate.String())
	require.Equal(t, "Kind(99)", telemetry.Kind(99).String())
}

// failingWriter rejects every write.
type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
