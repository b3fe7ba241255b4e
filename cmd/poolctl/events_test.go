package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/pool/telemetry"
)

// writeTestLog writes a small telemetry log and returns its path.
func writeTestLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.events")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	em := telemetry.NewEmitter(f)
	require.NoError(t, em.Emit(telemetry.Event{Kind: telemetry.KindArenaCreate, Time: 1, ArenaSerial: 3}))
	require.NoError(t, em.Emit(telemetry.Event{
		Kind: telemetry.KindFormatCreate, Time: 2, ArenaSerial: 3, Alignment: 8, Variety: 1,
	}))
	require.NoError(t, em.Emit(telemetry.Event{Kind: telemetry.KindArenaDestroy, Time: 3, ArenaSerial: 3}))
	return path
}

// TestRunEvents_Text tests decoding a valid log in text mode.
func TestRunEvents_Text(t *testing.T) {
	jsonOut = false
	require.NoError(t, runEvents(writeTestLog(t)))
}

// TestRunEvents_JSON tests decoding a valid log in JSON mode.
func TestRunEvents_JSON(t *testing.T) {
	jsonOut = true
	defer func() { jsonOut = false }()
	require.NoError(t, runEvents(writeTestLog(t)))
}

// TestRunEvents_MissingFile tests the open failure path.
func TestRunEvents_MissingFile(t *testing.T) {
	err := runEvents(filepath.Join(t.TempDir(), "absent.events"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open log")
}

// TestRunEvents_CorruptLog tests the decode failure path.
func TestRunEvents_CorruptLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.events")
	require.NoError(t, os.WriteFile(path, []byte{0xC1, 0xC1}, 0o644))

	err := runEvents(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode log")
}
