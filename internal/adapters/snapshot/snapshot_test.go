package snapshot_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/snapshot"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

func TestWriteRead_RestoresEngineState(t *testing.T) {
	// Arrange
	source := helpers.NewTestEngine(t, helpers.TradingPairProfiles(), economy.DefaultConfig())
	_, err := source.Advance(context.Background(), 250)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "runs", "economy.snap")

	// Act
	require.NoError(t, snapshot.Write(path, source.Snapshot()))
	snap, err := snapshot.Read(path)
	require.NoError(t, err)
	header, err := snapshot.ReadHeader(path)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, source.Snapshot(), snap)
	assert.Equal(t, snapshot.Version, header.Version)
	assert.Equal(t, shared.SimTime(250), header.At)
	assert.Equal(t, []string{"alpha", "beta"}, header.Settlements)

	target := helpers.NewTestEngine(t, helpers.TradingPairProfiles(), economy.DefaultConfig())
	require.NoError(t, target.Restore(snap))
	assert.Equal(t, source.Now(), target.Now())
}

func TestEncodeDecode_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, economy.Snapshot{}))

	header, snap, err := snapshot.Decode(&buf)

	require.NoError(t, err)
	assert.Empty(t, header.Settlements)
	assert.Empty(t, snap.Ledgers)
}

func TestDecode_RejectsNewerVersion(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"version":99,"at":0}` + "\n{}\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	_, _, err = snapshot.Decode(&buf)

	assert.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := snapshot.Read(filepath.Join(t.TempDir(), "missing.snap"))

	assert.Error(t, err)
}
