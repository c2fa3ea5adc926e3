package diskio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReturnsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	data, err := Reader(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := Reader(context.Background(), filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
}

func TestReaderCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Reader(ctx, path)
	require.Error(t, err)
}
