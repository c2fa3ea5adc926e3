package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeResolvesRelativePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, target)
	require.NoError(t, err)
	require.False(t, filepath.IsAbs(rel))

	abs, err := Canonicalize(rel)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestCanonicalizeFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.png")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	link := filepath.Join(dir, "link.png")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	resolved, err := Canonicalize(link)
	require.NoError(t, err)
	targetResolved, err := Canonicalize(target)
	require.NoError(t, err)
	assert.Equal(t, targetResolved, resolved)
}
