package connectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "b.CSV"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "hi")
	writeFile(t, filepath.Join(dir, "sub", "c.csv"), "x\n1\n")

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	require.NoError(t, err)
	assert.Len(t, files, 2, "non-recursive scan skips subdirectories")

	files, err = DiscoverFiles(dir, "csv", DiscoveryOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverFilesSizeFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.csv"), "x\n")
	writeFile(t, filepath.Join(dir, "big.csv"), "x\n1\n2\n3\n4\n5\n6\n7\n8\n9\n")

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{MinSize: 10})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "big.csv", filepath.Base(files[0].Path))
}

func TestDiscoverFilesEmptyResult(t *testing.T) {
	files, err := DiscoverFiles(t.TempDir(), "csv", DiscoveryOptions{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverFilesBadRoot(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "missing"), "csv", DiscoveryOptions{})
	assert.Error(t, err)
}
