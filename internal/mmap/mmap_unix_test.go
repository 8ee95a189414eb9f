//go:build unix

package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ReadsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	payload := []byte("mapped contents")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	region, err := Map(path)
	require.NoError(t, err)

	assert.Equal(t, payload, region.Bytes())
	require.NoError(t, region.Close())
	require.NoError(t, region.Close(), "Close is idempotent")
}

func TestMap_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	region, err := Map(path)
	require.NoError(t, err)
	assert.Empty(t, region.Bytes())
	require.NoError(t, region.Close())
}

func TestMap_MissingFile(t *testing.T) {
	_, err := Map(filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
}
