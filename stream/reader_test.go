package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlio/hif/errs"
)

func TestNewReader_MissingPairRefused(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.st"), []byte{0x20, 0x00, 0xFF, 0xFF, 0xFF}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.id"), nil, 0o644))

	_, err := NewReader(dir)
	require.ErrorIs(t, err, errs.ErrChunkPairMismatch)
}

func TestNewReader_UnevenCountsRefused(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.st"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.id"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.st"), nil, 0o644))

	_, err := NewReader(dir)
	require.ErrorIs(t, err, errs.ErrChunkPairMismatch)
}

func TestNewReader_ForeignFileRefused(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")
	writeSession(t, dir, NewNode())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))

	_, err := NewReader(dir)
	require.ErrorIs(t, err, errs.ErrUnexpectedFile)
}

func TestNewReader_EmptyDirectoryRefused(t *testing.T) {
	_, err := NewReader(t.TempDir())
	require.ErrorIs(t, err, errs.ErrNoChunks)
}

func TestNewReader_MissingDirectoryRefused(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestNewReader_MissingHeaderRefused(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.st"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.id"), nil, 0o644))

	_, err := NewReader(dir)
	require.ErrorIs(t, err, errs.ErrMissingHeader)
}

func TestNewReader_NonHeaderFirstStatementRefused(t *testing.T) {
	dir := t.TempDir()
	// A bare Node statement: header bytes, no instance, empty io and attr
	// lists. Valid encoding, but not the mandatory Attr header.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.st"),
		[]byte{0x00, 0x00, 0xFF, 0xFF, 0xFF}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.id"), nil, 0o644))

	_, err := NewReader(dir)
	require.ErrorIs(t, err, errs.ErrMissingHeader)
}

func TestNewReader_UnsupportedVersionRefused(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")

	// Forge a header claiming a future format revision by patching the
	// writer's output: rewrite the version identifier record in 0.id.
	wr, err := NewWriter(dir, "tool", "1.0")
	require.NoError(t, err)
	require.NoError(t, wr.Close())

	idPath := filepath.Join(dir, "0.id")
	data, err := os.ReadFile(idPath)
	require.NoError(t, err)
	// Record 2 is the "0.0.1" payload; flip one digit in place.
	patched := []byte("9.0.1")
	idx := indexOf(t, data, []byte("0.0.1"))
	copy(data[idx:], patched)
	require.NoError(t, os.WriteFile(idPath, data, 0o644))

	_, err = NewReader(dir)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func indexOf(t *testing.T, haystack, needle []byte) int {
	t.Helper()
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return i
		}
	}
	t.Fatalf("pattern %q not found", needle)

	return -1
}

func TestReader_CorruptReferenceTerminatesIteration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")
	writeSession(t, dir, NewNode())

	// Append a statement whose io list references an identifier the table
	// does not contain: long-form reference to index 5000, then clean
	// terminators.
	stPath := filepath.Join(dir, "0.st")
	f, err := os.OpenFile(stPath, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	corrupt := []byte{
		0x00, 0x00, // Node header, type 0
		0xFF, // no instance
	}
	// role=last|input, index 5000 = 0b1_0011_1000_1000
	corrupt = append(corrupt, 0x06|byte(5000&0x1F)<<3, byte(5000>>5), byte(5000>>13))
	corrupt = append(corrupt, 0xFF, 0xFF)
	_, err = f.Write(corrupt)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rd, err := NewReader(dir)
	require.NoError(t, err)
	defer rd.Close()

	require.True(t, rd.Next(), "the intact statement decodes first")
	assert.False(t, rd.Next(), "the corrupt statement terminates iteration")
	require.ErrorIs(t, rd.Err(), errs.ErrRefIndexOutOfRange)
}

func TestReader_PullAPI(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")

	first := NewAssign()
	first.AddInput("a", "1")
	second := NewEnd()
	writeSession(t, dir, first, second)

	rd, err := NewReader(dir)
	require.NoError(t, err)
	defer rd.Close()

	require.True(t, rd.Next())
	assert.True(t, first.Equal(rd.Current()))
	require.True(t, rd.Next())
	assert.True(t, second.Equal(rd.Current()))
	assert.False(t, rd.Next())
	assert.NoError(t, rd.Err())
	assert.False(t, rd.Next(), "drained reader stays drained")
}

func TestReader_StatementsSurviveClose(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session")

	stmt := NewAssign()
	stmt.Instance = []byte("keeper")
	stmt.AddInput("sig", "val")
	writeSession(t, dir, stmt)

	rd, err := NewReader(dir)
	require.NoError(t, err)
	require.True(t, rd.Next())
	got := rd.Current()
	require.NoError(t, rd.Close())

	assert.True(t, stmt.Equal(got), "delivered statements remain valid after Close")
}
