package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("identifier_payload_with_repetition_"), 256)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			codec, err := GetCodec(name)
			require.NoError(t, err)

			packed, err := codec.Compress(payload)
			require.NoError(t, err)

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(payload, unpacked))
		})
	}
}

func TestCodecs_CompressibleDataShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte("aaaaaaaaaabbbbbbbbbb"), 1024)

	for _, name := range []string{"zstd", "s2", "lz4"} {
		codec, err := GetCodec(name)
		require.NoError(t, err)

		packed, err := codec.Compress(payload)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(payload), "%s should shrink repetitive data", name)
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec("brotli")
	require.Error(t, err)
}

func TestNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"lz4", "none", "s2", "zstd"}, Names())
}
