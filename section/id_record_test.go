package section

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/format"
)

func TestIDRecord_ShortForm(t *testing.T) {
	testCases := []struct {
		name    string
		cat     format.IDCat
		payload []byte
	}{
		{name: "empty string", cat: format.CatString, payload: nil},
		{name: "single byte", cat: format.CatString, payload: []byte("A")},
		{name: "base2 bytes", cat: format.CatBase2, payload: []byte{0x01, 0x02}},
		{name: "fifteen bytes", cat: format.CatCustom, payload: bytes.Repeat([]byte("x"), 15)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := AppendIDRecord(nil, tc.cat, tc.payload)
			require.Len(t, buf, 1+len(tc.payload), "length <= 15 must use the short form")

			cat, payload, n, err := DecodeIDRecord(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)
			assert.Equal(t, tc.cat, cat)
			assert.Equal(t, len(tc.payload), len(payload))
			assert.True(t, bytes.Equal(tc.payload, payload))
		})
	}
}

func TestIDRecord_LongForm(t *testing.T) {
	for _, length := range []int{16, 255, 4096, MaxIdentifierLen} {
		payload := bytes.Repeat([]byte("y"), length)
		buf := AppendIDRecord(nil, format.CatString, payload)
		require.Len(t, buf, idLongHeader+length)

		cat, got, n, err := DecodeIDRecord(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, format.CatString, cat)
		assert.True(t, bytes.Equal(payload, got))
	}
}

func TestIDRecord_PayloadMayContainTerminatorByte(t *testing.T) {
	payload := []byte{0xFF, 0x00, 0xFF, 0xFF}
	buf := AppendIDRecord(nil, format.CatBase2, payload)

	cat, got, _, err := DecodeIDRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, format.CatBase2, cat)
	assert.True(t, bytes.Equal(payload, got))
}

func TestDecodeIDRecord_InvalidCategory(t *testing.T) {
	// Category tags 5..7 are outside the closed set.
	_, _, _, err := DecodeIDRecord([]byte{0x05 | idShortFlag})
	require.ErrorIs(t, err, errs.ErrInvalidCategory)
}

func TestDecodeIDRecord_Truncated(t *testing.T) {
	_, _, _, err := DecodeIDRecord(nil)
	require.ErrorIs(t, err, errs.ErrTruncatedIdentifier)

	// Short-form header promising more payload than present.
	buf := AppendIDRecord(nil, format.CatString, []byte("abcdef"))
	_, _, _, err = DecodeIDRecord(buf[:3])
	require.ErrorIs(t, err, errs.ErrTruncatedIdentifier)

	// Long-form header cut off before its length word.
	long := AppendIDRecord(nil, format.CatString, bytes.Repeat([]byte("z"), 100))
	_, _, _, err = DecodeIDRecord(long[:2])
	require.ErrorIs(t, err, errs.ErrTruncatedIdentifier)
}

func TestAppendIDRecord_OversizePayloadPanics(t *testing.T) {
	require.Panics(t, func() {
		AppendIDRecord(nil, format.CatString, make([]byte, MaxIdentifierLen+1))
	})
}
