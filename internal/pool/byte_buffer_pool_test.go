package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(SinkBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.Bytes())
	assert.Equal(t, 5, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), SinkBufferDefaultSize, "Reset retains capacity")
}

func TestGetBuffer_ReturnsEmptyBuffer(t *testing.T) {
	bb := GetBuffer()
	bb.MustWrite([]byte("dirty"))
	PutBuffer(bb)

	again := GetBuffer()
	assert.Equal(t, 0, again.Len(), "pooled buffers are handed out empty")
	PutBuffer(again)
}

func TestPutBuffer_DropsOversized(t *testing.T) {
	big := NewByteBuffer(SinkBufferMaxThreshold * 2)
	PutBuffer(big) // must not panic; the buffer is simply dropped
	PutBuffer(nil)
}
