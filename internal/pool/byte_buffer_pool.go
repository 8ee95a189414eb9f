package pool

import "sync"

const (
	// SinkBufferDefaultSize is the default capacity of a ByteBuffer obtained
	// from the pool, sized for the byte sink's flush threshold.
	SinkBufferDefaultSize = 1024 * 16
	// SinkBufferMaxThreshold is the largest buffer the pool retains. Bigger
	// buffers are dropped so one oversized append does not pin memory.
	SinkBufferMaxThreshold = 1024 * 128
)

// ByteBuffer is a reusable byte slice wrapper handed out by the pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

var bufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(SinkBufferDefaultSize)
	},
}

// GetBuffer returns an empty ByteBuffer from the pool.
func GetBuffer() *ByteBuffer {
	bb, _ := bufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBuffer returns a ByteBuffer to the pool. Buffers that grew past
// SinkBufferMaxThreshold are dropped.
func PutBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > SinkBufferMaxThreshold {
		return
	}
	bufferPool.Put(bb)
}
