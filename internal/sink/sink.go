// Package sink implements the append-only buffered file writer behind the
// statement and identifier streams.
package sink

import (
	"fmt"
	"os"

	"github.com/hdlio/hif/endian"
	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/internal/pool"
)

// FlushThreshold is the buffered byte count past which the sink drains to
// the underlying file.
const FlushThreshold = 8192

var engine = endian.GetLittleEndianEngine()

// Sink appends untyped bytes and small little-endian integers to a file
// through a fixed-size buffer. I/O errors are sticky: the first one is kept
// and every later operation becomes a no-op until Close surfaces it.
//
// Close drains the buffer exactly once; a Sink must not be used after Close.
type Sink struct {
	f      *os.File
	buf    *pool.ByteBuffer
	err    error
	closed bool
}

// Create opens path for appending, creating it if needed.
func Create(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}

	return &Sink{f: f, buf: pool.GetBuffer()}, nil
}

// Add8 appends a single byte.
func (s *Sink) Add8(v uint8) {
	if s.err != nil {
		return
	}
	s.buf.B = append(s.buf.B, v)
	s.drainIfFull()
}

// Add16 appends a 16-bit value, little-endian.
func (s *Sink) Add16(v uint16) {
	if s.err != nil {
		return
	}
	s.buf.B = engine.AppendUint16(s.buf.B, v)
	s.drainIfFull()
}

// Add24 appends the low 24 bits of v, little-endian.
func (s *Sink) Add24(v uint32) {
	if s.err != nil {
		return
	}
	s.buf.B = append(s.buf.B, byte(v), byte(v>>8), byte(v>>16))
	s.drainIfFull()
}

// Add32 appends a 32-bit value, little-endian.
func (s *Sink) Add32(v uint32) {
	if s.err != nil {
		return
	}
	s.buf.B = engine.AppendUint32(s.buf.B, v)
	s.drainIfFull()
}

// Add appends a byte string. Appends of FlushThreshold bytes or more drain
// the buffer first and then bypass it entirely.
func (s *Sink) Add(p []byte) {
	if s.err != nil {
		return
	}

	if len(p) >= FlushThreshold {
		if s.buf.Len() > 0 {
			s.drain()
		}
		s.write(p)

		return
	}

	s.buf.MustWrite(p)
	s.drainIfFull()
}

// Err returns the first I/O error the sink encountered, if any.
func (s *Sink) Err() error {
	return s.err
}

// Close drains the remaining buffered bytes and closes the file. It reports
// the first error seen across the sink's lifetime.
func (s *Sink) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true

	if s.err == nil && s.buf.Len() > 0 {
		s.drain()
	}

	if err := s.f.Close(); err != nil && s.err == nil {
		s.err = fmt.Errorf("sink: close: %w", err)
	}

	pool.PutBuffer(s.buf)
	s.buf = nil

	return s.err
}

func (s *Sink) drainIfFull() {
	if s.buf.Len() >= FlushThreshold {
		s.drain()
	}
}

func (s *Sink) drain() {
	s.write(s.buf.Bytes())
	s.buf.Reset()
}

func (s *Sink) write(p []byte) {
	n, err := s.f.Write(p)
	if err != nil {
		s.err = fmt.Errorf("sink: write: %w", err)

		return
	}
	if n != len(p) {
		s.err = fmt.Errorf("%w: wrote %d of %d bytes", errs.ErrShortWrite, n, len(p))
	}
}
