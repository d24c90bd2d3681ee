package wire

import (
	"encoding/binary"
	"math"
)

// Sink is an append-only growable byte buffer with typed fixed-width
// writes. The byte order is fixed at construction; the tagged document
// format always uses big-endian, the schema layer may select either.
type Sink struct {
	buf   []byte
	order binary.ByteOrder
}

// NewSink returns an empty Sink writing multi-byte fields in the given
// byte order.
func NewSink(order binary.ByteOrder) *Sink {
	return &Sink{order: order}
}

// Bytes returns the accumulated buffer. The Sink retains ownership; the
// caller must not write to the Sink after using the result.
func (s *Sink) Bytes() []byte { return s.buf }

// Len returns the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// PutByte appends a single byte.
func (s *Sink) PutByte(b byte) {
	s.buf = append(s.buf, b)
}

// PutRaw appends p verbatim.
func (s *Sink) PutRaw(p []byte) {
	s.buf = append(s.buf, p...)
}

// PutUint16 appends a fixed-width 16-bit unsigned integer.
func (s *Sink) PutUint16(v uint16) {
	var b [2]byte
	s.order.PutUint16(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutUint32 appends a fixed-width 32-bit unsigned integer. Lengths and
// counts in both formats are written through here.
func (s *Sink) PutUint32(v uint32) {
	var b [4]byte
	s.order.PutUint32(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutUint64 appends a fixed-width 64-bit unsigned integer.
func (s *Sink) PutUint64(v uint64) {
	var b [8]byte
	s.order.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// PutFloat32 appends an IEEE 754 binary32 value bit-exactly.
func (s *Sink) PutFloat32(f float32) {
	s.PutUint32(math.Float32bits(f))
}

// PutFloat64 appends an IEEE 754 binary64 value bit-exactly. NaN
// payload bits pass through unchanged.
func (s *Sink) PutFloat64(f float64) {
	s.PutUint64(math.Float64bits(f))
}
