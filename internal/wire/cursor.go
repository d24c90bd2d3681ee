package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated is returned by every Cursor read that would pass the end
// of the buffer. Callers translate it into their own error model using
// the cursor's offset at the time of failure.
var ErrTruncated = errors.New("wire: truncated input")

// Cursor is a bounds-checked read position over an immutable buffer.
// Reads advance the offset; a failed read leaves the offset unchanged
// and never touches bytes past the end.
type Cursor struct {
	data  []byte
	off   int
	order binary.ByteOrder
}

// NewCursor returns a Cursor over data starting at offset, reading
// multi-byte fields in the given byte order.
func NewCursor(data []byte, offset int, order binary.ByteOrder) *Cursor {
	return &Cursor{data: data, off: offset, order: order}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

// ReadByte consumes and returns one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrTruncated
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

// ReadRaw consumes exactly n bytes and returns them as a subslice of the
// underlying buffer. Callers that retain the result across decode calls
// must copy it.
func (c *Cursor) ReadRaw(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrTruncated
	}
	p := c.data[c.off : c.off+n]
	c.off += n
	return p, nil
}

// ReadUint16 consumes a fixed-width 16-bit unsigned integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	p, err := c.ReadRaw(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(p), nil
}

// ReadUint32 consumes a fixed-width 32-bit unsigned integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	p, err := c.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(p), nil
}

// ReadUint64 consumes a fixed-width 64-bit unsigned integer.
func (c *Cursor) ReadUint64() (uint64, error) {
	p, err := c.ReadRaw(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(p), nil
}

// ReadFloat32 consumes an IEEE 754 binary32 value bit-exactly.
func (c *Cursor) ReadFloat32() (float32, error) {
	u, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadFloat64 consumes an IEEE 754 binary64 value bit-exactly.
func (c *Cursor) ReadFloat64() (float64, error) {
	u, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}
