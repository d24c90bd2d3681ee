package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestSinkFixedWidthByteOrder(t *testing.T) {
	be := NewSink(binary.BigEndian)
	be.PutUint16(0x0102)
	be.PutUint32(0x01020304)
	be.PutUint64(0x0102030405060708)
	want := []byte{1, 2, 1, 2, 3, 4, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(be.Bytes(), want) {
		t.Errorf("big-endian sink = %x, want %x", be.Bytes(), want)
	}

	le := NewSink(binary.LittleEndian)
	le.PutUint16(0x0102)
	le.PutUint32(0x01020304)
	le.PutUint64(0x0102030405060708)
	leWant := []byte{2, 1, 4, 3, 2, 1, 8, 7, 6, 5, 4, 3, 2, 1}
	if !bytes.Equal(le.Bytes(), leWant) {
		t.Errorf("little-endian sink = %x, want %x", le.Bytes(), leWant)
	}
}

func TestSinkFloatBitPatterns(t *testing.T) {
	s := NewSink(binary.BigEndian)
	s.PutFloat32(1.0)
	s.PutFloat64(1.0)
	want := []byte{0x3f, 0x80, 0, 0, 0x3f, 0xf0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(s.Bytes(), want) {
		t.Errorf("float sink = %x, want %x", s.Bytes(), want)
	}

	nanBits := math.Float64bits(math.NaN())
	s2 := NewSink(binary.BigEndian)
	s2.PutFloat64(math.NaN())
	c := NewCursor(s2.Bytes(), 0, binary.BigEndian)
	f, err := c.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64: %v", err)
	}
	if math.Float64bits(f) != nanBits {
		t.Errorf("NaN payload bits not preserved: %016x != %016x", math.Float64bits(f), nanBits)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	s := NewSink(binary.BigEndian)
	s.PutByte(0xab)
	s.PutRaw([]byte("raw"))
	s.PutUint16(65535)
	s.PutUint32(4294967295)
	s.PutUint64(math.MaxUint64)
	s.PutFloat64(-2.5)

	c := NewCursor(s.Bytes(), 0, binary.BigEndian)
	if b, _ := c.ReadByte(); b != 0xab {
		t.Errorf("ReadByte = %x", b)
	}
	if p, _ := c.ReadRaw(3); string(p) != "raw" {
		t.Errorf("ReadRaw = %q", p)
	}
	if u, _ := c.ReadUint16(); u != 65535 {
		t.Errorf("ReadUint16 = %d", u)
	}
	if u, _ := c.ReadUint32(); u != 4294967295 {
		t.Errorf("ReadUint32 = %d", u)
	}
	if u, _ := c.ReadUint64(); u != math.MaxUint64 {
		t.Errorf("ReadUint64 = %d", u)
	}
	if f, _ := c.ReadFloat64(); f != -2.5 {
		t.Errorf("ReadFloat64 = %v", f)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining())
	}
}

func TestCursorTruncation(t *testing.T) {
	c := NewCursor([]byte{1, 2}, 0, binary.BigEndian)
	if _, err := c.ReadUint32(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadUint32 on short buffer: %v", err)
	}
	// Failed reads leave the offset where it was.
	if c.Offset() != 0 {
		t.Errorf("offset moved on failed read: %d", c.Offset())
	}
	if _, err := c.ReadRaw(-1); !errors.Is(err, ErrTruncated) {
		t.Errorf("negative length must fail: %v", err)
	}
}

func TestCursorStartOffset(t *testing.T) {
	c := NewCursor([]byte{0, 0, 7}, 2, binary.BigEndian)
	b, err := c.ReadByte()
	if err != nil || b != 7 {
		t.Fatalf("ReadByte = %d, %v", b, err)
	}
	if c.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", c.Offset())
	}
}

func TestTagRegistry(t *testing.T) {
	known := []byte{TagNull, TagBool, TagInt, TagFloat, TagString, TagBytes, TagSequence, TagMapping}
	seen := map[byte]bool{}
	for _, tag := range known {
		if !Known(tag) {
			t.Errorf("tag 0x%02x not recognized", tag)
		}
		if seen[tag] {
			t.Errorf("tag 0x%02x reused", tag)
		}
		seen[tag] = true
		if TagName(tag) == "unknown" {
			t.Errorf("tag 0x%02x has no name", tag)
		}
	}
	for _, tag := range []byte{0x00, 0x09, 0x80, 0xff} {
		if Known(tag) {
			t.Errorf("tag 0x%02x wrongly recognized", tag)
		}
	}
}
