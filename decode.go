package jettison

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/noonat/jettison/internal/wire"
)

type decodeState struct {
	cur      *wire.Cursor
	maxDepth int
	depth    int
	onDup    Severity
}

func newDecodeState(data []byte, offset int, opt DecodeOpt) *decodeState {
	return &decodeState{
		cur:      wire.NewCursor(data, offset, binary.BigEndian),
		maxDepth: opt.maxDepth(),
		onDup:    opt.OnDuplicateKey,
	}
}

// readValue consumes exactly one tagged unit. Every wire.ErrTruncated is
// translated here with the offset at which the short read happened.
func (d *decodeState) readValue(path string) (Value, error) {
	tag, err := d.cur.ReadByte()
	if err != nil {
		return Value{}, d.truncated(path, "tag byte")
	}
	if !wire.Known(tag) {
		return Value{}, issuef(path, CodeUnknownTag, d.cur.Offset()-1, "tag 0x%02x is not in the registry", tag)
	}
	switch tag {
	case wire.TagNull:
		return Null(), nil
	case wire.TagBool:
		b, err := d.cur.ReadByte()
		if err != nil {
			return Value{}, d.truncated(path, "bool payload")
		}
		switch b {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		default:
			return Value{}, issuef(path, CodeEncoding, d.cur.Offset()-1, "bool payload 0x%02x is neither 0 nor 1", b)
		}
	case wire.TagInt:
		u, err := d.cur.ReadUint64()
		if err != nil {
			return Value{}, d.truncated(path, "int payload")
		}
		return Int(int64(u)), nil
	case wire.TagFloat:
		f, err := d.cur.ReadFloat64()
		if err != nil {
			return Value{}, d.truncated(path, "float payload")
		}
		return Float(f), nil
	case wire.TagString:
		s, err := d.readStringPayload(path)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case wire.TagBytes:
		p, err := d.readLengthPrefixed(path, "bytes payload")
		if err != nil {
			return Value{}, err
		}
		// Copy out of the input buffer so the result does not alias
		// caller-owned memory.
		cp := make([]byte, len(p))
		copy(cp, p)
		return Bytes(cp), nil
	case wire.TagSequence:
		return d.readSequence(path)
	case wire.TagMapping:
		return d.readMapping(path)
	}
	return Value{}, issuef(path, CodeUnknownTag, d.cur.Offset()-1, "tag 0x%02x is not in the registry", tag)
}

func (d *decodeState) readLengthPrefixed(path, what string) ([]byte, error) {
	n, err := d.cur.ReadUint32()
	if err != nil {
		return nil, d.truncated(path, what+" length")
	}
	p, err := d.cur.ReadRaw(int(n))
	if err != nil {
		return nil, d.truncated(path, what)
	}
	return p, nil
}

func (d *decodeState) readStringPayload(path string) (string, error) {
	p, err := d.readLengthPrefixed(path, "string payload")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", issuef(path, CodeEncoding, d.cur.Offset()-len(p), "string payload is not valid UTF-8")
	}
	return string(p), nil
}

func (d *decodeState) readSequence(path string) (Value, error) {
	release, err := d.enterContainer(path)
	if err != nil {
		return Value{}, err
	}
	defer release()
	n, err := d.cur.ReadUint32()
	if err != nil {
		return Value{}, d.truncated(path, "sequence count")
	}
	elems := make([]Value, 0, capHint(n, d.cur.Remaining()))
	for i := uint32(0); i < n; i++ {
		el, err := d.readValue(joinPointer(path, itoa(int(i))))
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, el)
	}
	return Seq(elems...), nil
}

func (d *decodeState) readMapping(path string) (Value, error) {
	release, err := d.enterContainer(path)
	if err != nil {
		return Value{}, err
	}
	defer release()
	n, err := d.cur.ReadUint32()
	if err != nil {
		return Value{}, d.truncated(path, "mapping count")
	}
	pairs := make([]Pair, 0, capHint(n, d.cur.Remaining()))
	var keys map[string]struct{}
	if d.onDup == Error {
		keys = make(map[string]struct{}, capHint(n, d.cur.Remaining()))
	}
	for i := uint32(0); i < n; i++ {
		key, err := d.readStringPayload(path)
		if err != nil {
			return Value{}, err
		}
		kp := joinPointer(path, key)
		if keys != nil {
			if _, dup := keys[key]; dup {
				return Value{}, issuef(kp, CodeDuplicateKey, d.cur.Offset(), "key %q duplicated", key)
			}
			keys[key] = struct{}{}
		}
		val, err := d.readValue(kp)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, KV(key, val))
	}
	return Map(pairs...), nil
}

func (d *decodeState) enterContainer(path string) (func(), error) {
	d.depth++
	if d.depth > d.maxDepth {
		d.depth--
		return nil, issuef(path, CodeDepthExceeded, d.cur.Offset(), "nesting deeper than %d", d.maxDepth)
	}
	return func() { d.depth-- }, nil
}

func (d *decodeState) truncated(path, what string) error {
	return issuef(path, CodeTruncated, d.cur.Offset(), "input ended inside %s", what)
}

// capHint bounds a wire-declared count by what the remaining input could
// possibly hold, so a lying count cannot force a huge allocation before
// the truncation error surfaces.
func capHint(declared uint32, remaining int) int {
	if uint64(declared) < uint64(remaining) {
		return int(declared)
	}
	return remaining
}
