package jettison

import (
	"encoding/binary"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/noonat/jettison/internal/wire"
)

// maxFieldLen is the largest byte length or element count representable
// in a uint32 length field.
const maxFieldLen = math.MaxUint32

// containerRef identifies a container slice by backing-array pointer and
// length. The pointer alone is not enough: a subslice sharing a prefix of
// an ancestor's backing array is a distinct, acyclic container.
type containerRef struct {
	ptr uintptr
	len int
}

type encodeState struct {
	sink     *wire.Sink
	maxDepth int
	depth    int
	// seen tracks the identity of every container on the current walk
	// path. A container reachable from itself (possible via shared slice
	// backing arrays) would otherwise recurse forever.
	seen map[containerRef]struct{}
}

func newEncodeState(opt EncodeOpt) *encodeState {
	return &encodeState{
		sink:     wire.NewSink(binary.BigEndian),
		maxDepth: opt.maxDepth(),
		seen:     make(map[containerRef]struct{}),
	}
}

func (e *encodeState) writeValue(v Value, path string) error {
	switch v.kind {
	case KindNull:
		e.sink.PutByte(wire.TagNull)
		return nil
	case KindBool:
		e.sink.PutByte(wire.TagBool)
		if v.b {
			e.sink.PutByte(1)
		} else {
			e.sink.PutByte(0)
		}
		return nil
	case KindInt:
		e.sink.PutByte(wire.TagInt)
		e.sink.PutUint64(uint64(v.i))
		return nil
	case KindFloat:
		e.sink.PutByte(wire.TagFloat)
		e.sink.PutFloat64(v.f)
		return nil
	case KindString:
		if !utf8.ValidString(v.s) {
			return issuef(path, CodeEncoding, -1, "string is not valid UTF-8")
		}
		e.sink.PutByte(wire.TagString)
		return e.writeLengthPrefixed(path, []byte(v.s))
	case KindBytes:
		e.sink.PutByte(wire.TagBytes)
		return e.writeLengthPrefixed(path, v.raw)
	case KindSequence:
		e.sink.PutByte(wire.TagSequence)
		return e.writeSequence(v.seq, path)
	case KindMapping:
		e.sink.PutByte(wire.TagMapping)
		return e.writeMapping(v.pairs, path)
	default:
		return issuef(path, CodeInvalidType, -1, "invalid value kind %d", int(v.kind))
	}
}

func (e *encodeState) writeLengthPrefixed(path string, p []byte) error {
	if uint64(len(p)) > maxFieldLen {
		return issuef(path, CodeRange, -1, "payload of %d bytes exceeds the 32-bit length field", len(p))
	}
	e.sink.PutUint32(uint32(len(p)))
	e.sink.PutRaw(p)
	return nil
}

func (e *encodeState) writeSequence(elems []Value, path string) error {
	if uint64(len(elems)) > maxFieldLen {
		return issuef(path, CodeRange, -1, "sequence of %d elements exceeds the 32-bit count field", len(elems))
	}
	release, err := e.enterContainer(reflect.ValueOf(elems), path)
	if err != nil {
		return err
	}
	defer release()
	e.sink.PutUint32(uint32(len(elems)))
	for i := range elems {
		if err := e.writeValue(elems[i], joinPointer(path, itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) writeMapping(pairs []Pair, path string) error {
	if uint64(len(pairs)) > maxFieldLen {
		return issuef(path, CodeRange, -1, "mapping of %d pairs exceeds the 32-bit count field", len(pairs))
	}
	release, err := e.enterContainer(reflect.ValueOf(pairs), path)
	if err != nil {
		return err
	}
	defer release()
	e.sink.PutUint32(uint32(len(pairs)))
	for i := range pairs {
		kp := joinPointer(path, pairs[i].Key)
		if !utf8.ValidString(pairs[i].Key) {
			return issuef(kp, CodeEncoding, -1, "mapping key is not valid UTF-8")
		}
		key := []byte(pairs[i].Key)
		if uint64(len(key)) > maxFieldLen {
			return issuef(kp, CodeRange, -1, "key of %d bytes exceeds the 32-bit length field", len(key))
		}
		// Keys are written as a bare string payload: the key type is fixed
		// by the format, so no tag byte precedes it.
		e.sink.PutUint32(uint32(len(key)))
		e.sink.PutRaw(key)
		if err := e.writeValue(pairs[i].Value, kp); err != nil {
			return err
		}
	}
	return nil
}

// enterContainer pushes one nesting level, enforcing the depth limit and
// cycle detection. The returned release function pops the level.
func (e *encodeState) enterContainer(rv reflect.Value, path string) (func(), error) {
	e.depth++
	if e.depth > e.maxDepth {
		e.depth--
		return nil, issuef(path, CodeDepthExceeded, -1, "nesting deeper than %d", e.maxDepth)
	}
	var ref containerRef
	entered := false
	if rv.Len() > 0 {
		ref = containerRef{ptr: rv.Pointer(), len: rv.Len()}
		if _, ok := e.seen[ref]; ok {
			e.depth--
			return nil, issuef(path, CodeCyclicValue, -1, "container refers to itself")
		}
		e.seen[ref] = struct{}{}
		entered = true
	}
	return func() {
		e.depth--
		if entered {
			delete(e.seen, ref)
		}
	}, nil
}
