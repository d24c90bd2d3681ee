package jettison

import "math"

// Kind identifies the variant held by a Value. The set is closed; encoder
// and decoder dispatch exhaustively over it.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindSequence
	KindMapping
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Value is the logical value domain of the tagged format: a closed tagged
// variant over null, bool, int64, float64, string, raw bytes, ordered
// sequences, and ordered string-keyed mappings. The zero Value is Null.
//
// Values are plain data: construct them with the package-level
// constructors, read them back through the accessors. Accessors return
// the zero value when the Value holds a different variant.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	raw   []byte
	seq   []Value
	pairs []Pair
}

// Pair is a single (key, value) entry of a Mapping. Key order is
// significant and survives a round-trip through the wire format.
type Pair struct {
	Key   string
	Value Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a signed 64-bit integer Value.
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Float returns an IEEE 754 binary64 Value. NaN and the infinities are
// valid and round-trip bit-exactly.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a text Value. The text must be valid UTF-8; Encode
// rejects anything else.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes returns an opaque binary Value. The slice is not copied.
func Bytes(p []byte) Value { return Value{kind: KindBytes, raw: p} }

// Seq returns an ordered sequence Value over elems. The slice is not
// copied.
func Seq(elems ...Value) Value { return Value{kind: KindSequence, seq: elems} }

// Map returns an ordered mapping Value over pairs. Insertion order is
// preserved through encode and decode. The slice is not copied.
func Map(pairs ...Pair) Value { return Value{kind: KindMapping, pairs: pairs} }

// KV builds a single mapping Pair.
func KV(key string, v Value) Pair { return Pair{Key: key, Value: v} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, or false for other variants.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload, or 0 for other variants.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload, or 0 for other variants.
func (v Value) Float() float64 { return v.f }

// Str returns the text payload, or "" for other variants.
func (v Value) Str() string { return v.s }

// Bin returns the binary payload, or nil for other variants. The caller
// must not mutate the result.
func (v Value) Bin() []byte { return v.raw }

// Elems returns the sequence elements, or nil for other variants.
func (v Value) Elems() []Value { return v.seq }

// Pairs returns the mapping pairs in order, or nil for other variants.
func (v Value) Pairs() []Pair { return v.pairs }

// Len returns the element count for sequences, the pair count for
// mappings, and the byte length for strings and bytes; 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.s)
	case KindBytes:
		return len(v.raw)
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.pairs)
	default:
		return 0
	}
}

// Equal reports deep equality of two Values. Floats are compared by bit
// pattern, so NaN equals NaN and -0.0 differs from 0.0; this makes Equal
// agree with wire-format identity: v.Equal(w) iff Encode(v) == Encode(w).
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindInt:
		return v.i == w.i
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(w.f)
	case KindString:
		return v.s == w.s
	case KindBytes:
		if len(v.raw) != len(w.raw) {
			return false
		}
		for i := range v.raw {
			if v.raw[i] != w.raw[i] {
				return false
			}
		}
		return true
	case KindSequence:
		if len(v.seq) != len(w.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(w.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.pairs) != len(w.pairs) {
			return false
		}
		for i := range v.pairs {
			if v.pairs[i].Key != w.pairs[i].Key {
				return false
			}
			if !v.pairs[i].Value.Equal(w.pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
