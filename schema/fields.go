// Package schema implements the schema-based jettison codec: fixed-width
// fields grouped into definitions, wire-compatible with the jettison
// JavaScript and Python libraries. Unlike the tagged document format in
// the root package, nothing here is self-describing; both ends of the
// connection must share the schema.
package schema

import (
	"math"
	"reflect"
	"unicode/utf8"

	jettison "github.com/noonat/jettison"
	"github.com/noonat/jettison/internal/wire"
)

// FieldType names one of the fixed field codecs.
type FieldType string

const (
	Int8    FieldType = "int8"
	Int16   FieldType = "int16"
	Int32   FieldType = "int32"
	Uint8   FieldType = "uint8"
	Uint16  FieldType = "uint16"
	Uint32  FieldType = "uint32"
	Float32 FieldType = "float32"
	Float64 FieldType = "float64"
	Boolean FieldType = "boolean"
	String  FieldType = "string"
	Array   FieldType = "array"
)

// intRanges holds the inclusive bounds for the integer field types.
var intRanges = map[FieldType][2]int64{
	Int8:   {math.MinInt8, math.MaxInt8},
	Int16:  {math.MinInt16, math.MaxInt16},
	Int32:  {math.MinInt32, math.MaxInt32},
	Uint8:  {0, math.MaxUint8},
	Uint16: {0, math.MaxUint16},
	Uint32: {0, math.MaxUint32},
}

// scalar reports whether t is a fixed-width type usable as an array
// element. Strings and arrays are variable-length and excluded, matching
// the original libraries.
func scalar(t FieldType) bool {
	switch t {
	case Int8, Int16, Int32, Uint8, Uint16, Uint32, Float32, Float64, Boolean:
		return true
	default:
		return false
	}
}

func encodeScalar(sink *wire.Sink, t FieldType, v any, path string) error {
	switch t {
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return typeIssue(path, "bool", v)
		}
		if b {
			sink.PutByte(1)
		} else {
			sink.PutByte(0)
		}
		return nil
	case Float32:
		f, ok := toFloat64(v)
		if !ok {
			return typeIssue(path, "float", v)
		}
		// float32 fields round like the original libraries; values that do
		// not fit the narrower exponent become ±Inf, which IEEE permits.
		sink.PutFloat32(float32(f))
		return nil
	case Float64:
		f, ok := toFloat64(v)
		if !ok {
			return typeIssue(path, "float", v)
		}
		sink.PutFloat64(f)
		return nil
	default:
		n, ok := toInt64(v)
		if !ok {
			return typeIssue(path, "integer", v)
		}
		r := intRanges[t]
		if n < r[0] || n > r[1] {
			return jettison.Issues{{
				Path: path, Code: jettison.CodeRange,
				Message: "value " + itoa64(n) + " out of range for " + string(t),
				Offset:  -1,
			}}
		}
		switch t {
		case Int8, Uint8:
			sink.PutByte(byte(n))
		case Int16, Uint16:
			sink.PutUint16(uint16(n))
		case Int32, Uint32:
			sink.PutUint32(uint32(n))
		}
		return nil
	}
}

func decodeScalar(cur *wire.Cursor, t FieldType, path string) (any, error) {
	switch t {
	case Boolean:
		b, err := cur.ReadByte()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return b != 0, nil
	case Float32:
		f, err := cur.ReadFloat32()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return float64(f), nil
	case Float64:
		f, err := cur.ReadFloat64()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return f, nil
	case Int8:
		b, err := cur.ReadByte()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(int8(b)), nil
	case Uint8:
		b, err := cur.ReadByte()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(b), nil
	case Int16:
		u, err := cur.ReadUint16()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(int16(u)), nil
	case Uint16:
		u, err := cur.ReadUint16()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(u), nil
	case Int32:
		u, err := cur.ReadUint32()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(int32(u)), nil
	case Uint32:
		u, err := cur.ReadUint32()
		if err != nil {
			return nil, truncIssue(path, cur)
		}
		return int64(u), nil
	default:
		return nil, jettison.Issues{{
			Path: path, Code: jettison.CodeInvalidType,
			Message: "type " + string(t) + " is not a scalar", Offset: -1,
		}}
	}
}

func encodeString(sink *wire.Sink, v any, path string) error {
	s, ok := v.(string)
	if !ok {
		return typeIssue(path, "string", v)
	}
	if !utf8.ValidString(s) {
		return jettison.Issues{{
			Path: path, Code: jettison.CodeEncoding,
			Message: "string is not valid UTF-8", Offset: -1,
		}}
	}
	if uint64(len(s)) > math.MaxUint32 {
		return jettison.Issues{{
			Path: path, Code: jettison.CodeRange,
			Message: "string exceeds the 32-bit length field", Offset: -1,
		}}
	}
	sink.PutUint32(uint32(len(s)))
	sink.PutRaw([]byte(s))
	return nil
}

func decodeString(cur *wire.Cursor, path string) (string, error) {
	n, err := cur.ReadUint32()
	if err != nil {
		return "", truncIssue(path, cur)
	}
	p, err := cur.ReadRaw(int(n))
	if err != nil {
		return "", truncIssue(path, cur)
	}
	if !utf8.Valid(p) {
		return "", jettison.Issues{{
			Path: path, Code: jettison.CodeEncoding,
			Message: "string payload is not valid UTF-8", Offset: cur.Offset() - len(p),
		}}
	}
	return string(p), nil
}

func encodeArray(sink *wire.Sink, elem FieldType, v any, path string) error {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return typeIssue(path, "slice", v)
	}
	n := rv.Len()
	if uint64(n) > math.MaxUint32 {
		return jettison.Issues{{
			Path: path, Code: jettison.CodeRange,
			Message: "array exceeds the 32-bit length field", Offset: -1,
		}}
	}
	sink.PutUint32(uint32(n))
	for i := 0; i < n; i++ {
		if err := encodeScalar(sink, elem, rv.Index(i).Interface(), path+"/"+itoa64(int64(i))); err != nil {
			return err
		}
	}
	return nil
}

// scalarWidth returns the encoded size in bytes of a fixed-width field
// type.
func scalarWidth(t FieldType) int {
	switch t {
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 1
	}
}

func decodeArray(cur *wire.Cursor, elem FieldType, path string) ([]any, error) {
	n, err := cur.ReadUint32()
	if err != nil {
		return nil, truncIssue(path, cur)
	}
	// Cap the allocation by what the remaining input could hold, so a
	// lying count fails with truncated instead of exhausting memory.
	hint := cur.Remaining() / scalarWidth(elem)
	if uint64(n) < uint64(hint) {
		hint = int(n)
	}
	out := make([]any, 0, hint)
	for i := uint32(0); i < n; i++ {
		v, err := decodeScalar(cur, elem, path+"/"+itoa64(int64(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// toInt64 widens any Go integer to int64. uint64 values above MaxInt64
// are rejected; no field type can hold them anyway.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	default:
		return 0, false
	}
}

// toFloat64 accepts floats and, like the original libraries, whole
// integers for float fields.
func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		if n, ok := toInt64(v); ok {
			return float64(n), true
		}
		return 0, false
	}
}

func typeIssue(path, want string, got any) error {
	desc := "nil"
	if got != nil {
		desc = reflect.TypeOf(got).String()
	}
	return jettison.Issues{{
		Path: path, Code: jettison.CodeInvalidType,
		Message: "expected " + want + ", got " + desc,
		Offset:  -1,
	}}
}

func truncIssue(path string, cur *wire.Cursor) error {
	return jettison.Issues{{
		Path: path, Code: jettison.CodeTruncated,
		Message: "input ended inside field", Offset: cur.Offset(),
	}}
}
