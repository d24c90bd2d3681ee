// Package wire holds the byte-level primitives of the jettison formats:
// the tag registry for the tagged document format, the append-only Sink
// used while encoding, and the bounds-checked Cursor used while decoding.
// No package outside wire performs raw byte arithmetic.
package wire

// Tag bytes for wire format v1. The table is closed: a byte outside it is
// always a decode error. Values start at 0x01 so an all-zero buffer is
// never mistaken for a valid encoding.
const (
	TagNull     byte = 0x01
	TagBool     byte = 0x02
	TagInt      byte = 0x03
	TagFloat    byte = 0x04
	TagString   byte = 0x05
	TagBytes    byte = 0x06
	TagSequence byte = 0x07
	TagMapping  byte = 0x08
)

// Known reports whether tag is part of the v1 registry.
func Known(tag byte) bool {
	return tag >= TagNull && tag <= TagMapping
}

// TagName returns a human-readable name for a registry tag, for error
// messages. Unknown tags yield "unknown".
func TagName(tag byte) string {
	switch tag {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagBytes:
		return "bytes"
	case TagSequence:
		return "sequence"
	case TagMapping:
		return "mapping"
	default:
		return "unknown"
	}
}
