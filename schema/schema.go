package schema

import (
	"encoding/binary"
	"strconv"

	jettison "github.com/noonat/jettison"
	"github.com/noonat/jettison/internal/wire"
)

// Field is a single property of a definition: a key in the encoded map
// and the fixed codec for its value. ValueType is required for Array
// fields and names the element type, which must be a fixed-width scalar.
type Field struct {
	Key       string
	Type      FieldType
	ValueType FieldType
}

func (f Field) validate() error {
	if f.Key == "" {
		return jettison.Issues{{
			Path: "/", Code: jettison.CodeInvalidType,
			Message: "field key is required", Offset: -1,
		}}
	}
	switch {
	case f.Type == Array:
		if !scalar(f.ValueType) {
			return jettison.Issues{{
				Path: "/" + f.Key, Code: jettison.CodeInvalidType,
				Message: "invalid array value type " + strconv.Quote(string(f.ValueType)),
				Offset:  -1,
			}}
		}
	case f.Type == String, scalar(f.Type):
	default:
		return jettison.Issues{{
			Path: "/" + f.Key, Code: jettison.CodeInvalidType,
			Message: "invalid field type " + strconv.Quote(string(f.Type)),
			Offset:  -1,
		}}
	}
	return nil
}

// Opt bundles definition options.
type Opt struct {
	// LittleEndian selects little-endian for every multi-byte field.
	// The default is big-endian, matching the original libraries.
	LittleEndian bool
}

// Definition is an ordered group of fields encoding one message shape.
type Definition struct {
	fields []Field
	id     uint8
	name   string
	order  binary.ByteOrder
}

// Define builds a standalone Definition from fields.
func Define(fields []Field, opt ...Opt) (*Definition, error) {
	var o Opt
	if len(opt) > 0 {
		o = opt[0]
	}
	var order binary.ByteOrder = binary.BigEndian
	if o.LittleEndian {
		order = binary.LittleEndian
	}
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
	}
	return &Definition{fields: fields, order: order}, nil
}

// Name returns the name given to the definition by its schema, or "".
func (d *Definition) Name() string { return d.name }

// ID returns the id assigned by the schema, or 0 for standalone
// definitions.
func (d *Definition) ID() uint8 { return d.id }

// Encode serializes data field by field in definition order. Missing
// keys, wrong Go types, and out-of-range numerics fail without output.
func (d *Definition) Encode(data map[string]any) ([]byte, error) {
	sink := wire.NewSink(d.order)
	if err := d.encodeTo(sink, data); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

func (d *Definition) encodeTo(sink *wire.Sink, data map[string]any) error {
	for _, f := range d.fields {
		v, ok := data[f.Key]
		if !ok {
			return jettison.Issues{{
				Path: "/" + f.Key, Code: jettison.CodeInvalidType,
				Message: "missing key", Offset: -1,
			}}
		}
		var err error
		switch f.Type {
		case String:
			err = encodeString(sink, v, "/"+f.Key)
		case Array:
			err = encodeArray(sink, f.ValueType, v, "/"+f.Key)
		default:
			err = encodeScalar(sink, f.Type, v, "/"+f.Key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the definition's fields from data starting at offset and
// returns the decoded map and the offset of the first unconsumed byte.
// Integer fields decode as int64, floats as float64, arrays as []any.
func (d *Definition) Decode(data []byte, offset int) (map[string]any, int, error) {
	cur := wire.NewCursor(data, offset, d.order)
	out, err := d.decodeFrom(cur)
	if err != nil {
		return nil, 0, err
	}
	return out, cur.Offset(), nil
}

func (d *Definition) decodeFrom(cur *wire.Cursor) (map[string]any, error) {
	out := make(map[string]any, len(d.fields))
	for _, f := range d.fields {
		var v any
		var err error
		switch f.Type {
		case String:
			v, err = decodeString(cur, "/"+f.Key)
		case Array:
			v, err = decodeArray(cur, f.ValueType, "/"+f.Key)
		default:
			v, err = decodeScalar(cur, f.Type, "/"+f.Key)
		}
		if err != nil {
			return nil, err
		}
		out[f.Key] = v
	}
	return out, nil
}

// Schema groups named definitions and prefixes each encoded message
// with a one-byte definition id, so the receiving side can dispatch
// without being told the message type. Ids start at 1 and follow
// definition order, which is why both ends must define the same
// messages in the same order.
type Schema struct {
	byName map[string]*Definition
	byID   map[uint8]*Definition
	nextID uint8
	opt    Opt
}

// NewSchema returns an empty schema.
func NewSchema(opt ...Opt) *Schema {
	var o Opt
	if len(opt) > 0 {
		o = opt[0]
	}
	return &Schema{
		byName: make(map[string]*Definition),
		byID:   make(map[uint8]*Definition),
		nextID: 1,
		opt:    o,
	}
}

// Define registers a new message shape under name.
func (s *Schema) Define(name string, fields []Field) (*Definition, error) {
	if name == "" {
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeInvalidType,
			Message: "definition name is required", Offset: -1,
		}}
	}
	if _, dup := s.byName[name]; dup {
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeDuplicateKey,
			Message: "definition " + strconv.Quote(name) + " already defined", Offset: -1,
		}}
	}
	if s.nextID == 0 {
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeRange,
			Message: "schema is full: definition ids are one byte", Offset: -1,
		}}
	}
	d, err := Define(fields, s.opt)
	if err != nil {
		return nil, err
	}
	d.id = s.nextID
	d.name = name
	s.nextID++
	s.byName[name] = d
	s.byID[d.id] = d
	return d, nil
}

// Encode serializes data under the named definition, prefixed with the
// definition id.
func (s *Schema) Encode(name string, data map[string]any) ([]byte, error) {
	d, ok := s.byName[name]
	if !ok {
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeUnknownTag,
			Message: "definition " + strconv.Quote(name) + " is not defined", Offset: -1,
		}}
	}
	sink := wire.NewSink(d.order)
	sink.PutByte(d.id)
	if err := d.encodeTo(sink, data); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// Decode reads the id byte, dispatches to the matching definition, and
// returns its name with the decoded map.
func (s *Schema) Decode(data []byte) (string, map[string]any, error) {
	if len(data) == 0 {
		return "", nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeTruncated,
			Message: "input ended inside definition id", Offset: 0,
		}}
	}
	d, ok := s.byID[data[0]]
	if !ok {
		return "", nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeUnknownTag,
			Message: "definition id " + strconv.Itoa(int(data[0])) + " is not defined", Offset: 0,
		}}
	}
	out, _, err := d.Decode(data, 1)
	if err != nil {
		return "", nil, err
	}
	return d.name, out, nil
}

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }
