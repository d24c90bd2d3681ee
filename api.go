package jettison

// Encode serializes v into wire format v1. The result is complete or the
// error is: no partial output is ever returned. Encoding is
// deterministic; the same logical value always yields the same bytes.
func Encode(v Value, opt ...EncodeOpt) ([]byte, error) {
	var o EncodeOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	st := newEncodeState(o)
	if err := st.writeValue(v, ""); err != nil {
		return nil, err
	}
	return st.sink.Bytes(), nil
}

// Decode reads exactly one value from data starting at offset and
// returns it with the offset of the first unconsumed byte. Trailing
// bytes after the value are not an error; use DecodeExact when the
// buffer must hold exactly one value. The input buffer is never
// mutated, and the returned Value does not alias it.
func Decode(data []byte, offset int, opt ...DecodeOpt) (Value, int, error) {
	var o DecodeOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	if offset < 0 || offset > len(data) {
		return Value{}, 0, issuef("", CodeTruncated, offset, "offset %d outside buffer of %d bytes", offset, len(data))
	}
	if o.MaxBytes > 0 && int64(len(data)) > o.MaxBytes {
		return Value{}, 0, issuef("", CodeTooBig, -1, "input of %d bytes exceeds the %d byte limit", len(data), o.MaxBytes)
	}
	st := newDecodeState(data, offset, o)
	v, err := st.readValue("")
	if err != nil {
		return Value{}, 0, err
	}
	return v, st.cur.Offset(), nil
}

// DecodeExact is Decode for buffers holding exactly one value: any
// unconsumed bytes after a successful decode fail with trailing_data.
func DecodeExact(data []byte, opt ...DecodeOpt) (Value, error) {
	v, next, err := Decode(data, 0, opt...)
	if err != nil {
		return Value{}, err
	}
	if next != len(data) {
		return Value{}, issuef("", CodeTrailingData, next, "%d unconsumed bytes after value", len(data)-next)
	}
	return v, nil
}
