// Package codec bridges jettison Values to and from other
// serialization formats. The bridges contain no wire-format logic of
// their own; they only build Values and call the root package.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	jettison "github.com/noonat/jettison"
)

// FromJSON parses a single JSON document into a Value. Object key order
// is preserved, and numbers keep their identity: integer-syntax numbers
// become Int (failing with a range issue when they do not fit int64),
// everything else becomes Float. Trailing non-whitespace content after
// the document is an error.
func FromJSON(data []byte) (jettison.Value, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		return jettison.Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return jettison.Value{}, jettison.Issues{{
			Path: "/", Code: jettison.CodeTrailingData,
			Message: "content after JSON document", Offset: -1,
		}}
	}
	return v, nil
}

func readJSONValue(dec *j.Decoder) (jettison.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return jettison.Value{}, jsonIssue(err)
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *j.Decoder, tok j.Token) (jettison.Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			var pairs []jettison.Pair
			for dec.More() {
				ktok, err := dec.Token()
				if err != nil {
					return jettison.Value{}, jsonIssue(err)
				}
				key, ok := ktok.(string)
				if !ok {
					return jettison.Value{}, jettison.Issues{{
						Path: "/", Code: jettison.CodeInvalidType,
						Message: "object key is not a string", Offset: -1,
					}}
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return jettison.Value{}, err
				}
				pairs = append(pairs, jettison.KV(key, val))
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return jettison.Value{}, jsonIssue(err)
			}
			return jettison.Map(pairs...), nil
		case '[':
			var elems []jettison.Value
			for dec.More() {
				el, err := readJSONValue(dec)
				if err != nil {
					return jettison.Value{}, err
				}
				elems = append(elems, el)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return jettison.Value{}, jsonIssue(err)
			}
			return jettison.Seq(elems...), nil
		}
		return jettison.Value{}, jsonIssue(errors.New("unexpected delimiter"))
	case string:
		return jettison.String(t), nil
	case j.Number:
		return jsonNumber(t)
	case bool:
		return jettison.Bool(t), nil
	case nil:
		return jettison.Null(), nil
	default:
		return jettison.Value{}, jsonIssue(errors.New("unexpected token"))
	}
}

func jsonNumber(n j.Number) (jettison.Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return jettison.Value{}, jettison.Issues{{
				Path: "/", Code: jettison.CodeRange,
				Message: "integer " + s + " does not fit int64", Offset: -1,
			}}
		}
		return jettison.Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return jettison.Value{}, jettison.Issues{{
			Path: "/", Code: jettison.CodeEncoding,
			Message: "malformed number " + s, Offset: -1,
		}}
	}
	return jettison.Float(f), nil
}

func jsonIssue(err error) error {
	code := jettison.CodeEncoding
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		code = jettison.CodeTruncated
	}
	return jettison.Issues{{
		Path: "/", Code: code,
		Message: "invalid JSON", Cause: err, Offset: -1,
	}}
}

// ToJSON renders a Value as a compact JSON document. Mapping order is
// preserved. Bytes become base64 strings (JSON has no binary type), and
// non-finite floats are rejected because JSON cannot represent them.
func ToJSON(v jettison.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v jettison.Value) error {
	switch v.Kind() {
	case jettison.KindNull:
		buf.WriteString("null")
	case jettison.KindBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case jettison.KindInt:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case jettison.KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return jettison.Issues{{
				Path: "/", Code: jettison.CodeEncoding,
				Message: "JSON cannot represent NaN or infinity", Offset: -1,
			}}
		}
		p, err := j.Marshal(f)
		if err != nil {
			return jettison.Issues{{Path: "/", Code: jettison.CodeEncoding, Message: "marshal float", Cause: err, Offset: -1}}
		}
		buf.Write(p)
	case jettison.KindString:
		return writeJSONString(buf, v.Str())
	case jettison.KindBytes:
		return writeJSONString(buf, base64.StdEncoding.EncodeToString(v.Bin()))
	case jettison.KindSequence:
		buf.WriteByte('[')
		for i, el := range v.Elems() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case jettison.KindMapping:
		buf.WriteByte('{')
		for i, p := range v.Pairs() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, p.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	p, err := j.Marshal(s)
	if err != nil {
		return jettison.Issues{{Path: "/", Code: jettison.CodeEncoding, Message: "marshal string", Cause: err, Offset: -1}}
	}
	buf.Write(p)
	return nil
}
