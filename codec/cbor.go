package codec

import (
	"math"
	"sort"

	"github.com/fxamacker/cbor/v2"

	jettison "github.com/noonat/jettison"
)

// cborEnc is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical data always produces
// identical bytes.
var cborEnc cbor.EncMode

// cborDec is the CBOR decoder configured to decode maps as
// map[string]any; jettison mappings never use non-string keys.
var cborDec cbor.DecMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR renders a Value as deterministic CBOR for interop with CBOR
// tooling. CBOR map keys are sorted by the deterministic encoding, so
// mapping insertion order is not preserved; a mapping with duplicate
// keys is rejected.
func ToCBOR(v jettison.Value) ([]byte, error) {
	a, err := valueToAny(v)
	if err != nil {
		return nil, err
	}
	p, err := cborEnc.Marshal(a)
	if err != nil {
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeEncoding,
			Message: "CBOR marshal failed", Cause: err, Offset: -1,
		}}
	}
	return p, nil
}

// FromCBOR decodes a CBOR document into a Value. Map pairs are ordered
// by key so the result is deterministic regardless of the input's map
// order.
func FromCBOR(data []byte) (jettison.Value, error) {
	var a any
	if err := cborDec.Unmarshal(data, &a); err != nil {
		return jettison.Value{}, jettison.Issues{{
			Path: "/", Code: jettison.CodeEncoding,
			Message: "CBOR unmarshal failed", Cause: err, Offset: -1,
		}}
	}
	return anyToValue(a)
}

func valueToAny(v jettison.Value) (any, error) {
	switch v.Kind() {
	case jettison.KindNull:
		return nil, nil
	case jettison.KindBool:
		return v.Bool(), nil
	case jettison.KindInt:
		return v.Int(), nil
	case jettison.KindFloat:
		return v.Float(), nil
	case jettison.KindString:
		return v.Str(), nil
	case jettison.KindBytes:
		return v.Bin(), nil
	case jettison.KindSequence:
		out := make([]any, 0, v.Len())
		for _, el := range v.Elems() {
			a, err := valueToAny(el)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	case jettison.KindMapping:
		out := make(map[string]any, v.Len())
		for _, p := range v.Pairs() {
			if _, dup := out[p.Key]; dup {
				return nil, jettison.Issues{{
					Path: "/" + p.Key, Code: jettison.CodeDuplicateKey,
					Message: "CBOR maps cannot hold duplicate keys", Offset: -1,
				}}
			}
			a, err := valueToAny(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Key] = a
		}
		return out, nil
	default:
		return nil, jettison.Issues{{
			Path: "/", Code: jettison.CodeInvalidType,
			Message: "invalid value kind", Offset: -1,
		}}
	}
}

func anyToValue(a any) (jettison.Value, error) {
	switch t := a.(type) {
	case nil:
		return jettison.Null(), nil
	case bool:
		return jettison.Bool(t), nil
	case int64:
		return jettison.Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return jettison.Value{}, jettison.Issues{{
				Path: "/", Code: jettison.CodeRange,
				Message: "unsigned integer does not fit int64", Offset: -1,
			}}
		}
		return jettison.Int(int64(t)), nil
	case float32:
		return jettison.Float(float64(t)), nil
	case float64:
		return jettison.Float(t), nil
	case string:
		return jettison.String(t), nil
	case []byte:
		return jettison.Bytes(t), nil
	case []any:
		elems := make([]jettison.Value, 0, len(t))
		for _, el := range t {
			v, err := anyToValue(el)
			if err != nil {
				return jettison.Value{}, err
			}
			elems = append(elems, v)
		}
		return jettison.Seq(elems...), nil
	case map[any]any:
		return cborMapToValue(t)
	case map[string]any:
		m := make(map[any]any, len(t))
		for k, v := range t {
			m[k] = v
		}
		return cborMapToValue(m)
	default:
		return jettison.Value{}, jettison.Issues{{
			Path: "/", Code: jettison.CodeInvalidType,
			Message: "CBOR value has no jettison representation", Offset: -1,
		}}
	}
}

func cborMapToValue(m map[any]any) (jettison.Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		ks, ok := k.(string)
		if !ok {
			return jettison.Value{}, jettison.Issues{{
				Path: "/", Code: jettison.CodeInvalidType,
				Message: "CBOR map key is not a string", Offset: -1,
			}}
		}
		keys = append(keys, ks)
	}
	sort.Strings(keys)
	pairs := make([]jettison.Pair, 0, len(keys))
	for _, k := range keys {
		v, err := anyToValue(m[k])
		if err != nil {
			return jettison.Value{}, err
		}
		pairs = append(pairs, jettison.KV(k, v))
	}
	return jettison.Map(pairs...), nil
}
