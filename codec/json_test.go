package codec_test

import (
	"math"
	"testing"

	jettison "github.com/noonat/jettison"
	"github.com/noonat/jettison/codec"
)

func TestFromJSONPreservesOrderAndNumberKinds(t *testing.T) {
	v, err := codec.FromJSON([]byte(`{"a": 1, "b": [true, null], "c": 2.5}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	want := jettison.Map(
		jettison.KV("a", jettison.Int(1)),
		jettison.KV("b", jettison.Seq(jettison.Bool(true), jettison.Null())),
		jettison.KV("c", jettison.Float(2.5)),
	)
	if !v.Equal(want) {
		t.Fatalf("FromJSON mismatch: %+v", v)
	}
}

func TestFromJSONNumberEdges(t *testing.T) {
	v, err := codec.FromJSON([]byte(`1e2`))
	if err != nil {
		t.Fatalf("FromJSON(1e2): %v", err)
	}
	if !v.Equal(jettison.Float(100)) {
		t.Errorf("exponent syntax must decode as Float, got %v", v.Kind())
	}

	v, err = codec.FromJSON([]byte(`9223372036854775807`))
	if err != nil {
		t.Fatalf("FromJSON(max int64): %v", err)
	}
	if !v.Equal(jettison.Int(math.MaxInt64)) {
		t.Errorf("max int64 mismatch")
	}

	if _, err := codec.FromJSON([]byte(`9223372036854775808`)); !jettison.HasCode(err, jettison.CodeRange) {
		t.Errorf("int64 overflow: want range issue, got %v", err)
	}
}

func TestFromJSONErrors(t *testing.T) {
	if _, err := codec.FromJSON([]byte(`{"a": 1`)); !jettison.HasCode(err, jettison.CodeTruncated) {
		t.Errorf("unterminated object: want truncated, got %v", err)
	}
	if _, err := codec.FromJSON([]byte(`1 2`)); !jettison.HasCode(err, jettison.CodeTrailingData) {
		t.Errorf("two documents: want trailing_data, got %v", err)
	}
	if _, err := codec.FromJSON([]byte(``)); !jettison.HasCode(err, jettison.CodeTruncated) {
		t.Errorf("empty input: want truncated, got %v", err)
	}
}

func TestToJSON(t *testing.T) {
	v := jettison.Map(
		jettison.KV("a", jettison.Int(1)),
		jettison.KV("b", jettison.Seq(jettison.Bool(true), jettison.Null())),
		jettison.KV("blob", jettison.Bytes([]byte{1, 2, 3})),
	)
	doc, err := codec.ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	want := `{"a":1,"b":[true,null],"blob":"AQID"}`
	if string(doc) != want {
		t.Errorf("ToJSON = %s, want %s", doc, want)
	}
}

func TestToJSONRejectsNonFiniteFloats(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := codec.ToJSON(jettison.Float(f)); !jettison.HasCode(err, jettison.CodeEncoding) {
			t.Errorf("%v: want encoding issue, got %v", f, err)
		}
	}
}

func TestJSONWireRoundTrip(t *testing.T) {
	doc := []byte(`{"user":"amy","scores":[1,2,3],"active":true,"ratio":0.25}`)
	v, err := codec.FromJSON(doc)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	wire, err := jettison.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := jettison.DecodeExact(wire)
	if err != nil {
		t.Fatalf("DecodeExact: %v", err)
	}
	out, err := codec.ToJSON(back)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if string(out) != string(doc) {
		t.Errorf("round-trip = %s, want %s", out, doc)
	}
}
