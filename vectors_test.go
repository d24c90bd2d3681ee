package jettison_test

import (
	"bytes"
	"encoding/hex"
	"math"
	"os"
	"strconv"
	"testing"

	"gopkg.in/yaml.v3"

	jettison "github.com/noonat/jettison"
)

// The vector file is the live wire-format contract: a table of logical
// values with their exact v1 encodings, shared with the other jettison
// implementations. Both the encoder and the decoder are checked against
// every entry.

type vectorFile struct {
	Vectors []vectorEntry `yaml:"vectors"`
}

type vectorEntry struct {
	Name  string      `yaml:"name"`
	Value vectorValue `yaml:"value"`
	Hex   string      `yaml:"hex"`
}

type vectorValue struct {
	Kind  string        `yaml:"kind"`
	Bool  bool          `yaml:"bool"`
	Int   int64         `yaml:"int"`
	Float float64       `yaml:"float"`
	Bits  string        `yaml:"bits"` // hex of the binary64 bit pattern; overrides Float
	Str   string        `yaml:"str"`
	Bytes string        `yaml:"bytes"` // hex
	Elems []vectorValue `yaml:"elems"`
	Pairs []vectorPair  `yaml:"pairs"`
}

type vectorPair struct {
	Key   string      `yaml:"key"`
	Value vectorValue `yaml:"value"`
}

func (vv vectorValue) build(t *testing.T) jettison.Value {
	t.Helper()
	switch vv.Kind {
	case "", "null":
		return jettison.Null()
	case "bool":
		return jettison.Bool(vv.Bool)
	case "int":
		return jettison.Int(vv.Int)
	case "float":
		if vv.Bits != "" {
			bits, err := strconv.ParseUint(vv.Bits, 16, 64)
			if err != nil {
				t.Fatalf("bad float bits %q: %v", vv.Bits, err)
			}
			return jettison.Float(math.Float64frombits(bits))
		}
		return jettison.Float(vv.Float)
	case "string":
		return jettison.String(vv.Str)
	case "bytes":
		p, err := hex.DecodeString(vv.Bytes)
		if err != nil {
			t.Fatalf("bad bytes hex %q: %v", vv.Bytes, err)
		}
		return jettison.Bytes(p)
	case "sequence":
		elems := make([]jettison.Value, 0, len(vv.Elems))
		for _, el := range vv.Elems {
			elems = append(elems, el.build(t))
		}
		return jettison.Seq(elems...)
	case "mapping":
		pairs := make([]jettison.Pair, 0, len(vv.Pairs))
		for _, p := range vv.Pairs {
			pairs = append(pairs, jettison.KV(p.Key, p.Value.build(t)))
		}
		return jettison.Map(pairs...)
	default:
		t.Fatalf("unknown vector kind %q", vv.Kind)
		return jettison.Value{}
	}
}

func loadVectors(t *testing.T) []vectorEntry {
	t.Helper()
	data, err := os.ReadFile("testdata/vectors.yaml")
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var f vectorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("parse vectors: %v", err)
	}
	if len(f.Vectors) == 0 {
		t.Fatalf("vector file is empty")
	}
	return f.Vectors
}

func TestWireFormatVectors(t *testing.T) {
	for _, vec := range loadVectors(t) {
		t.Run(vec.Name, func(t *testing.T) {
			want, err := hex.DecodeString(vec.Hex)
			if err != nil {
				t.Fatalf("bad vector hex: %v", err)
			}
			v := vec.Value.build(t)

			got, err := jettison.Encode(v)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("Encode = %x, want %x", got, want)
			}

			back, err := jettison.DecodeExact(want)
			if err != nil {
				t.Fatalf("DecodeExact: %v", err)
			}
			if !back.Equal(v) {
				t.Errorf("DecodeExact produced a different value")
			}
		})
	}
}
