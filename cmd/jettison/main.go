// Command jettison converts JSON documents to and from the jettison
// tagged wire format. It is a thin wrapper over the public Encode and
// Decode entry points and contains no format logic.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	jettison "github.com/noonat/jettison"
	"github.com/noonat/jettison/codec"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "encode":
		encodeCmd(os.Args[2:])
	case "decode":
		decodeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jettison CLI\n\nUsage:\n  jettison encode [-o out.bin] [in.json]\n  jettison decode [-o out.json] [in.bin]\n\nReads stdin when no input file is given; writes stdout when -o is omitted.")
}

func encodeCmd(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var out string
	var maxDepth int
	fs.StringVar(&out, "o", "", "output filename")
	fs.IntVar(&maxDepth, "max-depth", 0, "container nesting limit (0 = default)")
	_ = fs.Parse(args)

	data := readInput(fs.Arg(0))
	v, err := codec.FromJSON(data)
	if err != nil {
		fatal(err)
	}
	wire, err := jettison.Encode(v, jettison.EncodeOpt{MaxDepth: maxDepth})
	if err != nil {
		fatal(err)
	}
	writeOutput(out, wire)
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var out string
	var maxDepth int
	var maxBytes int64
	fs.StringVar(&out, "o", "", "output filename")
	fs.IntVar(&maxDepth, "max-depth", 0, "container nesting limit (0 = default)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "reject inputs larger than this many bytes (0 = unlimited)")
	_ = fs.Parse(args)

	data := readInput(fs.Arg(0))
	v, err := jettison.DecodeExact(data, jettison.DecodeOpt{MaxDepth: maxDepth, MaxBytes: maxBytes})
	if err != nil {
		fatal(err)
	}
	doc, err := codec.ToJSON(v)
	if err != nil {
		fatal(err)
	}
	writeOutput(out, append(doc, '\n'))
}

func readInput(path string) []byte {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fatal(err)
	}
	return data
}

func writeOutput(path string, data []byte) {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			fatal(err)
		}
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jettison:", err)
	os.Exit(1)
}
