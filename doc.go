package jettison

// Package jettison provides:
//
// - A self-describing tagged binary format for dynamic values (Encode/Decode/DecodeExact)
// - A stable error model via Issues (JSON Pointer path, code, byte offset)
// - A schema-based codec wire-compatible with the jettison JavaScript and Python
//   libraries (schema package)
// - JSON and CBOR bridges for transcoding documents in and out of the wire format
//   (codec package)
//
// Design policy:
// - Keep only public APIs in the root package; byte-level primitives live under internal/wire.
// - Place bridges under codec/, the schema layer under schema/, and the CLI under cmd/jettison.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v := jettison.Map(
//		jettison.KV("a", jettison.Int(1)),
//		jettison.KV("b", jettison.Seq(jettison.Bool(true), jettison.Null())),
//	)
//	data, err := jettison.Encode(v)
//	back, err := jettison.DecodeExact(data)
