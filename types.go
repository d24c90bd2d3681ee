package jettison

// Severity expresses how strictly a condition is enforced.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DefaultMaxDepth bounds container nesting in both directions when the
// caller does not choose a limit. Generous for real documents, small
// enough to keep adversarial input off the host stack.
const DefaultMaxDepth = 1000

// EncodeOpt bundles encoding options.
type EncodeOpt struct {
	// MaxDepth overrides DefaultMaxDepth when > 0.
	MaxDepth int
}

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// MaxDepth overrides DefaultMaxDepth when > 0.
	MaxDepth int
	// MaxBytes rejects input buffers longer than this many bytes when > 0.
	// Callers decoding untrusted network input should set it.
	MaxBytes int64
	// OnDuplicateKey escalates repeated mapping keys. Ignore (the default)
	// and Warn keep the wire content as-is; Error fails the decode.
	OnDuplicateKey Severity
}

func (o EncodeOpt) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

func (o DecodeOpt) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}
