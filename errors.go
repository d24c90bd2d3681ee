package jettison

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeUnknownTag    = "unknown_tag"    // decode hit a tag byte outside the registry
	CodeTruncated     = "truncated"      // decode needed more bytes than remained
	CodeTrailingData  = "trailing_data"  // DecodeExact left unconsumed bytes
	CodeEncoding      = "encoding"       // invalid UTF-8 or malformed payload bytes
	CodeRange         = "range"          // numeric value outside the committed width
	CodeDepthExceeded = "depth_exceeded" // nesting beyond the configured limit
	CodeCyclicValue   = "cyclic_value"   // encoder found a self-referential container
	CodeTooBig        = "too_big"        // decode input exceeds DecodeOpt.MaxBytes
	CodeDuplicateKey  = "duplicate_key"  // repeated mapping key under a strict DecodeOpt
	CodeInvalidType   = "invalid_type"   // schema/bridge layers: Go value of the wrong type
)

// Issue represents a single codec error.
type Issue struct {
	Path    string // JSON Pointer into the value tree (for example: /items/2).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int   // Byte offset in the input buffer (-1 when unknown or encode-side).
}

// Issues is a collection of codec errors that implements error. The core
// codec fails fast, so decode and encode surface exactly one Issue; the
// schema layer may accumulate several.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_tag at /items/2
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func issuef(path, code string, offset int, format string, args ...any) Issues {
	return Issues{{Path: normalizePointer(path), Code: code, Message: fmt.Sprintf(format, args...), Offset: offset}}
}
