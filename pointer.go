package jettison

import (
	"strconv"
	"strings"
)

// Issue paths are JSON Pointers into the value tree (RFC 6901), with ""
// meaning the top-level value. Rendered lazily on the error path only.

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func itoa(i int) string { return strconv.Itoa(i) }

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
