package jettison_test

import (
	"fmt"
	"strings"
	"testing"

	jettison "github.com/noonat/jettison"
)

func TestIssuesErrorSummary(t *testing.T) {
	iss := jettison.Issues{
		{Path: "/a", Code: jettison.CodeUnknownTag},
		{Path: "/b", Code: jettison.CodeTruncated},
		{Path: "/c", Code: jettison.CodeRange},
		{Path: "/d", Code: jettison.CodeEncoding},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "unknown_tag at /a") {
		t.Errorf("summary missing first issue: %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Errorf("summary missing overflow count: %q", s)
	}
}

func TestAsIssuesThroughWrapping(t *testing.T) {
	_, _, err := jettison.Decode([]byte{0xaa}, 0)
	wrapped := fmt.Errorf("reading frame: %w", err)
	iss, ok := jettison.AsIssues(wrapped)
	if !ok || len(iss) != 1 {
		t.Fatalf("AsIssues failed on wrapped error: %v", wrapped)
	}
	if iss[0].Code != jettison.CodeUnknownTag {
		t.Errorf("code = %q, want unknown_tag", iss[0].Code)
	}
	if iss[0].Offset != 0 {
		t.Errorf("offset = %d, want 0", iss[0].Offset)
	}
}

func TestHasCode(t *testing.T) {
	if jettison.HasCode(nil, jettison.CodeTruncated) {
		t.Errorf("nil error must not match")
	}
	_, _, err := jettison.Decode(nil, 0)
	if !jettison.HasCode(err, jettison.CodeTruncated) {
		t.Errorf("empty input: want truncated, got %v", err)
	}
	if jettison.HasCode(err, jettison.CodeUnknownTag) {
		t.Errorf("HasCode matched the wrong code")
	}
}

func TestIssuePathsPointIntoTheValueTree(t *testing.T) {
	v := jettison.Map(
		jettison.KV("items", jettison.Seq(
			jettison.Int(1),
			jettison.String(string([]byte{0xff})),
		)),
	)
	_, err := jettison.Encode(v)
	iss, ok := jettison.AsIssues(err)
	if !ok {
		t.Fatalf("want Issues, got %v", err)
	}
	if iss[0].Path != "/items/1" {
		t.Errorf("path = %q, want /items/1", iss[0].Path)
	}
}
