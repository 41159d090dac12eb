package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestJSONFormatterCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSONFormatter{}).Write(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestJSONFormatterIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSONFormatter{Indent: "  "}).Write(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\": 1\n") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}
