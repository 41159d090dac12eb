package slugid

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Write Spec", "write-spec"},
		{"Hello_World", "hello-world"},
		{"  spaced  out  ", "spaced-out"},
		{"Crème Brûlée", "creme-brulee"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"trailing---", "trailing"},
		{"100% done!", "100-done"},
	}
	for _, tc := range cases {
		got := Generate(tc.in)
		if got != tc.want {
			t.Fatalf("Generate(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !slugPattern.MatchString(got) {
			t.Fatalf("Generate(%q) = %q does not match slug pattern", tc.in, got)
		}
	}
}

func TestGenerateFallback(t *testing.T) {
	for _, in := range []string{"", "!!!", "___", "---", "  "} {
		if got := Generate(in); got != FallbackSlug {
			t.Fatalf("Generate(%q) = %q, want fallback", in, got)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	if Generate("Same Input") != Generate("Same Input") {
		t.Fatal("identical input must yield identical slugs")
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
