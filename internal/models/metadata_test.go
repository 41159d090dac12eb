package models

import (
	"testing"
	"time"
)

func TestParseMetadataValueInference(t *testing.T) {
	cases := []struct {
		raw  string
		want MetadataType
	}{
		{"42", MetadataInt},
		{"-7", MetadataInt},
		{"3.14", MetadataFloat},
		{"2024-06-01T12:00:00Z", MetadataDatetime},
		{"2024-06-01", MetadataDatetime},
		{"true", MetadataBool},
		{"No", MetadataBool},
		{`{"a": 1}`, MetadataJSON},
		{`[1, 2, 3]`, MetadataJSON},
		{"hello world", MetadataString},
		{"null", MetadataString},
	}
	for _, tc := range cases {
		value, err := ParseMetadataValue(tc.raw, "")
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if value.Type != tc.want {
			t.Fatalf("parse %q: expected %s, got %s", tc.raw, tc.want, value.Type)
		}
	}
}

func TestParseMetadataValueExplicitType(t *testing.T) {
	value, err := ParseMetadataValue("1", MetadataBool)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value.Type != MetadataBool || !value.Bool {
		t.Fatalf("expected bool true, got %+v", value)
	}

	// Forcing a type that cannot hold the value is a validation error.
	if _, err := ParseMetadataValue("abc", MetadataInt); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParseMetadataValue("not json", MetadataJSON); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// "3.14" as explicit string stays a string.
	value, err = ParseMetadataValue("3.14", MetadataString)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value.Type != MetadataString || value.String != "3.14" {
		t.Fatalf("expected string 3.14, got %+v", value)
	}
}

func TestMetadataValueNative(t *testing.T) {
	value, err := ParseMetadataValue("3.14", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := value.Value(); got != 3.14 {
		t.Fatalf("expected 3.14, got %v", got)
	}

	ts, _ := ParseMetadataValue("2024-06-01T12:00:00Z", "")
	native, ok := ts.Value().(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", ts.Value())
	}
	if native.Year() != 2024 {
		t.Fatalf("unexpected time: %v", native)
	}

	doc, _ := ParseMetadataValue(`{"a": 1}`, "")
	decoded, ok := doc.Value().(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", doc.Value())
	}
	if decoded["a"] != float64(1) {
		t.Fatalf("unexpected json value: %v", decoded)
	}
}
