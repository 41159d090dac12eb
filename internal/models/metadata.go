package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MetadataType names the typed column a metadata value is stored in.
type MetadataType string

const (
	MetadataString   MetadataType = "string"
	MetadataInt      MetadataType = "int"
	MetadataFloat    MetadataType = "float"
	MetadataDatetime MetadataType = "datetime"
	MetadataBool     MetadataType = "bool"
	MetadataJSON     MetadataType = "json"
)

var validMetadataTypes = map[MetadataType]struct{}{
	MetadataString:   {},
	MetadataInt:      {},
	MetadataFloat:    {},
	MetadataDatetime: {},
	MetadataBool:     {},
	MetadataJSON:     {},
}

func IsValidMetadataType(t MetadataType) bool {
	_, ok := validMetadataTypes[t]
	return ok
}

// MetadataValue is a typed key/value attribute on a task. Exactly one of
// the value fields is populated, matching Type.
type MetadataValue struct {
	TaskID string       `json:"task_id"`
	Key    string       `json:"key"`
	Type   MetadataType `json:"type"`

	String   string    `json:"-"`
	Int      int64     `json:"-"`
	Float    float64   `json:"-"`
	Datetime time.Time `json:"-"`
	Bool     bool      `json:"-"`
	JSON     string    `json:"-"`
}

// Value returns the native representation dispatched on Type. JSON values
// are returned decoded.
func (m *MetadataValue) Value() any {
	switch m.Type {
	case MetadataInt:
		return m.Int
	case MetadataFloat:
		return m.Float
	case MetadataDatetime:
		return m.Datetime
	case MetadataBool:
		return m.Bool
	case MetadataJSON:
		var decoded any
		if err := json.Unmarshal([]byte(m.JSON), &decoded); err != nil {
			return m.JSON
		}
		return decoded
	default:
		return m.String
	}
}

// MarshalJSON renders the metadata entry with its native value.
func (m *MetadataValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TaskID string       `json:"task_id"`
		Key    string       `json:"key"`
		Type   MetadataType `json:"type"`
		Value  any          `json:"value"`
	}{m.TaskID, m.Key, m.Type, m.Value()})
}

// ParseMetadataValue converts a raw string into a typed metadata value.
// When explicitType is empty the type is inferred by trying int, float,
// ISO-8601 datetime, bool, then JSON object/array, falling back to string.
// The ordered cascade keeps numeric strings from being stored as text.
func ParseMetadataValue(raw string, explicitType MetadataType) (MetadataValue, error) {
	if explicitType != "" {
		return coerceMetadataValue(raw, explicitType)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return MetadataValue{Type: MetadataInt, Int: i}, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return MetadataValue{Type: MetadataFloat, Float: f}, nil
	}
	if ts, ok := parseDatetime(raw); ok {
		return MetadataValue{Type: MetadataDatetime, Datetime: ts}, nil
	}
	if b, ok := parseBoolWord(raw); ok {
		return MetadataValue{Type: MetadataBool, Bool: b}, nil
	}
	if isJSONDocument(raw) {
		return MetadataValue{Type: MetadataJSON, JSON: raw}, nil
	}
	return MetadataValue{Type: MetadataString, String: raw}, nil
}

func coerceMetadataValue(raw string, t MetadataType) (MetadataValue, error) {
	switch t {
	case MetadataInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return MetadataValue{}, Validationf("invalid int value: %s", raw)
		}
		return MetadataValue{Type: t, Int: i}, nil
	case MetadataFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return MetadataValue{}, Validationf("invalid float value: %s", raw)
		}
		return MetadataValue{Type: t, Float: f}, nil
	case MetadataDatetime:
		ts, ok := parseDatetime(raw)
		if !ok {
			return MetadataValue{}, Validationf("invalid datetime value: %s", raw)
		}
		return MetadataValue{Type: t, Datetime: ts}, nil
	case MetadataBool:
		b, ok := parseBoolWord(raw)
		if !ok {
			return MetadataValue{}, Validationf("invalid bool value: %s", raw)
		}
		return MetadataValue{Type: t, Bool: b}, nil
	case MetadataJSON:
		if !json.Valid([]byte(raw)) {
			return MetadataValue{}, Validationf("invalid json value: %s", raw)
		}
		return MetadataValue{Type: t, JSON: raw}, nil
	case MetadataString:
		return MetadataValue{Type: t, String: raw}, nil
	default:
		return MetadataValue{}, Validationf("invalid metadata type: %s", t)
	}
}

// datetimeLayouts covers ISO-8601 with and without offset or time part.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDatetime(raw string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseBoolWord accepts true/false/yes/no/1/0 case-insensitively. Bare
// digits never reach here during inference (int parses first); they matter
// when the caller requests bool explicitly.
func parseBoolWord(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}

// isJSONDocument accepts only objects and arrays. Scalar JSON (quoted
// strings, null) stays a plain string so round-trips are predictable.
func isJSONDocument(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}
