package internal

import (
	"strconv"
	"strings"
)

// Helpers for reading fields out of decoded JSON (the `any` values produced
// by encoding/json). The backend is loose about field names and types, so
// every accessor reports presence instead of failing.

// AsObject returns v as a JSON object.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsArray returns v as a JSON array.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// StringOf returns v if it is a JSON string.
func StringOf(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ScalarString renders a JSON scalar (string, number, bool) as a string.
// Used for ids the server sometimes sends as numbers.
func ScalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// IntOf parses v as an integer, accepting numbers and numeric strings.
func IntOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// FloatOf parses v as a float, accepting numbers and numeric strings.
func FloatOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// BoolOf returns v as a bool.
func BoolOf(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// FieldString reads a string field, "" if absent or not a string.
func FieldString(obj map[string]any, key string) string {
	s, _ := StringOf(obj[key])
	return s
}

// FieldInt reads an integer field with IntOf tolerance.
func FieldInt(obj map[string]any, key string) (int, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	return IntOf(v)
}

// FieldFloat reads a float field with FloatOf tolerance, def if missing
// or unparsable.
func FieldFloat(obj map[string]any, key string, def float64) float64 {
	v, ok := obj[key]
	if !ok {
		return def
	}
	f, ok := FloatOf(v)
	if !ok {
		return def
	}
	return f
}

// FieldBool reads a bool field, def if absent or not a bool.
func FieldBool(obj map[string]any, key string, def bool) bool {
	v, ok := obj[key]
	if !ok {
		return def
	}
	b, ok := BoolOf(v)
	if !ok {
		return def
	}
	return b
}

// FirstString walks candidate keys in order and returns the first value
// that is a non-empty string after trimming. The fallback chains the
// backend requires are declared as key lists next to each decoder, so the
// priority order stays visible and testable.
func FirstString(obj map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := StringOf(obj[key]); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// FirstInt walks candidate keys in order and returns the first value that
// parses as an integer.
func FirstInt(obj map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if n, ok := IntOf(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// StringList reads a field as a list of strings, dropping non-string
// elements. Absent or mistyped fields come back nil.
func StringList(obj map[string]any, key string) []string {
	arr, ok := AsArray(obj[key])
	if !ok {
		return nil
	}
	var out []string
	for _, v := range arr {
		if s, ok := StringOf(v); ok {
			out = append(out, s)
		}
	}
	return out
}
