// Package parser decodes the loosely typed values found in campaign files.
// Every decoder tries the known shapes in order and falls back to a default
// instead of failing: the generator has written the same concept as a list,
// a number and a numeric string across versions.
package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// parseIntFromFloat parses a string that may be an integer ("32") or an
// integral float ("32.0") into int64.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid int64", s)
	}
	return int64(f), nil
}

// Count normalizes a tally that may be stored as a list of records, an
// integer, or a numeric string. Lists and objects count their elements;
// strings must be plain digits; numbers must be integral. Anything else,
// including negative values, yields 0.
func Count(v any) int {
	switch t := v.(type) {
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	case Object:
		return len(t)
	case json.Number:
		n, err := parseIntFromFloat(t.String())
		if err != nil || n < 0 {
			return 0
		}
		return int(n)
	case float64:
		if t < 0 || t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case int:
		return max(t, 0)
	case int64:
		return int(max(t, 0))
	case string:
		if !isDigits(t) {
			return 0
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Int decodes an integer code stored as a number or numeric string.
// It returns def when v holds anything else.
func Int(v any, def int) int {
	switch t := v.(type) {
	case json.Number:
		n, err := parseIntFromFloat(t.String())
		if err != nil {
			return def
		}
		return int(n)
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return def
		}
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case string:
		n, err := parseIntFromFloat(t)
		if err != nil {
			return def
		}
		return int(n)
	default:
		return def
	}
}
