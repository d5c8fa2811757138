package parser

import (
	"encoding/json"
	"strconv"
)

// Object is a decoded JSON object whose schema is not fixed. Campaign
// generator versions disagree on field names and value types, so callers read
// through the accessors below instead of type-asserting at every call site.
type Object map[string]any

// AsObject reports whether v is a JSON object and returns it as an Object.
func AsObject(v any) (Object, bool) {
	switch o := v.(type) {
	case Object:
		return o, o != nil
	case map[string]any:
		return Object(o), o != nil
	default:
		return nil, false
	}
}

// Has reports whether key is present, even with a null value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String renders the value under key as text. Missing and null values yield "".
func (o Object) String(key string) string {
	return Text(o[key])
}

// StringOr renders the value under key as text, or def when the key is missing
// or null. A present empty string is returned as-is.
func (o Object) StringOr(key, def string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	return Text(v)
}

// FirstString returns the first non-empty text among keys.
func (o Object) FirstString(keys ...string) string {
	for _, k := range keys {
		if s := o.String(k); s != "" {
			return s
		}
	}
	return ""
}

// Object returns the nested object under key, or nil.
func (o Object) Object(key string) Object {
	nested, _ := AsObject(o[key])
	return nested
}

// Array returns the array under key, or nil.
func (o Object) Array(key string) []any {
	arr, _ := o[key].([]any)
	return arr
}

// Text renders a scalar JSON value as a string. Containers and null render
// as "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsCompactDate reports whether s looks like a YYYYMMDD date token.
func IsCompactDate(s string) bool {
	return len(s) == 8 && isDigits(s)
}
