// Package util provides tolerant coercion primitives for the raw device
// payloads, CVSS vector scoring, and version comparison helpers.
package util

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FirstDefined returns the first value that is not nil and not an empty
// string, else nil. Used throughout the normalizers to reconcile
// PascalCase/camelCase/synonym field names from heterogeneous producers.
func FirstDefined(values ...interface{}) interface{} {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v
	}
	return nil
}

// Field resolves the first defined value among candidate key names in a
// raw JSON map. Each key is tried exactly, then case-insensitively, so
// upstream producers that emit "IPAddresses", "ipaddresses" or
// "ipAddresses" all resolve to the same canonical field.
func Field(m map[string]interface{}, keys ...string) interface{} {
	if m == nil {
		return nil
	}
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if r := FirstDefined(v); r != nil {
				return r
			}
			continue
		}
		for mk, v := range m {
			if strings.EqualFold(mk, key) {
				if r := FirstDefined(v); r != nil {
					return r
				}
				break
			}
		}
	}
	return nil
}

// SubMap returns the named sub-object of a raw map, tolerating case
// variations, or nil when absent or not an object.
func SubMap(m map[string]interface{}, keys ...string) map[string]interface{} {
	if sub, ok := Field(m, keys...).(map[string]interface{}); ok {
		return sub
	}
	return nil
}

// ToNumber coerces a value to float64, returning fallback when the
// result is not finite. Guards every numeric path against NaN/Infinity.
func ToNumber(value interface{}, fallback float64) float64 {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return fallback
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// ToInt coerces a value to int via ToNumber.
func ToInt(value interface{}, fallback int) int {
	return int(ToNumber(value, float64(fallback)))
}

// ToString coerces a value to its string form, returning fallback for
// nil and non-scalar values.
func ToString(value interface{}, fallback string) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	}
	return fallback
}

var truthyWords = map[string]bool{"true": true, "yes": true, "enabled": true, "online": true, "running": true}
var falsyWords = map[string]bool{"false": true, "no": true, "disabled": true, "offline": true, "stopped": true}

// ToBoolean coerces boolean literals, 1/0, and a fixed vocabulary of
// status words (case-insensitive) to bool, else returns fallback.
func ToBoolean(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		if v == 1 {
			return true
		}
		if v == 0 {
			return false
		}
	case int:
		if v == 1 {
			return true
		}
		if v == 0 {
			return false
		}
	case string:
		word := strings.ToLower(strings.TrimSpace(v))
		if word == "1" {
			return true
		}
		if word == "0" {
			return false
		}
		if truthyWords[word] {
			return true
		}
		if falsyWords[word] {
			return false
		}
	}
	return fallback
}

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)

// DecodeMaybeBase64 attempts a base64 decode only when the string
// matches the base64 alphabet and has length divisible by 4, and
// accepts the decode only when the result is exclusively printable
// ASCII or whitespace. Usernames are sometimes base64-encoded upstream;
// a plain-text value that merely looks base64-ish must never be
// corrupted, so anything failing the guards is returned unchanged.
func DecodeMaybeBase64(value string) string {
	if value == "" || len(value)%4 != 0 || !base64Pattern.MatchString(value) {
		return value
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(decoded) == 0 {
		return value
	}
	for _, b := range decoded {
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return value
		}
	}
	return string(decoded)
}

// AsStrings coerces a value to a list of strings: arrays pass through,
// JSON-looking strings are parsed, other strings are split on ";", ","
// and newlines with each element trimmed. Non-string, non-array inputs
// yield an empty list.
func AsStrings(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return compactStrings(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(ToString(item, "")); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return []string{}
		}
		if strings.HasPrefix(trimmed, "[") {
			var parsed []interface{}
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				return AsStrings(parsed)
			}
		}
		parts := strings.FieldsFunc(trimmed, func(r rune) bool {
			return r == ';' || r == ',' || r == '\n'
		})
		return compactStrings(parts)
	}
	return []string{}
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp value (RFC3339 variants, date-only, or
// epoch seconds/milliseconds) into UTC. Unparseable values yield nil,
// which callers treat as absent rather than as an error.
func ParseTime(value interface{}) *time.Time {
	switch v := value.(type) {
	case time.Time:
		t := v.UTC()
		return &t
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return ParseTime(n)
		}
		return nil
	case float64, int, int64, json.Number:
		n := ToNumber(v, 0)
		if n <= 0 {
			return nil
		}
		var t time.Time
		if n >= 1e12 { // epoch milliseconds
			t = time.UnixMilli(int64(n)).UTC()
		} else {
			t = time.Unix(int64(n), 0).UTC()
		}
		return &t
	}
	return nil
}

// NormalizeName is the canonical form used for app-to-CVE name
// matching: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
