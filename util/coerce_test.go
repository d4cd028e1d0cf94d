package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstDefined(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   interface{}
	}{
		{name: "skips nil", values: []interface{}{nil, "a"}, want: "a"},
		{name: "skips empty string", values: []interface{}{"", "b"}, want: "b"},
		{name: "zero number is defined", values: []interface{}{float64(0), "c"}, want: float64(0)},
		{name: "false is defined", values: []interface{}{false, "d"}, want: false},
		{name: "all undefined", values: []interface{}{nil, ""}, want: nil},
		{name: "no values", values: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstDefined(tt.values...))
		})
	}
}

func TestField(t *testing.T) {
	m := map[string]interface{}{
		"IPAddresses": "10.0.0.1",
		"empty":       "",
		"Count":       float64(3),
	}

	assert.Equal(t, "10.0.0.1", Field(m, "ipAddresses"))
	assert.Equal(t, float64(3), Field(m, "count"))
	assert.Nil(t, Field(m, "empty"))
	assert.Nil(t, Field(m, "missing"))
	assert.Nil(t, Field(nil, "anything"))
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		fallback float64
		want     float64
	}{
		{name: "float passes", value: 9.8, fallback: 0, want: 9.8},
		{name: "int passes", value: 7, fallback: 0, want: 7},
		{name: "numeric string", value: "3.14", fallback: 0, want: 3.14},
		{name: "padded string", value: " 42 ", fallback: 0, want: 42},
		{name: "garbage string", value: "abc", fallback: 5, want: 5},
		{name: "NaN string guarded", value: "NaN", fallback: 5, want: 5},
		{name: "Inf string guarded", value: "+Inf", fallback: 1, want: 1},
		{name: "nil", value: nil, fallback: 2, want: 2},
		{name: "bool unsupported", value: true, fallback: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.value, tt.fallback))
		})
	}
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		fallback bool
		want     bool
	}{
		{name: "bool literal", value: true, fallback: false, want: true},
		{name: "one", value: float64(1), fallback: false, want: true},
		{name: "zero", value: float64(0), fallback: true, want: false},
		{name: "string one", value: "1", fallback: false, want: true},
		{name: "enabled", value: "Enabled", fallback: false, want: true},
		{name: "running", value: "RUNNING", fallback: false, want: true},
		{name: "offline", value: "offline", fallback: true, want: false},
		{name: "stopped", value: "stopped", fallback: true, want: false},
		{name: "unknown word falls back", value: "maybe", fallback: true, want: true},
		{name: "nil falls back", value: nil, fallback: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBoolean(tt.value, tt.fallback))
		})
	}
}

func TestDecodeMaybeBase64(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "encoded username", value: "Sm9obiBEb2U=", want: "John Doe"},
		{name: "encoded short", value: "TWFyaWE=", want: "Maria"},
		{name: "length not multiple of four", value: "Chrome", want: "Chrome"},
		{name: "decodes to non-printable", value: "abcd", want: "abcd"},
		{name: "invalid alphabet", value: "not base64!!", want: "not base64!!"},
		{name: "empty", value: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeMaybeBase64(tt.value))
		})
	}
}

func TestAsStrings(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{name: "array passes", value: []interface{}{"a", "b"}, want: []string{"a", "b"}},
		{name: "string array passes", value: []string{"x", " y "}, want: []string{"x", "y"}},
		{name: "json string parsed", value: `["10.0.0.1","10.0.0.2"]`, want: []string{"10.0.0.1", "10.0.0.2"}},
		{name: "semicolon split", value: "10.0.0.1; 10.0.0.2", want: []string{"10.0.0.1", "10.0.0.2"}},
		{name: "mixed delimiters", value: "a,b\nc", want: []string{"a", "b", "c"}},
		{name: "empty string", value: "", want: []string{}},
		{name: "number yields empty", value: float64(42), want: []string{}},
		{name: "nil yields empty", value: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsStrings(tt.value))
		})
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	if got := ParseTime("2024-05-01T10:00:00Z"); assert.NotNil(t, got) {
		assert.True(t, got.Equal(want))
	}
	if got := ParseTime("2024-05-01 10:00:00"); assert.NotNil(t, got) {
		assert.True(t, got.Equal(want))
	}
	if got := ParseTime("2024-05-01"); assert.NotNil(t, got) {
		assert.True(t, got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	}
	if got := ParseTime(float64(1714557600)); assert.NotNil(t, got) {
		assert.True(t, got.Equal(want))
	}
	if got := ParseTime(float64(1714557600000)); assert.NotNil(t, got) {
		assert.True(t, got.Equal(want))
	}

	assert.Nil(t, ParseTime("not a date"))
	assert.Nil(t, ParseTime(nil))
	assert.Nil(t, ParseTime(float64(0)))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "chrome", NormalizeName("  Chrome "))
	assert.Equal(t, "", NormalizeName("   "))
}
