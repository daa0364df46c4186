package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stringerValue struct{ v string }

func (s stringerValue) String() string { return "S:" + s.v }

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string", input: "Open", expected: "Open"},
		{name: "bytes", input: []byte("Closed"), expected: "Closed"},
		{name: "int64", input: int64(42), expected: "42"},
		{name: "int", input: 7, expected: "7"},
		{name: "int32", input: int32(-3), expected: "-3"},
		{name: "uint64", input: uint64(1000), expected: "1000"},
		{name: "float64", input: 12.5, expected: "12.5"},
		{name: "float64 integral", input: float64(3), expected: "3"},
		{name: "float32", input: float32(0.25), expected: "0.25"},
		{name: "bool", input: true, expected: "true"},
		{name: "date", input: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), expected: "2024-03-01"},
		{name: "datetime", input: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), expected: "2024-03-01T09:30:00Z"},
		{name: "stringer", input: stringerValue{"x"}, expected: "S:x"},
		{name: "fallback", input: []int{1, 2}, expected: "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToString(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{name: "nil", input: nil, expected: true},
		{name: "empty string", input: "", expected: true},
		{name: "empty bytes", input: []byte{}, expected: true},
		{name: "text", input: "Acme", expected: false},
		{name: "zero int", input: 0, expected: false},
		{name: "false", input: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBlank(tt.input))
		})
	}
}

func TestScanValue(t *testing.T) {
	assert.Equal(t, "abc", ScanValue([]byte("abc")))
	assert.Equal(t, int64(5), ScanValue(int64(5)))
	assert.Nil(t, ScanValue(nil))
}
