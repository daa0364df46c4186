package types

import (
	"fmt"
	"strconv"
	"time"
)

// ToString converts a field value to its display form.
// Supports strings, byte slices (as returned by SQL drivers), integers,
// floats, booleans and times. nil becomes the empty string.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 && s.Nanosecond() == 0 {
			return s.Format("2006-01-02")
		}
		return s.Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// IsBlank reports whether a value counts as absent: nil, an empty string or
// an empty byte slice.
func IsBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == ""
	case []byte:
		return len(s) == 0
	default:
		return false
	}
}

// ScanValue normalizes a value scanned from database/sql into a Record value.
// Drivers hand back text columns as []byte, which is copied into a string.
func ScanValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
