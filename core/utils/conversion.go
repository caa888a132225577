package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles integer and float types, json.Number, numeric strings and byte
// slices. Values that do not parse yield 0.
func ToInt(val any) int {
	return int(ToInt64(val))
}

// ToInt64 converts various types to int64. See ToInt.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case json.Number:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	default:
		return parseInt(fmt.Sprintf("%v", v))
	}
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// ToString converts various types to string. nil becomes "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
