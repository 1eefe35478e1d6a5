// Package mapsafe reads typed values out of loosely typed parameter maps.
package mapsafe

import (
	"encoding/json"
	"strconv"
)

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
// Numbers convert between int and float64, since JSON decoding yields float64.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	v, _ := Lookup(m, key, defaultValue)
	return v
}

// Lookup is like Get but also reports whether the key held a usable value.
func Lookup[T any](m map[string]any, key string, defaultValue T) (T, bool) {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue, false
	}

	switch any(defaultValue).(type) {
	case int:
		if n, ok := toFloat(val); ok {
			return any(int(n)).(T), true
		}
	case float64:
		if n, ok := toFloat(val); ok {
			return any(n).(T), true
		}
	case string:
		if s, ok := val.(string); ok {
			return any(s).(T), true
		}
	case bool:
		if b, ok := val.(bool); ok {
			return any(b).(T), true
		}
	default:
		// fallback: if type matches exactly
		if v2, ok := val.(T); ok {
			return v2, true
		}
	}

	return defaultValue, false
}

func toFloat(val any) (float64, bool) {
	switch x := val.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}

	return 0, false
}
