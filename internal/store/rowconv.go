package store

import "time"

// Coercion helpers for reading Row values. Remote drivers and the in-memory
// implementation disagree on the concrete Go types they hand back (int64 vs
// int, []byte vs string), so consumers go through these instead of direct
// type assertions. Missing keys and mismatched types yield zero values.

func String(r Row, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func Int(r Row, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func Float(r Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func Time(r Row, key string) time.Time {
	if v, ok := r[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}
