package model

import "encoding/json"

// Record is a flat key/value row, the unit handed to the storage
// collaborator. Values are primitives, int slices, or the typed stats
// structs; absent columns hold nil after schema standardization.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Int reads an integer-valued column. Raw payload fields decoded with
// json.Number and engine-produced ints are both handled.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// String reads a string-valued column.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}
