package rtl433

import (
	"fmt"
	"math"
	"strconv"
)

// FieldSet offers typed helpers on top of a decoded record.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	if fs.data == nil {
		return nil, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Uint returns the field coerced to uint64. Negative values are rejected.
func (fs FieldSet) Uint(key string) (uint64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case int, int32, int64:
		i, _ := fs.Int(key)
		if i < 0 {
			return 0, fmt.Errorf("field %q is negative", key)
		}
		return uint64(i), nil
	case string:
		u, err := strconv.ParseUint(n, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not unsigned: %w", key, err)
		}
		return u, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// Int returns the field coerced to int64.
func (fs FieldSet) Int(key string) (int64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint:
		return unsignedToInt(key, uint64(n))
	case uint64:
		return unsignedToInt(key, n)
	case float64:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not integer: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

func unsignedToInt(key string, u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("field %q overflows int64: %d", key, u)
	}
	return int64(u), nil
}

// String returns the field as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Hex returns an integer field formatted as 0x-prefixed hex, zero padded to
// digits.
func (fs FieldSet) Hex(key string, digits int) (string, error) {
	u, err := fs.Uint(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%0*X", digits, u), nil
}
