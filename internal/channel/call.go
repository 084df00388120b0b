package channel

import (
	"encoding/json"
	"fmt"
	"math"
)

// MethodCall is a single inbound or outbound invocation.
type MethodCall struct {
	Method    string
	Arguments interface{}
}

// Argument returns the value stored under key when Arguments is a map.
// The second return value reports whether the key was present.
func (c MethodCall) Argument(key string) (interface{}, bool) {
	m, ok := c.Arguments.(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// HasArgument reports whether the map argument contains key.
func (c MethodCall) HasArgument(key string) bool {
	_, ok := c.Argument(key)
	return ok
}

// StringArg extracts a required string argument.
func (c MethodCall) StringArg(key string) (string, error) {
	v, ok := c.Argument(key)
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrNullArgument, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrIllegalArgument, key, v)
	}
	return s, nil
}

// IntArg extracts a required integer argument.
func (c MethodCall) IntArg(key string) (int, error) {
	v, ok := c.Argument(key)
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrNullArgument, key)
	}
	n, ok := ToInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrIllegalArgument, key, v)
	}
	return n, nil
}

// ToInt converts a decoded numeric value to int. Floats are accepted only
// when they hold an integral value.
func ToInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ToStringMap converts a decoded map whose values are strings.
// A nil value yields an empty map.
func ToStringMap(v interface{}) (map[string]string, error) {
	switch m := v.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, raw := range m {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: value for %q must be a string, got %T", ErrIllegalArgument, k, raw)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a string map, got %T", ErrIllegalArgument, v)
	}
}

// ToStringList converts a decoded list of strings.
func ToStringList(v interface{}) ([]string, error) {
	switch l := v.(type) {
	case nil:
		return nil, ErrNullArgument
	case []string:
		return l, nil
	case []interface{}:
		out := make([]string, 0, len(l))
		for i, raw := range l {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d must be a string, got %T", ErrIllegalArgument, i, raw)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a string list, got %T", ErrIllegalArgument, v)
	}
}
