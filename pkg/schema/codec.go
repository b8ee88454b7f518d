package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Codec describes how a single value is checked against its declared type and encoded back.
type Codec[V any] struct {
	kind   string
	decode func(raw any, path Path) (V, error)
	encode func(value V) any
}

func (c Codec[V]) Kind() string {
	return c.kind
}

func String() Codec[string] {
	return Codec[string]{
		kind: "string",
		decode: func(raw any, path Path) (string, error) {
			s, ok := raw.(string)
			if !ok {
				return "", mismatch(path, "string", raw)
			}

			return s, nil
		},
		encode: func(value string) any { return value },
	}
}

func Bool() Codec[bool] {
	return Codec[bool]{
		kind: "boolean",
		decode: func(raw any, path Path) (bool, error) {
			b, ok := raw.(bool)
			if !ok {
				return false, mismatch(path, "boolean", raw)
			}

			return b, nil
		},
		encode: func(value bool) any { return value },
	}
}

// Int accepts JSON numbers without a fractional part and strings holding a base-10 integer.
func Int() Codec[int] {
	return Codec[int]{
		kind: "integer",
		decode: func(raw any, path Path) (int, error) {
			i, ok := AsInt(raw)
			if !ok {
				i, ok = parseInt(raw)
			}

			if !ok {
				return 0, mismatch(path, "integer", raw)
			}

			return i, nil
		},
		encode: func(value int) any { return value },
	}
}

// AsInt reports whether raw holds an integral number and returns it. Strings never count as numbers here.
func AsInt(raw any) (int, bool) {
	switch n := raw.(type) {
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
	case uint:
		if n > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return int(i), true
		}

		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return floatToInt(f)
	default:
		return 0, false
	}
}

func parseInt(raw any) (int, bool) {
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}

	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}

	return i, true
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int(f), true
}

// Mapping accepts any JSON object and keeps it untyped.
func Mapping() Codec[map[string]any] {
	return Codec[map[string]any]{
		kind: "object",
		decode: func(raw any, path Path) (map[string]any, error) {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, mismatch(path, "object", raw)
			}

			return m, nil
		},
		encode: func(value map[string]any) any { return value },
	}
}

// Object validates a nested record with its own schema.
func Object[C any](s *Schema[C]) Codec[C] {
	return Codec[C]{
		kind: "object:" + s.name,
		decode: func(raw any, path Path) (C, error) {
			m, ok := raw.(map[string]any)
			if !ok {
				var zero C
				return zero, mismatch(path, "object:"+s.name, raw)
			}

			rec, err := s.decode(m, path)
			if err != nil {
				return rec, &NestedError{Path: path, Err: err}
			}

			return rec, nil
		},
		encode: func(value C) any { return s.Encode(value) },
	}
}

// List validates a sequence element by element and stops at the first invalid element.
// A nil slice and an empty one are the same value: both encode to [] and [] decodes to an empty,
// non-nil slice.
func List[C any](elem Codec[C]) Codec[[]C] {
	kind := "array<" + elem.kind + ">"

	return Codec[[]C]{
		kind: kind,
		decode: func(raw any, path Path) ([]C, error) {
			if raw == nil {
				return nil, mismatch(path, kind, raw)
			}

			rv := reflect.ValueOf(raw)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return nil, mismatch(path, kind, raw)
			}

			out := make([]C, 0, rv.Len())

			for i := 0; i < rv.Len(); i++ {
				value, err := elem.decode(rv.Index(i).Interface(), path.Index(i))
				if err != nil {
					return nil, err
				}

				out = append(out, value)
			}

			return out, nil
		},
		encode: func(value []C) any {
			out := make([]any, 0, len(value))
			for _, v := range value {
				out = append(out, elem.encode(v))
			}

			return out
		},
	}
}
