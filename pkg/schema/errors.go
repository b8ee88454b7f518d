package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrFieldMissing = errors.New("field missing")
	ErrTypeMismatch = errors.New("type mismatch")
)

// FieldError is a leaf validation failure. Path is absolute from the validated root.
type FieldError struct {
	Path     Path
	Reason   error
	Expected string
	Actual   string
}

func (e *FieldError) Error() string {
	if errors.Is(e.Reason, ErrFieldMissing) {
		return fmt.Sprintf("%s: %v (expected %s)", e.Path, e.Reason, e.Expected)
	}

	return fmt.Sprintf("%s: %v (expected %s, got %s)", e.Path, e.Reason, e.Expected, e.Actual)
}

func (e *FieldError) Unwrap() error {
	return e.Reason
}

// NestedError wraps the failure of a nested record found at Path.
type NestedError struct {
	Path Path
	Err  error
}

func (e *NestedError) Error() string {
	return e.Err.Error()
}

func (e *NestedError) Unwrap() error {
	return e.Err
}

// FieldPath returns the path of the innermost failing field.
func (e *NestedError) FieldPath() Path {
	var leaf *FieldError
	if errors.As(e.Err, &leaf) {
		return leaf.Path
	}

	return e.Path
}

func missing(path Path, expected string) error {
	return &FieldError{Path: path, Reason: ErrFieldMissing, Expected: expected}
}

func mismatch(path Path, expected string, raw any) error {
	return &FieldError{Path: path, Reason: ErrTypeMismatch, Expected: expected, Actual: kindOf(raw)}
}

func kindOf(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, json.Number,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	}

	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
