package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrTrailingData = errors.New("unexpected data after the JSON value")

// Field binds a wire name and a codec to one field of the record R.
type Field[R any] struct {
	name     string
	kind     string
	required bool
	decode   func(raw any, present bool, path Path, rec *R) error
	encode   func(rec *R) any
}

// Req declares a required field: it must be present, non-null and of the codec's type.
func Req[R, V any](name string, codec Codec[V], at func(*R) *V) Field[R] {
	return Field[R]{
		name:     name,
		kind:     codec.kind,
		required: true,
		decode: func(raw any, present bool, path Path, rec *R) error {
			if !present {
				return missing(path, codec.kind)
			}

			value, err := codec.decode(raw, path)
			if err != nil {
				return err
			}

			*at(rec) = value

			return nil
		},
		encode: func(rec *R) any { return codec.encode(*at(rec)) },
	}
}

// Opt declares an optional field: absent or null leaves it as None.
func Opt[R, V any](name string, codec Codec[V], at func(*R) *Optional[V]) Field[R] {
	return Field[R]{
		name: name,
		kind: codec.kind,
		decode: func(raw any, present bool, path Path, rec *R) error {
			if !present || raw == nil {
				*at(rec) = None[V]()
				return nil
			}

			value, err := codec.decode(raw, path)
			if err != nil {
				return err
			}

			*at(rec) = Some(value)

			return nil
		},
		encode: func(rec *R) any {
			value, ok := at(rec).Get()
			if !ok {
				return nil
			}

			return codec.encode(value)
		},
	}
}

// Schema is the static descriptor of a record shape.
type Schema[R any] struct {
	name   string
	fields []Field[R]
}

func New[R any](name string, fields ...Field[R]) *Schema[R] {
	return &Schema[R]{name: name, fields: fields}
}

func (s *Schema[R]) Name() string {
	return s.name
}

// Validate checks raw against the schema and returns the typed record.
// Fields are checked in declaration order and the first failure is returned.
func (s *Schema[R]) Validate(raw map[string]any) (R, error) {
	return s.decode(raw, nil)
}

func (s *Schema[R]) ValidateAny(raw any) (R, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		var zero R
		return zero, mismatch(nil, "object:"+s.name, raw)
	}

	return s.decode(m, nil)
}

func (s *Schema[R]) Unmarshal(data []byte) (R, error) {
	raw, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		var zero R
		return zero, fmt.Errorf("failed to decode %s: %w", s.name, err)
	}

	return s.ValidateAny(raw)
}

// DecodeJSON reads exactly one JSON value from r. Numbers are kept as json.Number.
func DecodeJSON(r io.Reader) (any, error) {
	var raw any

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	err := decoder.Decode(&raw)
	if err != nil {
		return nil, err
	}

	var extra any

	err = decoder.Decode(&extra)
	if !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return raw, nil
}

func (s *Schema[R]) decode(raw map[string]any, base Path) (R, error) {
	var rec R

	for _, f := range s.fields {
		value, present := raw[f.name]

		err := f.decode(value, present, base.Field(f.name), &rec)
		if err != nil {
			var zero R
			return zero, err
		}
	}

	return rec, nil
}

// Encode turns the record back into a mapping keyed by the declared wire names.
func (s *Schema[R]) Encode(rec R) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.name] = f.encode(&rec)
	}

	return out
}

func (s *Schema[R]) Marshal(rec R) ([]byte, error) {
	data, err := json.Marshal(s.Encode(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", s.name, err)
	}

	return data, nil
}

type FieldDescriptor struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
}

type Descriptor struct {
	Name   string            `json:"name"`
	Fields []FieldDescriptor `json:"fields"`
}

func (s *Schema[R]) Describe() Descriptor {
	fields := make([]FieldDescriptor, 0, len(s.fields))
	for _, f := range s.fields {
		fields = append(fields, FieldDescriptor{Name: f.name, Kind: f.kind, Required: f.required})
	}

	return Descriptor{Name: s.name, Fields: fields}
}

// Normalize validates raw and returns the canonical mapping of the resulting record.
func (s *Schema[R]) Normalize(raw map[string]any) (map[string]any, error) {
	rec, err := s.Validate(raw)
	if err != nil {
		return nil, err
	}

	return s.Encode(rec), nil
}

// Checker is the record-agnostic view of a Schema.
type Checker interface {
	Name() string
	Describe() Descriptor
	Normalize(raw map[string]any) (map[string]any, error)
}

var _ Checker = (*Schema[struct{}])(nil)
