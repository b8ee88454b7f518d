package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	Label string
}

type crate struct {
	Code    string
	Weight  int
	Fragile Optional[bool]
	Note    Optional[string]
	Main    tag
	Tags    []tag
	Extra   Optional[map[string]any]
}

var tagSchema = New("Tag",
	Req("label", String(), func(t *tag) *string { return &t.Label }),
)

var crateSchema = New("Crate",
	Req("code", String(), func(c *crate) *string { return &c.Code }),
	Req("weight", Int(), func(c *crate) *int { return &c.Weight }),
	Opt("fragile", Bool(), func(c *crate) *Optional[bool] { return &c.Fragile }),
	Opt("note", String(), func(c *crate) *Optional[string] { return &c.Note }),
	Req("main", Object(tagSchema), func(c *crate) *tag { return &c.Main }),
	Req("tags", List(Object(tagSchema)), func(c *crate) *[]tag { return &c.Tags }),
	Opt("extra", Mapping(), func(c *crate) *Optional[map[string]any] { return &c.Extra }),
)

func validCrate() map[string]any {
	return map[string]any{
		"code":   "c-1",
		"weight": float64(12),
		"main":   map[string]any{"label": "top"},
		"tags":   []any{map[string]any{"label": "a"}, map[string]any{"label": "b"}},
	}
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid payload", func(t *testing.T) {
		t.Parallel()

		got, err := crateSchema.Validate(validCrate())
		require.NoError(t, err)

		assert.Equal(t, crate{
			Code:   "c-1",
			Weight: 12,
			Main:   tag{Label: "top"},
			Tags:   []tag{{Label: "a"}, {Label: "b"}},
		}, got)
		assert.False(t, got.Note.IsPresent())
		assert.False(t, got.Extra.IsPresent())
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		t.Parallel()

		raw := validCrate()
		raw["color"] = "red"

		_, err := crateSchema.Validate(raw)
		require.NoError(t, err)
	})

	t.Run("explicit null on optional fields", func(t *testing.T) {
		t.Parallel()

		raw := validCrate()
		raw["note"] = nil
		raw["fragile"] = nil
		raw["extra"] = nil

		got, err := crateSchema.Validate(raw)
		require.NoError(t, err)
		assert.Equal(t, None[string](), got.Note)
		assert.Equal(t, None[bool](), got.Fragile)
		assert.Equal(t, None[map[string]any](), got.Extra)
	})

	t.Run("present optional fields", func(t *testing.T) {
		t.Parallel()

		raw := validCrate()
		raw["note"] = "handle with care"
		raw["fragile"] = true
		raw["extra"] = map[string]any{"anything": []any{1.0, "x"}}

		got, err := crateSchema.Validate(raw)
		require.NoError(t, err)
		assert.Equal(t, Some("handle with care"), got.Note)
		assert.Equal(t, Some(true), got.Fragile)
		assert.Equal(t, Some(map[string]any{"anything": []any{1.0, "x"}}), got.Extra)
	})

	t.Run("numeric strings for integers", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]int{"12": 12, " 7 ": 7, "-3": -3, "0": 0} {
			payload := validCrate()
			payload["weight"] = raw

			got, err := crateSchema.Validate(payload)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got.Weight, raw)
		}
	})

	t.Run("empty sequence", func(t *testing.T) {
		t.Parallel()

		raw := validCrate()
		raw["tags"] = []any{}

		got, err := crateSchema.Validate(raw)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})
}

func TestSchema_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(raw map[string]any)
		reason   error
		path     string
		nested   bool
		expected string
		actual   string
	}{
		{
			name:     "missing required string",
			mutate:   func(raw map[string]any) { delete(raw, "code") },
			reason:   ErrFieldMissing,
			path:     "code",
			expected: "string",
		},
		{
			name:     "null required string",
			mutate:   func(raw map[string]any) { raw["code"] = nil },
			reason:   ErrTypeMismatch,
			path:     "code",
			expected: "string",
			actual:   "null",
		},
		{
			name:     "number for a string",
			mutate:   func(raw map[string]any) { raw["code"] = 7.0 },
			reason:   ErrTypeMismatch,
			path:     "code",
			expected: "string",
			actual:   "number",
		},
		{
			name:     "fractional integer",
			mutate:   func(raw map[string]any) { raw["weight"] = 1.5 },
			reason:   ErrTypeMismatch,
			path:     "weight",
			expected: "integer",
			actual:   "number",
		},
		{
			name:     "non-numeric string for an integer",
			mutate:   func(raw map[string]any) { raw["weight"] = "twelve" },
			reason:   ErrTypeMismatch,
			path:     "weight",
			expected: "integer",
			actual:   "string",
		},
		{
			name:     "fractional string for an integer",
			mutate:   func(raw map[string]any) { raw["weight"] = "12.5" },
			reason:   ErrTypeMismatch,
			path:     "weight",
			expected: "integer",
			actual:   "string",
		},
		{
			name:     "wrong optional type",
			mutate:   func(raw map[string]any) { raw["note"] = false },
			reason:   ErrTypeMismatch,
			path:     "note",
			expected: "string",
			actual:   "boolean",
		},
		{
			name:     "nested record is not an object",
			mutate:   func(raw map[string]any) { raw["main"] = "top" },
			reason:   ErrTypeMismatch,
			path:     "main",
			expected: "object:Tag",
			actual:   "string",
		},
		{
			name:     "nested field missing",
			mutate:   func(raw map[string]any) { raw["main"] = map[string]any{} },
			reason:   ErrFieldMissing,
			path:     "main.label",
			nested:   true,
			expected: "string",
		},
		{
			name:     "sequence is not an array",
			mutate:   func(raw map[string]any) { raw["tags"] = map[string]any{} },
			reason:   ErrTypeMismatch,
			path:     "tags",
			expected: "array<object:Tag>",
			actual:   "object",
		},
		{
			name: "invalid sequence element",
			mutate: func(raw map[string]any) {
				raw["tags"] = []any{map[string]any{"label": "a"}, map[string]any{"label": 3.0}}
			},
			reason:   ErrTypeMismatch,
			path:     "tags[1].label",
			nested:   true,
			expected: "string",
			actual:   "number",
		},
		{
			name:     "untyped mapping with an array",
			mutate:   func(raw map[string]any) { raw["extra"] = []any{} },
			reason:   ErrTypeMismatch,
			path:     "extra",
			expected: "object",
			actual:   "array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := validCrate()
			tt.mutate(raw)

			_, err := crateSchema.Validate(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.reason)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.path, fieldErr.Path.String())
			assert.Equal(t, tt.expected, fieldErr.Expected)
			assert.Equal(t, tt.actual, fieldErr.Actual)
			assert.Contains(t, err.Error(), tt.path)

			var nestedErr *NestedError
			assert.Equal(t, tt.nested, errors.As(err, &nestedErr))

			if tt.nested {
				assert.Equal(t, tt.path, nestedErr.FieldPath().String())
			}
		})
	}
}

func TestSchema_Validate_SequenceIndex(t *testing.T) {
	t.Parallel()

	raw := validCrate()
	raw["tags"] = []any{map[string]any{"label": "a"}, map[string]any{"bad": "x"}, map[string]any{}}

	_, err := crateSchema.Validate(raw)
	require.ErrorIs(t, err, ErrFieldMissing)

	var nestedErr *NestedError
	require.ErrorAs(t, err, &nestedErr)

	index, ok := nestedErr.Path.LastIndex()
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, "tags[1]", nestedErr.Path.String())
}

func TestSchema_ValidateAny(t *testing.T) {
	t.Parallel()

	_, err := crateSchema.ValidateAny([]any{"not", "an", "object"})
	require.ErrorIs(t, err, ErrTypeMismatch)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "$", fieldErr.Path.String())

	got, err := crateSchema.ValidateAny(validCrate())
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.Code)
}

func TestSchema_Unmarshal(t *testing.T) {
	t.Parallel()

	t.Run("json numbers", func(t *testing.T) {
		t.Parallel()

		got, err := crateSchema.Unmarshal([]byte(`{"code":"c","weight":9007199254740993,"main":{"label":"m"},"tags":[]}`))
		require.NoError(t, err)
		assert.Equal(t, 9007199254740993, got.Weight)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		for _, data := range []string{`{"label":"rope"} {"oops"`, `{"label":"rope"}{}`, `{"label":"rope"} x`} {
			_, err := tagSchema.Unmarshal([]byte(data))
			require.ErrorIs(t, err, ErrTrailingData, data)
		}

		got, err := tagSchema.Unmarshal([]byte("{\"label\":\"rope\"}\n  "))
		require.NoError(t, err)
		assert.Equal(t, tag{Label: "rope"}, got)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := crateSchema.Unmarshal([]byte(`{"code":`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestSchema_RoundTrip(t *testing.T) {
	t.Parallel()

	records := []crate{
		{Code: "a", Weight: 1, Main: tag{Label: "x"}, Tags: []tag{}},
		{
			Code:    "b",
			Weight:  -4,
			Fragile: Some(false),
			Note:    Some(""),
			Main:    tag{Label: "y"},
			Tags:    []tag{{Label: "1"}, {Label: "2"}},
			Extra:   Some(map[string]any{"k": "v"}),
		},
	}

	for _, rec := range records {
		got, err := crateSchema.Validate(crateSchema.Encode(rec))
		require.NoError(t, err)
		assert.Equal(t, rec, got)

		data, err := crateSchema.Marshal(rec)
		require.NoError(t, err)

		got, err = crateSchema.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	}
}

func TestSchema_RoundTrip_NilSequence(t *testing.T) {
	t.Parallel()

	encoded := crateSchema.Encode(crate{Code: "n", Main: tag{Label: "m"}})
	assert.Equal(t, []any{}, encoded["tags"])

	got, err := crateSchema.Validate(encoded)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestSchema_Encode(t *testing.T) {
	t.Parallel()

	encoded := crateSchema.Encode(crate{Code: "a", Weight: 2, Main: tag{Label: "x"}, Tags: []tag{{Label: "t"}}})

	assert.Equal(t, map[string]any{
		"code":    "a",
		"weight":  2,
		"fragile": nil,
		"note":    nil,
		"main":    map[string]any{"label": "x"},
		"tags":    []any{map[string]any{"label": "t"}},
		"extra":   nil,
	}, encoded)

	data, err := json.Marshal(encoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"a","weight":2,"fragile":null,"note":null,"main":{"label":"x"},"tags":[{"label":"t"}],"extra":null}`, string(data))
}

func TestSchema_Describe(t *testing.T) {
	t.Parallel()

	d := crateSchema.Describe()
	assert.Equal(t, "Crate", d.Name)
	assert.Equal(t, []FieldDescriptor{
		{Name: "code", Kind: "string", Required: true},
		{Name: "weight", Kind: "integer", Required: true},
		{Name: "fragile", Kind: "boolean"},
		{Name: "note", Kind: "string"},
		{Name: "main", Kind: "object:Tag", Required: true},
		{Name: "tags", Kind: "array<object:Tag>", Required: true},
		{Name: "extra", Kind: "object"},
	}, d.Fields)
}

func TestSchema_Normalize(t *testing.T) {
	t.Parallel()

	raw := validCrate()
	raw["ignored"] = true

	var checker Checker = crateSchema

	got, err := checker.Normalize(raw)
	require.NoError(t, err)
	assert.NotContains(t, got, "ignored")
	assert.Equal(t, 12, got["weight"])

	_, err = checker.Normalize(map[string]any{})
	require.ErrorIs(t, err, ErrFieldMissing)
}
