package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	translator, err := NewTranslator("en")
	require.NoError(t, err)

	tests := []struct {
		name           string
		acceptLanguage string
		key            string
		expected       string
	}{
		{name: "default language", key: "event_full", expected: "Event has reached its capacity"},
		{name: "portuguese", acceptLanguage: "pt-BR", key: "event_full", expected: "O evento atingiu sua capacidade"},
		{name: "unsupported language", acceptLanguage: "de", key: "expense_full", expected: "Expense has no quantity left"},
		{name: "unknown key", acceptLanguage: "pt", key: "nope", expected: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, translator.T(context.Background(), tt.acceptLanguage, tt.key))
		})
	}
}

func TestNewTranslator_InvalidLocale(t *testing.T) {
	t.Parallel()

	_, err := NewTranslator("not a locale!")
	require.Error(t, err)
}

func TestTranslator_EveryKeyInBothLanguages(t *testing.T) {
	t.Parallel()

	translator, err := NewTranslator("pt")
	require.NoError(t, err)

	keys := []string{
		"invalid_json", "validation_failed", "invalid_expense_id", "event_not_found", "event_full",
		"expense_not_found", "expense_full", "participant_exists", "participant_not_found",
		"schema_not_found", "internal_error",
	}

	ctx := context.Background()

	for _, key := range keys {
		assert.NotEqual(t, key, translator.T(ctx, "en", key), key)
		assert.NotEqual(t, key, translator.T(ctx, "pt", key), key)
		assert.NotEqual(t, translator.T(ctx, "en", key), translator.T(ctx, "pt", key), key)
	}
}
