package core

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveValidation(t *testing.T) {
	t.Parallel()

	const name = "ObserveValidationProbe"

	_, missingErr := MaterialSchema.Validate(map[string]any{})
	_, mismatchErr := MaterialSchema.Validate(map[string]any{"name": 1})

	observeValidation(name, nil)
	observeValidation(name, nil)
	observeValidation(name, missingErr)
	observeValidation(name, mismatchErr)
	observeValidation(name, errors.New("boom"))

	assert.InDelta(t, 2, testutil.ToFloat64(validationAccepted.WithLabelValues(name)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(validationRejections.WithLabelValues(name, "field_missing")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(validationRejections.WithLabelValues(name, "type_mismatch")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(validationRejections.WithLabelValues(name, "malformed")), 0)
}
