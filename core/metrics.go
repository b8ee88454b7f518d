package core

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"event-planner/pkg/schema"
)

var validationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "event_planner",
	Name:      "validation_rejections_total",
	Help:      "Payloads rejected by a record schema",
}, []string{"schema", "reason"})

var validationAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "event_planner",
	Name:      "validation_accepted_total",
	Help:      "Payloads accepted by a record schema",
}, []string{"schema"})

func observeValidation(schemaName string, err error) {
	switch {
	case err == nil:
		validationAccepted.WithLabelValues(schemaName).Inc()
	case errors.Is(err, schema.ErrFieldMissing):
		validationRejections.WithLabelValues(schemaName, "field_missing").Inc()
	case errors.Is(err, schema.ErrTypeMismatch):
		validationRejections.WithLabelValues(schemaName, "type_mismatch").Inc()
	default:
		validationRejections.WithLabelValues(schemaName, "malformed").Inc()
	}
}
