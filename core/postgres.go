package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"event-planner/pkg/resources"
)

type Repository interface {
	SaveEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventById(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	ModifyEvent(ctx context.Context, id string, modify func(event *Event) error) (*Event, error)
}

type repository struct {
	tracer  trace.Tracer
	metrics *DBMetrics
	pool    resources.DBInstance
}

func NewRepository(pool resources.DBInstance) Repository {
	return &repository{
		tracer:  otel.GetTracerProvider().Tracer("event-planner/core"),
		metrics: NewDBMetrics(),
		pool:    pool,
	}
}

func (r *repository) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "save_event", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.SaveEvent")
	defer span.End()

	document, err := EventSchema.Marshal(*event)
	if err != nil {
		return nil, err
	}

	_, err = r.pool.Exec(ctx, "INSERT INTO events (id, document) VALUES ($1, $2)", event.Id, document)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	saved := *event

	return &saved, nil
}

func (r *repository) GetEventById(ctx context.Context, id string) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "get_event_by_id", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.GetEventById")
	defer span.End()

	var document []byte

	err = r.pool.QueryRow(ctx, "SELECT document FROM events WHERE id = $1", id).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}

	event, err := EventSchema.Unmarshal(document)
	if err != nil {
		return nil, fmt.Errorf("stored event %s is invalid: %w", id, err)
	}

	return &event, nil
}

func (r *repository) ListEvents(ctx context.Context) ([]Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "list_events", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.ListEvents")
	defer span.End()

	rows, err := r.pool.Query(ctx, "SELECT document FROM events ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []Event{}

	for rows.Next() {
		var document []byte

		err = rows.Scan(&document)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		var event Event

		event, err = EventSchema.Unmarshal(document)
		if err != nil {
			return nil, fmt.Errorf("stored event is invalid: %w", err)
		}

		events = append(events, event)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// ModifyEvent locks the event row, applies modify and stores the result in one transaction.
// Nothing is written when modify fails.
func (r *repository) ModifyEvent(ctx context.Context, id string, modify func(event *Event) error) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "modify_event", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.ModifyEvent")
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var document []byte

	err = tx.QueryRow(ctx, "SELECT document FROM events WHERE id = $1 FOR UPDATE", id).Scan(&document)
	if err != nil {
		_ = tx.Rollback(ctx)

		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("failed to lock event: %w", err)
	}

	event, err := EventSchema.Unmarshal(document)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("stored event %s is invalid: %w", id, err)
	}

	// A rejected modification is not a storage failure and stays out of the error metric.
	rejected := modify(&event)
	if rejected != nil {
		_ = tx.Rollback(ctx)
		return nil, rejected
	}

	document, err = EventSchema.Marshal(event)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	_, err = tx.Exec(ctx, "UPDATE events SET document = $2 WHERE id = $1", id, document)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &event, nil
}

type DBMetrics struct {
	qTotal   metric.Int64Counter
	qErrors  metric.Int64Counter
	qLatency metric.Float64Histogram
}

func NewDBMetrics() *DBMetrics {
	return newDBMetrics(otel.Meter("event-planner/db"))
}

func newDBMetrics(meter metric.Meter) *DBMetrics {
	qTotal, _ := meter.Int64Counter("db.query.total")
	qErrors, _ := meter.Int64Counter("db.query.errors.total")
	qLatency, _ := meter.Float64Histogram("db.query.duration.ms")

	return &DBMetrics{qTotal: qTotal, qErrors: qErrors, qLatency: qLatency}
}

func (m *DBMetrics) Observe(ctx context.Context, op string, start time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgres"),
		attribute.String("db.operation", op),
	}

	m.qTotal.Add(ctx, 1, metric.WithAttributes(attrs...))

	ms := float64(time.Since(start).Milliseconds())
	m.qLatency.Record(ctx, ms, metric.WithAttributes(attrs...))

	if err != nil {
		m.qErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
