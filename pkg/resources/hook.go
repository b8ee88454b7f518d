package resources

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	otelog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// ZerologHook re-emits every zerolog event as an OpenTelemetry log record.
type ZerologHook struct {
	logger         otelog.Logger
	serviceName    string
	serviceVersion string
}

func NewZerologHook(serviceName string, serviceVersion string) *ZerologHook {
	return &ZerologHook{
		logger:         global.GetLoggerProvider().Logger(serviceName),
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
	}
}

func (h *ZerologHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level == zerolog.Disabled || level == zerolog.NoLevel {
		return
	}

	fields := h.fields(e)

	var rec otelog.Record

	sev, sevText := severityOf(level)

	rec.SetTimestamp(timestampOf(fields))
	rec.SetObservedTimestamp(time.Now())
	rec.SetSeverity(sev)
	rec.SetSeverityText(sevText)
	rec.SetBody(otelog.StringValue(msg))
	rec.AddAttributes(otelog.String("service.name", h.serviceName), otelog.String("service.version", h.serviceVersion))
	rec.AddAttributes(toAttributes(fields)...)

	h.logger.Emit(e.GetCtx(), rec)
}

// fields decodes what has been written to the event so far. zerolog keeps it in an unexported buffer.
func (h *ZerologHook) fields(e *zerolog.Event) map[string]any {
	if e == nil {
		return nil
	}

	v := reflect.ValueOf(e).Elem()

	buf := v.FieldByName("buf")
	if !buf.IsValid() || buf.Kind() != reflect.Slice || buf.Type().Elem().Kind() != reflect.Uint8 {
		return nil
	}

	b := append([]byte(nil), buf.Bytes()...)
	if len(b) == 0 {
		return nil
	}

	if b[len(b)-1] != '}' {
		b = append(b, '}')
	}

	var m map[string]any

	err := json.Unmarshal(b, &m)
	if err != nil {
		return nil
	}

	return m
}

var severities = map[zerolog.Level]struct {
	severity otelog.Severity
	text     string
}{
	zerolog.TraceLevel: {otelog.SeverityTrace, "TRACE"},
	zerolog.DebugLevel: {otelog.SeverityDebug, "DEBUG"},
	zerolog.InfoLevel:  {otelog.SeverityInfo, "INFO"},
	zerolog.WarnLevel:  {otelog.SeverityWarn, "WARN"},
	zerolog.ErrorLevel: {otelog.SeverityError, "ERROR"},
	zerolog.FatalLevel: {otelog.SeverityFatal, "FATAL"},
	zerolog.PanicLevel: {otelog.SeverityFatal4, "FATAL"},
}

func severityOf(level zerolog.Level) (otelog.Severity, string) {
	s, ok := severities[level]
	if !ok {
		return otelog.SeverityInfo, "INFO"
	}

	return s.severity, s.text
}

func toAttributes(m map[string]any) []otelog.KeyValue {
	kvs := make([]otelog.KeyValue, 0, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case string:
			kvs = append(kvs, otelog.String(k, x))
		case bool:
			kvs = append(kvs, otelog.Bool(k, x))
		case float64:
			if x == float64(int64(x)) {
				kvs = append(kvs, otelog.Int64(k, int64(x)))
			} else {
				kvs = append(kvs, otelog.Float64(k, x))
			}
		default:
			kvs = append(kvs, otelog.String(k, fmt.Sprintf("%v", x)))
		}
	}

	return kvs
}

func timestampOf(m map[string]any) time.Time {
	s, ok := m[zerolog.TimestampFieldName].(string)
	if !ok {
		return time.Now()
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts
		}
	}

	return time.Now()
}
