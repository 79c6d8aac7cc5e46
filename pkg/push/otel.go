package push

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope for push spans. The tracer
// comes from the global provider; configure exporters in main().
const tracerName = "github.com/loom-ui/loom/pkg/push"

// tracer wraps the optional OpenTelemetry instrumentation. A nil
// *tracer (tracing disabled) makes every method a no-op.
type tracer struct {
	t trace.Tracer
}

func newTracer(enabled bool) *tracer {
	if !enabled {
		return nil
	}
	return &tracer{t: otel.Tracer(tracerName)}
}

// startDispatch opens a span for one client event dispatch.
func (tr *tracer) startDispatch(ctx context.Context, sessionID, eventType string, node uint64) (context.Context, trace.Span) {
	if tr == nil {
		return ctx, nil
	}
	return tr.t.Start(ctx, "push.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("loom.session_id", sessionID),
			attribute.String("loom.event_type", eventType),
			attribute.Int64("loom.node_id", int64(node)),
		),
	)
}

// startFlush opens a span for one change flush.
func (tr *tracer) startFlush(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	if tr == nil {
		return ctx, nil
	}
	return tr.t.Start(ctx, "push.flush",
		trace.WithAttributes(attribute.String("loom.session_id", sessionID)),
	)
}

// end closes a span, recording err when non-nil.
func end(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
