package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("github.com/AboladeOluwaseun/epl-stats-bot/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entrypoints only. Middleware and
// response helpers run inside the otelhttp request span and stay silent, as
// do requests the router does not trace at all (health checks).
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("epl.handler.kind", handlerKind(name)),
	))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// handlerKind splits scheduler-triggered jobs from read-only warehouse lookups.
func handlerKind(name string) string {
	method := strings.TrimPrefix(name, handlerSpanPrefix)
	switch {
	case strings.HasSuffix(method, "Job"):
		return "job"
	case method == "Healthz":
		return "system"
	default:
		return "lookup"
	}
}
