package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("teamtrack/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a handler span under the otelhttp request span and tags it with the caller.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(principalAttrs(ctx)...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

func principalAttrs(ctx context.Context) []attribute.KeyValue {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String("enduser.id", principal.UserID),
		attribute.String("enduser.role", principal.Role),
	}
}
