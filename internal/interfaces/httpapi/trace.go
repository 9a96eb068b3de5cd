package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("decksite-ingest/internal/interfaces/httpapi")

// startHandlerSpan opens "httpapi.Handler.<method>" under the request span.
// Untraced requests (health probes) get no span.
func startHandlerSpan(r *http.Request, method string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+method)
}
