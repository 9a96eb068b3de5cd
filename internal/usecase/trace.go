package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("decksite-ingest/internal/usecase")

// startUsecaseSpan only opens child spans.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	current := trace.SpanFromContext(ctx)
	if name == "" || !current.SpanContext().IsValid() {
		return ctx, current
	}
	return tracer.Start(ctx, name)
}
