// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created around database transactions and the transactional
// author-with-articles writer. No exporter is installed by default, so spans
// are no-ops unless a TracerProvider is registered with otel.SetTracerProvider.
//
// Example usage:
//
//	import "magazine-db/internal/observability/tracing"
//
//	func publish(ctx context.Context) (err error) {
//	    ctx, span := tracing.StartSpan(ctx, "publish.CreateAuthorWithArticles")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    // ... write ...
//	    return nil
//	}
package tracing
