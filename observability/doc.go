// Package observability wires OpenTelemetry tracing and metrics.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("authgate"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAuthLogin)
//	defer span.End()
//
//	metrics, err := observability.NewAuthMetrics(observability.Meter("authgate"))
//	metrics.RecordLogin(ctx, observability.OutcomeSuccess)
package observability
