// Package observability provides OpenTelemetry tracing and metrics for
// operation polling and pagination.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, step := observability.StartStep(ctx, observability.SpanOperationPoll, "lro",
//	    observability.AttrOperationID, id)
//	defer step.End(err)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	observability.DefaultMetrics().RecordPoll(ctx, "pending", step.Duration())
package observability
