package forms

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "mpesa-forms/backend/internal/forms"

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// validationCounter is created once against the global meter provider, which forwards to the
// provider installed at startup.
var validationCounter = sync.OnceValue(func() metric.Int64Counter {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"forms.validations",
		metric.WithDescription("Form validation passes by form and outcome."),
		metric.WithUnit("{validation}"),
	)
	if err != nil {
		otel.Handle(err)
		return noop.Int64Counter{}
	}
	return counter
})

// observe wraps one validation pass in a span and counts it by form and outcome.
func observe[T any](ctx context.Context, form string, fn func(context.Context) (*T, error)) (*T, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "forms."+form)
	defer span.End()

	out, err := fn(ctx)

	outcome := outcomeAccepted
	if errs, ok := AsErrors(err); ok {
		outcome = outcomeRejected
		span.SetAttributes(attribute.Int("forms.error_count", len(errs)))
	} else if err != nil {
		outcome = outcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(
		attribute.String("forms.name", form),
		attribute.String("forms.outcome", outcome),
	)

	validationCounter().Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("outcome", outcome),
	))
	return out, err
}
