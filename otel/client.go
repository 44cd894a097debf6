// Package otel provides OpenTelemetry tracing and metrics decorators for
// context7 interfaces.
package otel

import (
	"context"
	"time"

	"github.com/fwojciec/context7"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/fwojciec/context7"

// Ensure TracingClient implements context7.DocsClient.
var _ context7.DocsClient = (*TracingClient)(nil)

// Option configures a TracingClient.
type Option func(*config)

type config struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets a custom tracer provider.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider.
// Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// TracingClient wraps a DocsClient with a span per operation and records
// call counts, errors, and latency.
type TracingClient struct {
	next   context7.DocsClient
	tracer trace.Tracer

	calls    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewTracingClient creates a new TracingClient.
func NewTracingClient(next context7.DocsClient, opts ...Option) *TracingClient {
	cfg := &config{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(instrumentationName)

	// Instrument names are static, so creation errors are not expected.
	calls, _ := meter.Int64Counter(
		"context7.client.calls",
		metric.WithDescription("Total number of Context7 client operations"),
		metric.WithUnit("{call}"),
	)
	errs, _ := meter.Int64Counter(
		"context7.client.errors",
		metric.WithDescription("Total number of failed Context7 client operations"),
		metric.WithUnit("{error}"),
	)
	duration, _ := meter.Float64Histogram(
		"context7.client.duration",
		metric.WithDescription("Duration of Context7 client operations"),
		metric.WithUnit("ms"),
	)

	return &TracingClient{
		next:     next,
		tracer:   cfg.tracerProvider.Tracer(instrumentationName),
		calls:    calls,
		errors:   errs,
		duration: duration,
	}
}

// ResolveLibrary delegates to the wrapped client inside a span.
func (c *TracingClient) ResolveLibrary(ctx context.Context, name, query string) (res *context7.LibraryResolution, err error) {
	ctx, end := c.start(ctx, "ResolveLibrary",
		attribute.String("context7.library.name", name),
		attribute.String("context7.query", query),
	)
	defer func() {
		if res != nil {
			trace.SpanFromContext(ctx).SetAttributes(
				attribute.String("context7.library.id", res.LibraryID),
				attribute.Int("context7.candidates", len(res.Candidates)),
			)
		}
		end(err)
	}()
	return c.next.ResolveLibrary(ctx, name, query)
}

// QueryDocs delegates to the wrapped client inside a span.
func (c *TracingClient) QueryDocs(ctx context.Context, libraryID, query string) (docs string, err error) {
	ctx, end := c.start(ctx, "QueryDocs",
		attribute.String("context7.library.id", libraryID),
		attribute.String("context7.query", query),
	)
	defer func() {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("context7.docs.bytes", len(docs)))
		end(err)
	}()
	return c.next.QueryDocs(ctx, libraryID, query)
}

// QueryHeadlines delegates to the wrapped client inside a span.
func (c *TracingClient) QueryHeadlines(ctx context.Context, libraryID, query string) (headlines string, err error) {
	ctx, end := c.start(ctx, "QueryHeadlines",
		attribute.String("context7.library.id", libraryID),
		attribute.String("context7.query", query),
	)
	defer func() {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("context7.docs.bytes", len(headlines)))
		end(err)
	}()
	return c.next.QueryHeadlines(ctx, libraryID, query)
}

// Close delegates to the wrapped client.
func (c *TracingClient) Close() error {
	return c.next.Close()
}

// start opens a span for operation and returns a function that records
// the outcome and ends it.
func (c *TracingClient) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := c.tracer.Start(ctx, "context7."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	begin := time.Now()
	opAttr := metric.WithAttributes(attribute.String("context7.operation", operation))

	return ctx, func(err error) {
		defer span.End()

		c.calls.Add(ctx, 1, opAttr)
		c.duration.Record(ctx, float64(time.Since(begin).Milliseconds()), opAttr)

		if err != nil {
			code := context7.ErrorCode(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("context7.error_code", code))
			c.errors.Add(ctx, 1, metric.WithAttributes(
				attribute.String("context7.operation", operation),
				attribute.String("context7.error_code", code),
			))
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}
