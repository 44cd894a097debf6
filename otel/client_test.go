package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/context7"
	"github.com/fwojciec/context7/mock"
	c7otel "github.com/fwojciec/context7/otel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracerProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingClient_ResolveLibrary(t *testing.T) {
	t.Parallel()

	t.Run("creates span with resolution attributes", func(t *testing.T) {
		t.Parallel()

		tp, exporter := newTracerProvider(t)
		inner := &mock.DocsClient{
			ResolveLibraryFn: func(context.Context, string, string) (*context7.LibraryResolution, error) {
				return &context7.LibraryResolution{
					LibraryID:  "/colinhacks/zod",
					Candidates: []context7.LibraryCandidate{{ID: "/colinhacks/zod"}},
				}, nil
			},
		}

		client := c7otel.NewTracingClient(inner, c7otel.WithTracerProvider(tp))
		_, err := client.ResolveLibrary(context.Background(), "zod", "schemas")
		require.NoError(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, "context7.ResolveLibrary", span.Name)
		assert.Equal(t, codes.Ok, span.Status.Code)

		name, ok := attrValue(span.Attributes, "context7.library.name")
		require.True(t, ok)
		assert.Equal(t, "zod", name.AsString())

		id, ok := attrValue(span.Attributes, "context7.library.id")
		require.True(t, ok)
		assert.Equal(t, "/colinhacks/zod", id.AsString())
	})

	t.Run("records error code on failure", func(t *testing.T) {
		t.Parallel()

		tp, exporter := newTracerProvider(t)
		inner := &mock.DocsClient{
			ResolveLibraryFn: func(context.Context, string, string) (*context7.LibraryResolution, error) {
				return nil, context7.Errorf(context7.ENOTFOUND, "unable to resolve library %q", "nope")
			},
		}

		client := c7otel.NewTracingClient(inner, c7otel.WithTracerProvider(tp))
		_, err := client.ResolveLibrary(context.Background(), "nope", "")
		require.Error(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, codes.Error, span.Status.Code)
		assert.NotEmpty(t, span.Events)

		code, ok := attrValue(span.Attributes, "context7.error_code")
		require.True(t, ok)
		assert.Equal(t, context7.ENOTFOUND, code.AsString())
	})
}

func TestTracingClient_QueryDocs(t *testing.T) {
	t.Parallel()

	t.Run("records docs size", func(t *testing.T) {
		t.Parallel()

		tp, exporter := newTracerProvider(t)
		inner := &mock.DocsClient{
			QueryDocsFn: func(context.Context, string, string) (string, error) {
				return "# Docs", nil
			},
		}

		client := c7otel.NewTracingClient(inner, c7otel.WithTracerProvider(tp))
		docs, err := client.QueryDocs(context.Background(), "/colinhacks/zod", "schemas")
		require.NoError(t, err)
		assert.Equal(t, "# Docs", docs)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "context7.QueryDocs", spans[0].Name)

		size, ok := attrValue(spans[0].Attributes, "context7.docs.bytes")
		require.True(t, ok)
		assert.Equal(t, int64(6), size.AsInt64())
	})
}

func TestTracingClient_QueryHeadlines(t *testing.T) {
	t.Parallel()

	tp, exporter := newTracerProvider(t)
	inner := &mock.DocsClient{
		QueryHeadlinesFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("remote failure")
		},
	}

	client := c7otel.NewTracingClient(inner, c7otel.WithTracerProvider(tp))
	_, err := client.QueryHeadlines(context.Background(), "/colinhacks/zod", "schemas")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "context7.QueryHeadlines", spans[0].Name)
	code, ok := attrValue(spans[0].Attributes, "context7.error_code")
	require.True(t, ok)
	assert.Equal(t, context7.EINTERNAL, code.AsString())
}

func TestTracingClient_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	inner := &mock.DocsClient{
		QueryDocsFn: func(context.Context, string, string) (string, error) {
			return "docs", nil
		},
	}

	client := c7otel.NewTracingClient(inner, c7otel.WithMeterProvider(mp))
	for range 2 {
		_, err := client.QueryDocs(context.Background(), "/a/b", "q")
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var calls int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "context7.client.calls" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				calls += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), calls)
}

func TestTracingClient_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.DocsClient{CloseFn: func() error {
		closeCalled = true
		return nil
	}}

	client := c7otel.NewTracingClient(inner)

	require.NoError(t, client.Close())
	assert.True(t, closeCalled)
}
