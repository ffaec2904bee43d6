package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	sr := setupRecorder(t)

	tracer := telemetry.NewOTelTracer("test")
	_, span := tracer.Start(context.Background(), "rescache.download",
		ports.WithAttribute("uri", "http://example.org/a.xsd"),
		ports.WithAttribute("redirects", 2),
	)
	span.SetAttribute("cached", true)
	span.SetAttribute("size", int64(42))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("ids", []string{"a", "b"})
	span.SetAttribute("other", struct{ X int }{1})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "rescache.download", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "http://example.org/a.xsd", attrs["uri"].AsString())
	assert.Equal(t, int64(2), attrs["redirects"].AsInt64())
	assert.True(t, attrs["cached"].AsBool())
	assert.Equal(t, int64(42), attrs["size"].AsInt64())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0.0001)
	assert.Equal(t, []string{"a", "b"}, attrs["ids"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := setupRecorder(t)

	tracer := telemetry.NewOTelTracer("test")
	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestBridge_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	bridge := telemetry.NewBridge(logger)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := tp.Tracer("test-bridge")

	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "trace validate")
		assert.Contains(t, msg, "uri=file:///a.xml")
	})
	_, span := tracer.Start(context.Background(), "validate")
	span.SetAttributes(attribute.String("uri", "file:///a.xml"))
	span.End()

	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "download failed")
	})
	_, failed := tracer.Start(context.Background(), "download")
	failed.SetStatus(codes.Error, "download failed")
	failed.End()
}

func TestBridge_NilLogger(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()

	_ = bridge.ForceFlush(context.Background())
	_ = bridge.Shutdown(context.Background())
}
