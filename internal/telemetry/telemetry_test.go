package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown error: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Error("Disabled setup replaced the global tracer provider")
	}
}

func TestTracerUsesGlobalProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := Tracer("world").Start(context.Background(), "level.generate")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Recorded %d spans, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "level.generate" {
		t.Errorf("Span name = %q, want %q", got, "level.generate")
	}
	if got := spans[0].InstrumentationScope().Name; got != "vaultdelve/world" {
		t.Errorf("Tracer name = %q, want %q", got, "vaultdelve/world")
	}
}
