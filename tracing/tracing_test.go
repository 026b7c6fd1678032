package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	cfg := ConfigFromEnv("linkintel-api")
	if cfg.ServiceName != "linkintel-api" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4317" || !cfg.Insecure {
		t.Errorf("endpoint defaults = %+v", cfg)
	}
	if cfg.SampleRatio != 1.0 {
		t.Errorf("SampleRatio = %v", cfg.SampleRatio)
	}

	t.Setenv("OTEL_SERVICE_NAME", "override")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg = ConfigFromEnv("linkintel-api")
	if cfg.ServiceName != "override" || cfg.Endpoint != "collector:4317" || cfg.Insecure || cfg.SampleRatio != 0.25 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestNewRequiresServiceName(t *testing.T) {
	if _, err := New(context.Background(), Config{Endpoint: "localhost:4317"}); err == nil {
		t.Fatal("expected an error without a service name")
	}
}

func TestNewInstallsGlobalProvider(t *testing.T) {
	tp, err := New(context.Background(), Config{
		ServiceName: "linkintel-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
		SampleRatio: 1.0,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	})

	if otel.GetTracerProvider() != tp {
		t.Error("global tracer provider was not replaced")
	}

	fields := otel.GetTextMapPropagator().Fields()
	want := map[string]bool{"traceparent": false, "baggage": false}
	for _, f := range fields {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("propagator does not carry %q (fields %v)", f, fields)
		}
	}
}
