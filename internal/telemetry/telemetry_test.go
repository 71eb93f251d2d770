package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	if p.Enabled() {
		t.Fatalf("disabled provider reports enabled")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
}

func TestRootSampler(t *testing.T) {
	cases := map[float64]string{
		1.0: sdktrace.AlwaysSample().Description(),
		2.0: sdktrace.AlwaysSample().Description(),
		0:   sdktrace.NeverSample().Description(),
		0.5: sdktrace.TraceIDRatioBased(0.5).Description(),
	}
	for rate, want := range cases {
		if got := rootSampler(rate).Description(); got != want {
			t.Fatalf("rootSampler(%v) = %q, want %q", rate, got, want)
		}
	}
}
