package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type testConfig struct {
	Server string `env:"CMD_TEST_SERVER" envDefault:"https://scans.example.com"`
	Mode   string `env:"CMD_TEST_MODE" envDefault:"FOREGROUND"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("REALMBRIDGE_CMD_TEST_SERVER", "https://env.example.com")
	t.Setenv("REALMBRIDGE_CMD_TEST_MODE", "BACKGROUND")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.Server, "server", cfg.Server, "server")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")

	if err := ParseArgs(fs, []string{"-server", "https://flag.example.com"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Server != "https://flag.example.com" {
		t.Fatalf("expected flag value for server, got %q", cfg.Server)
	}
	if cfg.Mode != "BACKGROUND" {
		t.Fatalf("expected env default mode, got %q", cfg.Mode)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	var cfg testConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Server != "https://scans.example.com" || cfg.Mode != "FOREGROUND" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseRejectsNilTargets(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected parse config to reject nil target")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceScanbridge, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryRunsInsideSpan(t *testing.T) {
	t.Setenv("REALMBRIDGE_OTEL_ENDPOINT", "")
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	boom := errors.New("boom")
	var inside trace.SpanContext
	err := RunWithTelemetry(context.Background(), ServiceBridgegen, func(ctx context.Context) error {
		inside = trace.SpanContextFromContext(ctx)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != ServiceBridgegen {
		t.Fatalf("span name = %q", span.Name())
	}
	if span.SpanContext().SpanID() != inside.SpanID() {
		t.Fatal("run should receive the command span in its context")
	}
	if span.Status().Code != codes.Error {
		t.Fatalf("span status = %v", span.Status())
	}
}
