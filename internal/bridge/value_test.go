package bridge

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
	beta "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta/palette"
)

func TestValuePassesPlatformValuesThrough(t *testing.T) {
	f := newFixture(t)
	anchor := Anchor{Realm: f.alpha}
	mixErr := &beta.MixError{Reason: "dry"}

	tests := []struct {
		name     string
		value    any
		declared reflect.Type
	}{
		{"int", 7, reflect.TypeFor[int]()},
		{"string", "moss", reflect.TypeFor[string]()},
		{"slice", []string{"a", "b"}, reflect.TypeFor[[]string]()},
		{"map", map[string]int{"a": 1}, reflect.TypeFor[map[string]int]()},
		{"domain error", mixErr, reflect.TypeFor[error]()},
		{"context", context.Background(), reflect.TypeFor[context.Context]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.bridge.Value(reflect.ValueOf(tt.value), tt.declared, anchor)
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			if !reflect.DeepEqual(got.Interface(), tt.value) {
				t.Fatalf("got %v, want %v", got.Interface(), tt.value)
			}
		})
	}

	got, err := f.bridge.Value(reflect.ValueOf(mixErr), reflect.TypeFor[error](), anchor)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got.Interface() != any(mixErr) {
		t.Fatal("errors must cross by identity")
	}
}

func TestValueNil(t *testing.T) {
	f := newFixture(t)
	anchor := Anchor{Realm: f.beta}

	got, err := f.bridge.Value(reflect.Value{}, reflect.TypeFor[alpha.Swatch](), anchor)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if !got.IsNil() {
		t.Fatalf("expected nil swatch, got %v", got)
	}

	got, err = f.bridge.Value(reflect.ValueOf((*beta.Chip)(nil)), reflect.TypeFor[alpha.Swatch](), anchor)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got.Type() != reflect.TypeFor[alpha.Swatch]() || !got.IsNil() {
		t.Fatalf("expected nil alpha swatch, got %v", got)
	}
}

func TestValueEnumRoundTrip(t *testing.T) {
	f := newFixture(t)
	anchor := Anchor{Realm: f.beta}

	for _, c := range []alpha.Color{alpha.Red, alpha.Green, alpha.Blue} {
		there, err := f.bridge.Value(reflect.ValueOf(c), reflect.TypeFor[beta.Color](), anchor)
		if err != nil {
			t.Fatalf("alpha to beta %v: %v", c, err)
		}
		if there.Interface().(beta.Color).String() != c.String() {
			t.Fatalf("alpha %v became beta %v", c, there.Interface())
		}
		back, err := f.bridge.Value(there, reflect.TypeFor[alpha.Color](), anchor)
		if err != nil {
			t.Fatalf("beta to alpha %v: %v", there, err)
		}
		if back.Interface() != any(c) {
			t.Fatalf("round trip of %v returned %v", c, back.Interface())
		}
	}

	if _, err := f.bridge.Value(reflect.ValueOf(beta.Violet), reflect.TypeFor[alpha.Color](), anchor); !errors.Is(err, ErrTypeLoad) {
		t.Fatalf("expected ErrTypeLoad for VIOLET, got %v", err)
	}
}

func TestValueWrapsDomainObject(t *testing.T) {
	f := newFixture(t)
	chip := beta.Chip{Hue: beta.Green, Name: "moss"}

	got, err := f.bridge.Value(reflect.ValueOf(chip), reflect.TypeFor[alpha.Swatch](), Anchor{Target: chip, Realm: f.beta})
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	swatch, ok := got.Interface().(alpha.Swatch)
	if !ok {
		t.Fatalf("expected alpha.Swatch, got %v", got.Type())
	}
	if swatch.Label() != "moss" || swatch.Color() != alpha.Green {
		t.Fatalf("swatch = %s/%v", swatch.Label(), swatch.Color())
	}

	if _, err := f.bridge.Value(reflect.ValueOf(chip), reflect.TypeFor[alpha.Chip](), Anchor{Realm: f.beta}); !errors.Is(err, ErrTypeLoad) {
		t.Fatalf("expected ErrTypeLoad for a concrete declared type, got %v", err)
	}
}

func TestValueRejectsDomainComposites(t *testing.T) {
	f := newFixture(t)
	anchor := Anchor{Realm: f.beta}
	paint := beta.NewPaint(beta.Red, "brick")

	tests := []struct {
		name     string
		value    any
		declared reflect.Type
	}{
		{"slice", []beta.Swatch{paint}, reflect.TypeFor[[]alpha.Swatch]()},
		{"map", map[string]beta.Swatch{"brick": paint}, reflect.TypeFor[map[string]alpha.Swatch]()},
		{"enum", beta.Red, reflect.TypeFor[string]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bridge.Value(reflect.ValueOf(tt.value), tt.declared, anchor)
			if !errors.Is(err, ErrTypeLoad) {
				t.Fatalf("expected ErrTypeLoad, got %v", err)
			}
		})
	}

	got, err := f.bridge.Value(reflect.ValueOf(paint), reflect.TypeFor[any](), anchor)
	if err != nil {
		t.Fatalf("value as any: %v", err)
	}
	if got.Interface() != paint {
		t.Fatal("a value declared as any must cross unchanged")
	}
}

func TestSpanPerCall(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	f := newFixture(t, WithTracer(tracer))
	studio := beta.NewStudio()
	studio.PanicOn = "Favorite"
	mixer := f.mixer(t, studio)

	ctx, parent := tracer.Start(context.Background(), "parent")
	if err := mixer.Varnish(ctx, 1); err != nil {
		t.Fatalf("Varnish: %v", err)
	}
	parent.End()
	recoverCall(t, func() { mixer.Favorite() })

	spans := map[string]sdktrace.ReadOnlySpan{}
	for _, span := range rec.Ended() {
		spans[span.Name()] = span
	}
	varnish, ok := spans["bridge palette.Mixer.Varnish"]
	if !ok {
		t.Fatalf("missing Varnish span in %v", spans)
	}
	if varnish.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Fatal("Varnish span is not parented on the context argument")
	}
	favorite, ok := spans["bridge palette.Mixer.Favorite"]
	if !ok {
		t.Fatalf("missing Favorite span in %v", spans)
	}
	if favorite.Status().Code != codes.Error {
		t.Fatalf("Favorite span status = %v, want error", favorite.Status())
	}
}
