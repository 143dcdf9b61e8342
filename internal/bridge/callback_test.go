package bridge

import (
	"errors"
	"strings"
	"testing"

	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
	beta "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta/palette"
)

func TestActionCallbackReceivesProxy(t *testing.T) {
	f := newFixture(t)
	mixer := f.mixer(t, beta.NewStudio(beta.NewPaint(beta.Red, "brick"), beta.NewPaint(beta.Blue, "navy")))

	var labels []string
	var colors []alpha.Color
	first := mixer.Mix(func(s alpha.Swatch) {
		if _, ok := s.(swatchStub); !ok {
			t.Errorf("callback received %T, want a proxy", s)
		}
		labels = append(labels, s.Label())
		colors = append(colors, s.Color())
	})

	if strings.Join(labels, ",") != "brick,navy" {
		t.Fatalf("labels = %v", labels)
	}
	if len(colors) != 2 || colors[0] != alpha.Red || colors[1] != alpha.Blue {
		t.Fatalf("colors = %v", colors)
	}
	if first == nil || first.Label() != "brick" {
		t.Fatalf("Mix result = %v", first)
	}
}

func TestPredicateCallback(t *testing.T) {
	f := newFixture(t)
	mixer := f.mixer(t, beta.NewStudio(
		beta.NewPaint(beta.Red, "brick"),
		beta.NewPaint(beta.Red, "cherry"),
		beta.NewPaint(beta.Green, "moss"),
	))

	got := mixer.Count(func(s alpha.Swatch) bool { return s.Color() == alpha.Red })
	if got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestEnumCallbackAdaptedByName(t *testing.T) {
	f := newFixture(t)
	mixer := f.mixer(t, beta.NewStudio(beta.NewPaint(beta.Green, "moss"), beta.NewPaint(beta.Blue, "navy")))

	var colors []alpha.Color
	mixer.EachColor(func(c alpha.Color) { colors = append(colors, c) })
	if len(colors) != 2 || colors[0] != alpha.Green || colors[1] != alpha.Blue {
		t.Fatalf("colors = %v", colors)
	}
}

func TestCallbackTranslationFailureFailsOuterCall(t *testing.T) {
	f := newFixture(t)
	mixer := f.mixer(t, beta.NewStudio(beta.NewPaint(beta.Violet, "plum")))

	called := false
	err := recoverCall(t, func() {
		mixer.EachColor(func(alpha.Color) { called = true })
	})
	requireIs(t, err, ErrCallFailed, ErrTypeLoad)
	if errors.Is(err, ErrInvocation) {
		t.Fatalf("translation failure reported as invocation failure: %v", err)
	}
	if called {
		t.Fatal("user callback ran with an untranslatable value")
	}
}

func TestStoredCallbackFailureFailsLaterCall(t *testing.T) {
	f := newFixture(t)
	studio := beta.NewStudio()
	mixer := f.mixer(t, studio)

	called := false
	mixer.Watch(func(alpha.Color) { called = true })

	studio.Fav = beta.Green
	mixer.Describe("x")
	if !called {
		t.Fatal("expected the stored callback to run")
	}

	called = false
	studio.Fav = beta.Violet
	err := recoverCall(t, func() { mixer.Describe("x") })
	requireIs(t, err, ErrCallFailed, ErrInvocation, ErrTypeLoad)
	if !strings.Contains(err.Error(), "palette.Mixer.Describe") {
		t.Fatalf("expected the running call in %q", err.Error())
	}
	if called {
		t.Fatal("user callback ran with an untranslatable value")
	}
}

func TestCallbackFailureInsideUserCodeFailsOuterCall(t *testing.T) {
	f := newFixture(t)
	mixer := f.mixer(t, beta.NewStudio(beta.NewPaint(beta.Violet, "plum")))

	err := recoverCall(t, func() {
		mixer.Mix(func(s alpha.Swatch) { s.Color() })
	})
	requireIs(t, err, ErrCallFailed, ErrInvocation, ErrTypeLoad)
}

func TestPlatformCallbackPassesUnchanged(t *testing.T) {
	f := newFixture(t)
	studio := beta.NewStudio()
	mixer := f.mixer(t, studio)

	mixer.Rename(strings.ToUpper)
	if studio.Labeller == nil {
		t.Fatal("expected labeller to be stored")
	}
	if got := studio.Labeller("moss"); got != "MOSS" {
		t.Fatalf("Labeller = %q", got)
	}
}

func TestNilCallback(t *testing.T) {
	f := newFixture(t)
	studio := beta.NewStudio()
	mixer := f.mixer(t, studio)

	mixer.Rename(nil)
	if studio.Labeller != nil {
		t.Fatal("expected nil labeller")
	}
}
