package bridge

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/realmbridge/internal/bridge/realm"
	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
	beta "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta/palette"
)

const (
	alphaRoot = "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha"
	betaRoot  = "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta"
)

type fixture struct {
	bridge *Bridge
	alpha  *realm.Realm
	beta   *realm.Realm
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	a, err := realm.New("alpha", alphaRoot)
	if err != nil {
		t.Fatalf("new alpha realm: %v", err)
	}
	if err := a.Register(reflect.TypeFor[alpha.Swatch](), reflect.TypeFor[alpha.Mixer](), reflect.TypeFor[alpha.Sample](), reflect.TypeFor[alpha.Chip]()); err != nil {
		t.Fatalf("register alpha types: %v", err)
	}
	if err := a.RegisterEnum(alpha.Red, alpha.Green, alpha.Blue); err != nil {
		t.Fatalf("register alpha color: %v", err)
	}
	b, err := realm.New("beta", betaRoot)
	if err != nil {
		t.Fatalf("new beta realm: %v", err)
	}
	if err := b.Register(reflect.TypeFor[beta.Swatch](), reflect.TypeFor[beta.Mixer](), reflect.TypeFor[beta.Sample](), reflect.TypeFor[beta.Chip]()); err != nil {
		t.Fatalf("register beta types: %v", err)
	}
	if err := b.RegisterEnum(beta.Blue, beta.Green, beta.Red, beta.Violet); err != nil {
		t.Fatalf("register beta color: %v", err)
	}
	catalog, err := realm.NewCatalog(a, b)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	br, err := New(catalog, opts...)
	if err != nil {
		t.Fatalf("new bridge: %v", err)
	}
	if err := Register(br, func(inv Invoker) alpha.Swatch { return swatchStub{inv: inv} }); err != nil {
		t.Fatalf("register swatch stub: %v", err)
	}
	if err := Register(br, func(inv Invoker) alpha.Mixer { return mixerStub{inv: inv} }); err != nil {
		t.Fatalf("register mixer stub: %v", err)
	}
	return fixture{bridge: br, alpha: a, beta: b}
}

func (f fixture) mixer(t *testing.T, studio *beta.Studio) alpha.Mixer {
	t.Helper()
	mixer, err := As[alpha.Mixer](f.bridge, studio)
	if err != nil {
		t.Fatalf("proxy studio: %v", err)
	}
	return mixer
}

// recoverCall runs fn and returns the error it panicked with.
func recoverCall(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected call to panic")
		}
		e, ok := recovered.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", recovered, recovered)
		}
		err = e
	}()
	fn()
	return nil
}

func requireIs(t *testing.T, err error, targets ...error) {
	t.Helper()
	for _, target := range targets {
		if !errors.Is(err, target) {
			t.Fatalf("expected %v in chain, got %+v", target, err)
		}
	}
}
