package realm

import (
	"reflect"
	"testing"

	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
	beta "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta/palette"
)

const (
	alphaRoot = "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha"
	betaRoot  = "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/beta"
)

func newAlphaRealm(t *testing.T) *Realm {
	t.Helper()
	r, err := New("alpha", alphaRoot)
	if err != nil {
		t.Fatalf("new alpha realm: %v", err)
	}
	if err := r.Register(reflect.TypeFor[alpha.Swatch](), reflect.TypeFor[alpha.Mixer](), reflect.TypeFor[alpha.Sample]()); err != nil {
		t.Fatalf("register alpha types: %v", err)
	}
	if err := r.RegisterEnum(alpha.Red, alpha.Green, alpha.Blue); err != nil {
		t.Fatalf("register alpha color: %v", err)
	}
	if err := r.RegisterEnum(alpha.Light, alpha.Dark); err != nil {
		t.Fatalf("register alpha shade: %v", err)
	}
	return r
}

func newBetaRealm(t *testing.T) *Realm {
	t.Helper()
	r, err := New("beta", betaRoot)
	if err != nil {
		t.Fatalf("new beta realm: %v", err)
	}
	if err := r.Register(reflect.TypeFor[beta.Swatch](), reflect.TypeFor[beta.Mixer](), reflect.TypeFor[beta.Sample]()); err != nil {
		t.Fatalf("register beta types: %v", err)
	}
	if err := r.RegisterEnum(beta.Blue, beta.Green, beta.Red, beta.Violet); err != nil {
		t.Fatalf("register beta color: %v", err)
	}
	if err := r.RegisterEnum(beta.Light, beta.Dark); err != nil {
		t.Fatalf("register beta shade: %v", err)
	}
	return r
}

func newTestCatalog(t *testing.T) (*Catalog, *Realm, *Realm) {
	t.Helper()
	a, b := newAlphaRealm(t), newBetaRealm(t)
	c, err := NewCatalog(a, b)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c, a, b
}
