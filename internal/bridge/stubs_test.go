package bridge

import (
	"context"

	alpha "github.com/louisbranch/realmbridge/internal/bridge/realm/realmtest/alpha/palette"
)

// Forwarding stubs for the alpha palette, in the form bridgegen writes them.

type swatchStub struct{ inv Invoker }

func (s swatchStub) Color() alpha.Color {
	out := s.inv.MustInvoke("Color")
	return Out[alpha.Color](out, 0)
}

func (s swatchStub) Label() string {
	out := s.inv.MustInvoke("Label")
	return Out[string](out, 0)
}

type mixerStub struct{ inv Invoker }

func (s mixerStub) Mix(swatch func(alpha.Swatch)) alpha.Swatch {
	out := s.inv.MustInvoke("Mix", swatch)
	return Out[alpha.Swatch](out, 0)
}

func (s mixerStub) Blend(a alpha.Swatch, b alpha.Swatch) alpha.Swatch {
	out := s.inv.MustInvoke("Blend", a, b)
	return Out[alpha.Swatch](out, 0)
}

func (s mixerStub) Pick(c alpha.Color) alpha.Swatch {
	out := s.inv.MustInvoke("Pick", c)
	return Out[alpha.Swatch](out, 0)
}

func (s mixerStub) Favorite() alpha.Color {
	out := s.inv.MustInvoke("Favorite")
	return Out[alpha.Color](out, 0)
}

func (s mixerStub) Count(match func(alpha.Swatch) bool) int {
	out := s.inv.MustInvoke("Count", match)
	return Out[int](out, 0)
}

func (s mixerStub) Rename(label func(string) string) {
	s.inv.MustInvoke("Rename", label)
}

func (s mixerStub) EachColor(fn func(alpha.Color)) {
	s.inv.MustInvoke("EachColor", fn)
}

func (s mixerStub) Varnish(ctx context.Context, coats int) error {
	out, err := s.inv.Invoke("Varnish", ctx, coats)
	if err != nil {
		return err
	}
	return Out[error](out, 0)
}

func (s mixerStub) Describe(prefix string, labels ...string) string {
	out := s.inv.MustInvoke("Describe", prefix, labels)
	return Out[string](out, 0)
}

func (s mixerStub) Sample() alpha.Sample {
	out := s.inv.MustInvoke("Sample")
	return Out[alpha.Sample](out, 0)
}

func (s mixerStub) Check(label string) error {
	out, err := s.inv.Invoke("Check", label)
	if err != nil {
		return err
	}
	return Out[error](out, 0)
}

func (s mixerStub) Nothing() alpha.Swatch {
	out := s.inv.MustInvoke("Nothing")
	return Out[alpha.Swatch](out, 0)
}

func (s mixerStub) Any() any {
	out := s.inv.MustInvoke("Any")
	return Out[any](out, 0)
}

func (s mixerStub) Swatches() []alpha.Swatch {
	out := s.inv.MustInvoke("Swatches")
	return Out[[]alpha.Swatch](out, 0)
}

func (s mixerStub) Watch(fn func(alpha.Color)) {
	s.inv.MustInvoke("Watch", fn)
}
