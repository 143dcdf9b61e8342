package palette

import (
	"context"
	"strings"
	"sync"
)

type paint struct {
	color Color
	label string
}

// NewPaint returns a Swatch backed by an unexported type.
func NewPaint(c Color, label string) Swatch {
	return &paint{color: c, label: label}
}

func (p *paint) Color() Color  { return p.color }
func (p *paint) Label() string { return p.label }

// Studio is a Mixer that records how often each method ran.
type Studio struct {
	Palette  []Swatch
	Fav      Color
	PanicOn  string
	Labeller func(string) string
	Watcher  func(Color)

	mu    sync.Mutex
	calls map[string]int
}

// NewStudio returns a studio holding the given swatches.
func NewStudio(swatches ...Swatch) *Studio {
	return &Studio{Palette: swatches, Fav: Violet, calls: make(map[string]int)}
}

// Calls reports how many times method ran.
func (s *Studio) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Studio) record(method string) {
	s.mu.Lock()
	s.calls[method]++
	s.mu.Unlock()
	if s.PanicOn == method {
		panic("studio: " + method)
	}
}

func (s *Studio) Mix(swatch func(Swatch)) Swatch {
	s.record("Mix")
	for _, sw := range s.Palette {
		swatch(sw)
	}
	if len(s.Palette) == 0 {
		return nil
	}
	return s.Palette[0]
}

func (s *Studio) Blend(a, b Swatch) Swatch {
	s.record("Blend")
	return NewPaint(a.Color(), a.Label()+"+"+b.Label())
}

func (s *Studio) Pick(c Color) Swatch {
	s.record("Pick")
	for _, sw := range s.Palette {
		if sw.Color() == c {
			return sw
		}
	}
	return nil
}

func (s *Studio) Favorite() Color {
	s.record("Favorite")
	return s.Fav
}

func (s *Studio) Count(match func(Swatch) bool) int {
	s.record("Count")
	n := 0
	for _, sw := range s.Palette {
		if match(sw) {
			n++
		}
	}
	return n
}

func (s *Studio) Rename(label func(string) string) {
	s.record("Rename")
	s.Labeller = label
}

func (s *Studio) EachColor(fn func(Color)) {
	s.record("EachColor")
	for _, sw := range s.Palette {
		fn(sw.Color())
	}
}

func (s *Studio) Varnish(ctx context.Context, coats int) error {
	s.record("Varnish")
	if coats < 1 {
		return &MixError{Reason: "no coats"}
	}
	return ctx.Err()
}

// Describe reports the favorite color to the watcher, if any.
func (s *Studio) Describe(prefix string, labels ...string) string {
	s.record("Describe")
	if s.Watcher != nil {
		s.Watcher(s.Fav)
	}
	return prefix + strings.Join(labels, ",")
}

func (s *Studio) Sample() Sample {
	s.record("Sample")
	return Sample{Hue: s.Fav, Shade: Dark}
}

func (s *Studio) Check(label string) error {
	s.record("Check")
	if label == "" {
		return &MixError{Reason: "empty label"}
	}
	return nil
}

func (s *Studio) Nothing() Swatch {
	s.record("Nothing")
	return nil
}

func (s *Studio) Any() any {
	s.record("Any")
	return NewPaint(Green, "any")
}

func (s *Studio) Swatches() []Swatch {
	s.record("Swatches")
	return s.Palette
}

// Watch stores fn; Describe runs it later.
func (s *Studio) Watch(fn func(Color)) {
	s.record("Watch")
	s.Watcher = fn
}

// Smudge is a Swatch that cannot describe itself.
type Smudge struct {
	Source *paint
}

func (Smudge) Color() Color { return Red }

func (Smudge) Label() string { panic("smudge: no label") }

func (s *Smudge) String() string { return s.Source.label }

// Easel has the Swatch getters but not the Mixer methods.
type Easel struct{}

func (Easel) Color() Color  { return Blue }
func (Easel) Label() string { return "easel" }
