package palette

import "context"

// Color is an enum whose constants are declared in a different order than
// alpha's, plus one alpha lacks.
type Color int

const (
	Blue Color = iota
	Green
	Red
	Violet
)

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	case Blue:
		return "BLUE"
	case Violet:
		return "VIOLET"
	}
	return "UNKNOWN"
}

// Shade is a string enum.
type Shade string

const (
	Light Shade = "LIGHT"
	Dark  Shade = "DARK"
)

// Swatch is a domain interface.
type Swatch interface {
	Color() Color
	Label() string
}

// Mixer combines swatches.
type Mixer interface {
	Mix(swatch func(Swatch)) Swatch
	Blend(a, b Swatch) Swatch
	Pick(c Color) Swatch
	Favorite() Color
	Count(match func(Swatch) bool) int
	Rename(label func(string) string)
	EachColor(fn func(Color))
	Varnish(ctx context.Context, coats int) error
	Describe(prefix string, labels ...string) string
	Sample() Sample
	Check(label string) error
	Nothing() Swatch
	Any() any
	Swatches() []Swatch
	Watch(fn func(Color))
}

// Chip is a concrete Swatch.
type Chip struct {
	Hue  Color
	Name string
}

func (c Chip) Color() Color  { return c.Hue }
func (c Chip) Label() string { return c.Name }

// Sample is a concrete domain value.
type Sample struct {
	Hue   Color
	Shade Shade
}

// MixError is a domain-declared error type.
type MixError struct{ Reason string }

func (e *MixError) Error() string { return e.Reason }
