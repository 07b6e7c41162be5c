package fallback

import (
	"io"

	"github.com/gogpu/renderer/core"
)

// Renderer holds either a Primary renderer A or a Secondary renderer B.
type Renderer[A, B core.Renderer] struct {
	variant   Variant
	primary   A
	secondary B
}

// NewPrimary wraps a Primary backend renderer.
func NewPrimary[A, B core.Renderer](a A) *Renderer[A, B] {
	return &Renderer[A, B]{variant: Primary, primary: a}
}

// NewSecondary wraps a Secondary backend renderer.
func NewSecondary[A, B core.Renderer](b B) *Renderer[A, B] {
	return &Renderer[A, B]{variant: Secondary, secondary: b}
}

// Variant reports which backend is held.
func (r *Renderer[A, B]) Variant() Variant { return r.variant }

// Primary returns the Primary renderer, if held.
func (r *Renderer[A, B]) Primary() (A, bool) {
	return r.primary, r.variant == Primary
}

// Secondary returns the Secondary renderer, if held.
func (r *Renderer[A, B]) Secondary() (B, bool) {
	return r.secondary, r.variant == Secondary
}

// StartLayer forwards to the held renderer.
func (r *Renderer[A, B]) StartLayer(bounds core.Rectangle) {
	switch r.variant {
	case Primary:
		r.primary.StartLayer(bounds)
	case Secondary:
		r.secondary.StartLayer(bounds)
	default:
		panic(invalid(r.variant))
	}
}

// EndLayer forwards to the held renderer.
func (r *Renderer[A, B]) EndLayer() {
	switch r.variant {
	case Primary:
		r.primary.EndLayer()
	case Secondary:
		r.secondary.EndLayer()
	default:
		panic(invalid(r.variant))
	}
}

// StartTransformation forwards to the held renderer.
func (r *Renderer[A, B]) StartTransformation(t core.Transformation) {
	switch r.variant {
	case Primary:
		r.primary.StartTransformation(t)
	case Secondary:
		r.secondary.StartTransformation(t)
	default:
		panic(invalid(r.variant))
	}
}

// EndTransformation forwards to the held renderer.
func (r *Renderer[A, B]) EndTransformation() {
	switch r.variant {
	case Primary:
		r.primary.EndTransformation()
	case Secondary:
		r.secondary.EndTransformation()
	default:
		panic(invalid(r.variant))
	}
}

// FillQuad forwards to the held renderer.
func (r *Renderer[A, B]) FillQuad(q core.Quad, bg core.Background) {
	switch r.variant {
	case Primary:
		r.primary.FillQuad(q, bg)
	case Secondary:
		r.secondary.FillQuad(q, bg)
	default:
		panic(invalid(r.variant))
	}
}

// FillText forwards to the held renderer.
func (r *Renderer[A, B]) FillText(t core.Text, position core.Point, color core.Color, clip core.Rectangle) {
	switch r.variant {
	case Primary:
		r.primary.FillText(t, position, color, clip)
	case Secondary:
		r.secondary.FillText(t, position, color, clip)
	default:
		panic(invalid(r.variant))
	}
}

// MeasureText measures t with the held renderer.
func (r *Renderer[A, B]) MeasureText(t core.Text) core.Size {
	switch r.variant {
	case Primary:
		return r.primary.MeasureText(t)
	case Secondary:
		return r.secondary.MeasureText(t)
	default:
		panic(invalid(r.variant))
	}
}

// DefaultFont returns the held renderer's default font.
func (r *Renderer[A, B]) DefaultFont() core.Font {
	switch r.variant {
	case Primary:
		return r.primary.DefaultFont()
	case Secondary:
		return r.secondary.DefaultFont()
	default:
		panic(invalid(r.variant))
	}
}

// DefaultSize returns the held renderer's default text size.
func (r *Renderer[A, B]) DefaultSize() core.Pixels {
	switch r.variant {
	case Primary:
		return r.primary.DefaultSize()
	case Secondary:
		return r.secondary.DefaultSize()
	default:
		panic(invalid(r.variant))
	}
}

// DrawImage forwards to the held renderer.
func (r *Renderer[A, B]) DrawImage(img core.Image, bounds core.Rectangle) {
	switch r.variant {
	case Primary:
		r.primary.DrawImage(img, bounds)
	case Secondary:
		r.secondary.DrawImage(img, bounds)
	default:
		panic(invalid(r.variant))
	}
}

// MeasureImage measures img with the held renderer.
func (r *Renderer[A, B]) MeasureImage(img core.Image) core.PhysicalSize {
	switch r.variant {
	case Primary:
		return r.primary.MeasureImage(img)
	case Secondary:
		return r.secondary.MeasureImage(img)
	default:
		panic(invalid(r.variant))
	}
}

// Clear forwards to the held renderer.
func (r *Renderer[A, B]) Clear() {
	switch r.variant {
	case Primary:
		r.primary.Clear()
	case Secondary:
		r.secondary.Clear()
	default:
		panic(invalid(r.variant))
	}
}

// Screenshot forwards to the held backend if it implements core.Headless.
// The check is by capability, not by variant, so a Primary backend that
// implements core.Headless is used as well. Otherwise Screenshot panics
// with an *UnsupportedError.
func (r *Renderer[A, B]) Screenshot(size core.PhysicalSize, scaleFactor float32, background core.Color) []byte {
	var backend any
	switch r.variant {
	case Primary:
		backend = r.primary
	case Secondary:
		backend = r.secondary
	default:
		panic(invalid(r.variant))
	}
	h, ok := backend.(core.Headless)
	if !ok {
		panic(&UnsupportedError{Operation: "screenshot", Variant: r.variant})
	}
	return h.Screenshot(size, scaleFactor, background)
}

// Close releases the held renderer if it implements io.Closer.
func (r *Renderer[A, B]) Close() error {
	var backend any
	switch r.variant {
	case Primary:
		backend = r.primary
	case Secondary:
		backend = r.secondary
	default:
		panic(invalid(r.variant))
	}
	if c, ok := backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ core.Headless = (*Renderer[core.Renderer, core.Headless])(nil)
