package fallback

import (
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
)

// Surface holds the surface of whichever compositor created it.
type Surface[SA, SB any] struct {
	variant   Variant
	primary   SA
	secondary SB
}

// Variant reports which backend created the surface.
func (s *Surface[SA, SB]) Variant() Variant { return s.variant }

// Primary returns the Primary surface, if held.
func (s *Surface[SA, SB]) Primary() (SA, bool) { return s.primary, s.variant == Primary }

// Secondary returns the Secondary surface, if held.
func (s *Surface[SA, SB]) Secondary() (SB, bool) { return s.secondary, s.variant == Secondary }

// Compositor holds either a Primary compositor, producing RA renderers and
// SA surfaces, or a Secondary one producing RB and SB.
type Compositor[RA core.Renderer, SA any, RB core.Renderer, SB any] struct {
	variant   Variant
	primary   graphics.Compositor[RA, SA]
	secondary graphics.Compositor[RB, SB]
}

// NewPrimaryCompositor wraps a Primary backend compositor.
func NewPrimaryCompositor[RA core.Renderer, SA any, RB core.Renderer, SB any](
	c graphics.Compositor[RA, SA],
) *Compositor[RA, SA, RB, SB] {
	return &Compositor[RA, SA, RB, SB]{variant: Primary, primary: c}
}

// NewSecondaryCompositor wraps a Secondary backend compositor.
func NewSecondaryCompositor[RA core.Renderer, SA any, RB core.Renderer, SB any](
	c graphics.Compositor[RB, SB],
) *Compositor[RA, SA, RB, SB] {
	return &Compositor[RA, SA, RB, SB]{variant: Secondary, secondary: c}
}

// Variant reports which backend is held.
func (c *Compositor[RA, SA, RB, SB]) Variant() Variant { return c.variant }

// Primary returns the Primary compositor, if held.
func (c *Compositor[RA, SA, RB, SB]) Primary() (graphics.Compositor[RA, SA], bool) {
	return c.primary, c.variant == Primary
}

// Secondary returns the Secondary compositor, if held.
func (c *Compositor[RA, SA, RB, SB]) Secondary() (graphics.Compositor[RB, SB], bool) {
	return c.secondary, c.variant == Secondary
}

// CreateRenderer returns a renderer of the held variant.
func (c *Compositor[RA, SA, RB, SB]) CreateRenderer() *Renderer[RA, RB] {
	switch c.variant {
	case Primary:
		return NewPrimary[RA, RB](c.primary.CreateRenderer())
	case Secondary:
		return NewSecondary[RA, RB](c.secondary.CreateRenderer())
	default:
		panic(invalid(c.variant))
	}
}

// CreateSurface returns a surface of the held variant.
func (c *Compositor[RA, SA, RB, SB]) CreateSurface(window graphics.Window, width, height uint32) (*Surface[SA, SB], error) {
	switch c.variant {
	case Primary:
		s, err := c.primary.CreateSurface(window, width, height)
		if err != nil {
			return nil, err
		}
		return &Surface[SA, SB]{variant: Primary, primary: s}, nil
	case Secondary:
		s, err := c.secondary.CreateSurface(window, width, height)
		if err != nil {
			return nil, err
		}
		return &Surface[SA, SB]{variant: Secondary, secondary: s}, nil
	default:
		panic(invalid(c.variant))
	}
}

// ConfigureSurface resizes s. It panics if s was created by the other variant.
func (c *Compositor[RA, SA, RB, SB]) ConfigureSurface(s *Surface[SA, SB], width, height uint32) {
	c.check("configure surface", s.variant)
	switch c.variant {
	case Primary:
		c.primary.ConfigureSurface(s.primary, width, height)
	case Secondary:
		c.secondary.ConfigureSurface(s.secondary, width, height)
	}
}

// FetchInformation describes the held compositor.
func (c *Compositor[RA, SA, RB, SB]) FetchInformation() graphics.Information {
	switch c.variant {
	case Primary:
		return c.primary.FetchInformation()
	case Secondary:
		return c.secondary.FetchInformation()
	default:
		panic(invalid(c.variant))
	}
}

// Present draws r into s. It panics if r or s belong to the other variant.
func (c *Compositor[RA, SA, RB, SB]) Present(r *Renderer[RA, RB], s *Surface[SA, SB], viewport graphics.Viewport, background core.Color) error {
	c.check("present", r.variant)
	c.check("present", s.variant)
	switch c.variant {
	case Primary:
		return c.primary.Present(r.primary, s.primary, viewport, background)
	case Secondary:
		return c.secondary.Present(r.secondary, s.secondary, viewport, background)
	default:
		panic(invalid(c.variant))
	}
}

// Screenshot draws r offscreen with the held compositor. It panics if r
// belongs to the other variant.
func (c *Compositor[RA, SA, RB, SB]) Screenshot(r *Renderer[RA, RB], viewport graphics.Viewport, background core.Color) []byte {
	c.check("screenshot", r.variant)
	switch c.variant {
	case Primary:
		return c.primary.Screenshot(r.primary, viewport, background)
	case Secondary:
		return c.secondary.Screenshot(r.secondary, viewport, background)
	default:
		panic(invalid(c.variant))
	}
}

// Close releases the held compositor.
func (c *Compositor[RA, SA, RB, SB]) Close() error {
	switch c.variant {
	case Primary:
		return c.primary.Close()
	case Secondary:
		return c.secondary.Close()
	default:
		panic(invalid(c.variant))
	}
}

// check panics unless got matches the held variant.
func (c *Compositor[RA, SA, RB, SB]) check(op string, got Variant) {
	if c.variant != Primary && c.variant != Secondary {
		panic(invalid(c.variant))
	}
	if got != c.variant {
		panic(&MismatchError{Operation: op, Want: c.variant, Got: got})
	}
}
