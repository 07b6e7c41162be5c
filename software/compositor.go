//go:build !nosoftware

package software

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
	"github.com/gogpu/renderer/internal/text"
)

// Backend describes this backend in the registry.
var Backend = graphics.BackendInfo{
	Name:     graphics.BackendSoftware,
	Aliases:  []string{"cpu"},
	Headless: true,
}

func init() {
	graphics.RegisterBackend(Backend)
}

// Surface is a CPU frame buffer bound to a window.
type Surface struct {
	frame     *image.RGBA
	presenter graphics.PixelPresenter
}

// Size returns the surface size in pixels.
func (s *Surface) Size() core.PhysicalSize {
	if s.frame == nil {
		return core.PhysicalSize{}
	}
	b := s.frame.Bounds()
	return core.PhysicalSize{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
}

// Frame returns the last rendered frame.
func (s *Surface) Frame() *image.RGBA { return s.frame }

// Compositor presents software rendered frames.
type Compositor struct {
	settings graphics.Settings
	text     *text.Engine
}

// New creates a compositor honoring the settings' backend candidates.
func New(settings graphics.Settings, window graphics.Window) (*Compositor, error) {
	var err error
	for _, name := range settings.Candidates() {
		var c *Compositor
		if c, err = WithBackend(settings, window, name); err == nil {
			return c, nil
		}
	}
	return nil, err
}

// WithBackend creates a compositor if name selects this backend.
// The empty name selects it unconditionally.
func WithBackend(settings graphics.Settings, window graphics.Window, name string) (*Compositor, error) {
	if !Backend.Matches(name) {
		return nil, graphics.NotMatched(Backend.Name, name)
	}
	graphics.Logger().Info("software: compositor created", "requested", name)
	return &Compositor{settings: settings, text: text.NewEngine()}, nil
}

// CreateRenderer returns a renderer sharing this compositor's text caches.
func (c *Compositor) CreateRenderer() *Renderer {
	return newRenderer(c.text, c.settings.DefaultFont, c.settings.DefaultTextSize)
}

// CreateSurface binds a frame buffer to window, which must implement
// graphics.PixelPresenter.
func (c *Compositor) CreateSurface(window graphics.Window, width, height uint32) (*Surface, error) {
	p, ok := window.(graphics.PixelPresenter)
	if !ok {
		return nil, fmt.Errorf("software: %T: %w", window, graphics.ErrIncompatibleWindow)
	}
	s := &Surface{presenter: p}
	c.ConfigureSurface(s, width, height)
	return s, nil
}

// ConfigureSurface resizes the frame buffer.
func (c *Compositor) ConfigureSurface(s *Surface, width, height uint32) {
	if width == 0 || height == 0 {
		s.frame = nil
		return
	}
	if s.Size() == (core.PhysicalSize{Width: width, Height: height}) {
		return
	}
	s.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
}

// FetchInformation describes the backend.
func (c *Compositor) FetchInformation() graphics.Information {
	return graphics.Information{
		Adapter: "CPU",
		Backend: Backend.Name,
		Type:    gpucontext.AdapterTypeSoftware,
	}
}

// Present draws r into the surface and hands the frame to the window.
func (c *Compositor) Present(r *Renderer, s *Surface, viewport graphics.Viewport, background core.Color) error {
	if s.frame == nil {
		return graphics.ErrSurfaceOutdated
	}
	if s.Size() != viewport.PhysicalSize() {
		return graphics.ErrSurfaceOutdated
	}
	r.Draw(s.frame, viewport.ScaleFactor(), background)
	if err := s.presenter.PresentPixels(s.frame); err != nil {
		return fmt.Errorf("software: present: %w", err)
	}
	return nil
}

// Screenshot renders r offscreen at the viewport size.
func (c *Compositor) Screenshot(r *Renderer, viewport graphics.Viewport, background core.Color) []byte {
	return r.Screenshot(viewport.PhysicalSize(), viewport.ScaleFactor(), background)
}

// Close releases nothing; the frame buffers are garbage collected.
func (c *Compositor) Close() error { return nil }

var _ graphics.Compositor[*Renderer, *Surface] = (*Compositor)(nil)
