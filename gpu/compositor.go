//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
	"github.com/gogpu/renderer/internal/raster"
	"github.com/gogpu/renderer/internal/text"
)

// Backend describes this backend in the registry.
var Backend = graphics.BackendInfo{
	Name:        graphics.BackendGPU,
	Aliases:     []string{"wgpu", "vulkan"},
	Accelerated: true,
}

var errClosed = errors.New("gpu: compositor closed")

// textureDestroyer is implemented by host textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

func init() {
	graphics.RegisterBackend(Backend)
}

// Surface is the presentation target of one window.
type Surface struct {
	width, height uint32

	drawer    gpucontext.TextureDrawer
	presenter graphics.PixelPresenter
	texture   gpucontext.Texture
}

// Size returns the configured size in pixels.
func (s *Surface) Size() core.PhysicalSize {
	return core.PhysicalSize{Width: s.width, Height: s.height}
}

// Compositor draws renderers on a HAL device.
type Compositor struct {
	settings graphics.Settings
	device   *device
	pipeline *pipeline
	text     *text.Engine
	surfaces map[*Surface]struct{}
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

// WithBackend creates a compositor if name selects this backend and a
// device can be acquired.
func WithBackend(settings graphics.Settings, window graphics.Window, name string) (*Compositor, error) {
	if !Backend.Matches(name) {
		return nil, graphics.NotMatched(Backend.Name, name)
	}
	d, err := openDevice(window)
	if err != nil {
		return nil, graphics.RequestFailedError(Backend.Name, name, err)
	}
	p, err := newPipeline(d.device, d.queue, settings.Antialiasing != graphics.AntialiasingNone)
	if err != nil {
		d.destroy()
		return nil, graphics.RequestFailedError(Backend.Name, name, err)
	}
	graphics.Logger().Info("gpu: compositor created", "adapter", d.info.Adapter, "requested", name)
	return &Compositor{
		settings: settings,
		device:   d,
		pipeline: p,
		text:     text.NewEngine(),
		surfaces: make(map[*Surface]struct{}),
	}, nil
}

// CreateRenderer returns a renderer sharing this compositor's text caches.
func (c *Compositor) CreateRenderer() *Renderer {
	return newRenderer(c.text, c.settings.DefaultFont, c.settings.DefaultTextSize)
}

// CreateSurface binds window, which must implement gpucontext.TextureDrawer
// or graphics.PixelPresenter.
func (c *Compositor) CreateSurface(window graphics.Window, width, height uint32) (*Surface, error) {
	s := &Surface{}
	switch w := window.(type) {
	case gpucontext.TextureDrawer:
		s.drawer = w
	case graphics.PixelPresenter:
		s.presenter = w
	default:
		return nil, fmt.Errorf("gpu: %T: %w", window, graphics.ErrIncompatibleWindow)
	}
	c.ConfigureSurface(s, width, height)
	c.surfaces[s] = struct{}{}
	return s, nil
}

// ConfigureSurface resizes the surface. The presentation texture is
// destroyed and recreated on the next Present.
func (c *Compositor) ConfigureSurface(s *Surface, width, height uint32) {
	if s.width == width && s.height == height {
		return
	}
	s.width, s.height = width, height
	releaseTexture(s)
}

// releaseTexture destroys the surface texture if the host allows it.
func releaseTexture(s *Surface) {
	if s.texture == nil {
		return
	}
	if d, ok := s.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	s.texture = nil
}

// FetchInformation describes the adapter.
func (c *Compositor) FetchInformation() graphics.Information { return c.device.info }

// Present draws r and shows the frame in the surface's window.
func (c *Compositor) Present(r *Renderer, s *Surface, viewport graphics.Viewport, background core.Color) error {
	if s.width == 0 || s.height == 0 || s.Size() != viewport.PhysicalSize() {
		return graphics.ErrSurfaceOutdated
	}
	frame, err := c.render(r, viewport, background)
	if err != nil {
		return fmt.Errorf("gpu: present: %w", err)
	}
	if s.drawer == nil {
		if err := s.presenter.PresentPixels(frame); err != nil {
			return fmt.Errorf("gpu: present: %w", err)
		}
		return nil
	}
	if err := c.upload(s, frame); err != nil {
		return fmt.Errorf("gpu: present: %w", err)
	}
	if err := s.drawer.DrawTexture(s.texture, 0, 0); err != nil {
		return fmt.Errorf("gpu: present: %w", err)
	}
	return nil
}

// upload updates the surface texture in place when possible and replaces
// it otherwise.
func (c *Compositor) upload(s *Surface, frame *image.RGBA) error {
	if u, ok := s.texture.(gpucontext.TextureUpdater); ok {
		return u.UpdateData(frame.Pix)
	}
	releaseTexture(s)
	tex, err := s.drawer.TextureCreator().NewTextureFromRGBA(int(s.width), int(s.height), frame.Pix)
	if err != nil {
		return err
	}
	s.texture = tex
	return nil
}

// Screenshot draws r offscreen and returns the pixels. It returns nil if
// the frame could not be drawn, and an empty slice for a zero size.
func (c *Compositor) Screenshot(r *Renderer, viewport graphics.Viewport, background core.Color) []byte {
	frame, err := c.render(r, viewport, background)
	if err != nil {
		graphics.Logger().Warn("gpu: screenshot failed", "err", err)
		return nil
	}
	return frame.Pix
}

// render draws every layer of r: quads on the GPU, then images and text on
// the CPU, layer by layer.
func (c *Compositor) render(r *Renderer, viewport graphics.Viewport, background core.Color) (*image.RGBA, error) {
	if c.pipeline == nil {
		return nil, errClosed
	}
	size := viewport.PhysicalSize()
	frame := image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	if size.Width == 0 || size.Height == 0 {
		return frame, nil
	}
	scale := viewport.ScaleFactor()
	canvas := raster.NewCanvas(frame, scale, r.text, r.defaults)
	canvas.Clear(background)

	layers := r.stack.Layers()
	var quads []gpuQuad
	for i := range layers {
		l := &layers[i]
		clip := pixelClip(l.Bounds, scale, frame.Rect)
		quads = quads[:0]
		for _, q := range l.Quads {
			if gq, ok := convertQuad(q, scale, clip); ok {
				quads = append(quads, gq)
			}
		}
		if err := c.pipeline.draw(frame, quads); err != nil {
			return nil, err
		}
		canvas.DrawLayer(l, false)
	}
	return frame, nil
}

func pixelClip(bounds core.Rectangle, scale float32, frame image.Rectangle) image.Rectangle {
	x0, y0, x1, y1 := bounds.Scale(scale).Snap()
	return image.Rect(x0, y0, x1, y1).Intersect(frame)
}

// Passes returns the number of compute passes dispatched so far.
func (c *Compositor) Passes() uint64 {
	if c.pipeline == nil {
		return 0
	}
	return c.pipeline.passes
}

// Close releases the surface textures, the pipeline and, unless it is
// shared, the device.
func (c *Compositor) Close() error {
	for s := range c.surfaces {
		releaseTexture(s)
		delete(c.surfaces, s)
	}
	if c.pipeline != nil {
		c.pipeline.destroy()
		c.pipeline = nil
	}
	if c.device != nil {
		c.device.destroy()
		c.device = nil
	}
	return nil
}

var _ graphics.Compositor[*Renderer, *Surface] = (*Compositor)(nil)
