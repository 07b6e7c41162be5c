package graphics

import (
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/core"
)

// Window is the host window a compositor presents into.
type Window = gpucontext.WindowProvider

// PixelPresenter is implemented by windows that accept CPU frames.
type PixelPresenter interface {
	PresentPixels(frame *image.RGBA) error
}

// Compositor owns the backend resources of one window: it creates
// renderers and surfaces and presents frames.
//
// R is the backend renderer type and S the backend surface type.
type Compositor[R core.Renderer, S any] interface {
	// CreateRenderer returns a renderer bound to this compositor.
	CreateRenderer() R

	// CreateSurface creates a presentation surface for window.
	CreateSurface(window Window, width, height uint32) (S, error)

	// ConfigureSurface resizes surface to width x height pixels.
	ConfigureSurface(surface S, width, height uint32)

	// FetchInformation describes the backend in use.
	FetchInformation() Information

	// Present renders everything recorded in r into surface.
	Present(r R, surface S, viewport Viewport, background core.Color) error

	// Screenshot renders everything recorded in r offscreen and returns
	// tightly packed RGBA8 rows. It returns an empty slice for a zero size
	// viewport and nil if the frame could not be drawn.
	Screenshot(r R, viewport Viewport, background core.Color) []byte

	// Close releases the backend resources.
	Close() error
}

// Information describes the backend a compositor runs on.
type Information struct {
	Adapter string
	Backend string
	Type    gpucontext.AdapterType
}

// AdapterInfo converts the information to the gpucontext form.
func (i Information) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: i.Adapter, Type: i.Type}
}

// Viewport is the physical target of a frame.
type Viewport struct {
	physical    core.PhysicalSize
	scaleFactor float32
}

// NewViewport returns a viewport of the given physical size and scale.
// A non-positive scale factor is treated as 1.
func NewViewport(size core.PhysicalSize, scaleFactor float32) Viewport {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	return Viewport{physical: size, scaleFactor: scaleFactor}
}

// PhysicalSize returns the size in device pixels.
func (v Viewport) PhysicalSize() core.PhysicalSize { return v.physical }

// ScaleFactor returns the ratio of device to logical pixels.
func (v Viewport) ScaleFactor() float32 {
	if v.scaleFactor <= 0 {
		return 1
	}
	return v.scaleFactor
}

// LogicalSize returns the size in logical pixels.
func (v Viewport) LogicalSize() core.Size {
	return v.physical.Logical(v.ScaleFactor())
}

// Projection maps logical pixels to normalized device coordinates.
func (v Viewport) Projection() core.Transformation {
	s := v.LogicalSize()
	return core.Orthographic(s.Width, s.Height)
}

// ViewportOf returns the viewport matching a window's current size.
func ViewportOf(w Window) Viewport {
	width, height := w.Size()
	sf := float32(w.ScaleFactor())
	if sf <= 0 {
		sf = 1
	}
	return NewViewport(core.PhysicalSize{
		Width:  uint32(max(0, float32(width)*sf)),
		Height: uint32(max(0, float32(height)*sf)),
	}, sf)
}
