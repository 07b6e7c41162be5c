//go:build !nogpu

package gpu

import (
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/layer"
	"github.com/gogpu/renderer/internal/raster"
	"github.com/gogpu/renderer/internal/text"
)

// Renderer records primitives for a Compositor to draw on the GPU.
// It cannot render on its own.
type Renderer struct {
	stack    *layer.Stack
	text     *text.Engine
	defaults text.Defaults
}

func newRenderer(engine *text.Engine, font core.Font, size core.Pixels) *Renderer {
	return &Renderer{
		stack:    layer.NewStack(),
		text:     engine,
		defaults: text.Defaults{Font: font, Size: size},
	}
}

// StartLayer opens a layer clipped to bounds.
func (r *Renderer) StartLayer(bounds core.Rectangle) { r.stack.PushClip(bounds) }

// EndLayer closes the innermost layer.
func (r *Renderer) EndLayer() { r.stack.PopClip() }

// StartTransformation applies t to everything recorded until the matching
// EndTransformation.
func (r *Renderer) StartTransformation(t core.Transformation) { r.stack.PushTransformation(t) }

// EndTransformation drops the innermost transformation.
func (r *Renderer) EndTransformation() { r.stack.PopTransformation() }

// FillQuad records a quad.
func (r *Renderer) FillQuad(q core.Quad, bg core.Background) { r.stack.DrawQuad(q, bg) }

// DrawImage records an image scaled to bounds.
func (r *Renderer) DrawImage(img core.Image, bounds core.Rectangle) {
	r.stack.DrawImage(img, bounds)
}

// FillText records a text run at position.
func (r *Renderer) FillText(t core.Text, position core.Point, color core.Color, clip core.Rectangle) {
	r.stack.DrawText(t, position, color, clip)
}

// MeasureText returns the size t occupies with the renderer defaults.
func (r *Renderer) MeasureText(t core.Text) core.Size { return r.text.Measure(t, r.defaults) }

// MeasureImage returns the pixel size of img.
func (r *Renderer) MeasureImage(img core.Image) core.PhysicalSize { return raster.MeasureImage(img) }

// DefaultFont returns the font used when a text run names none.
func (r *Renderer) DefaultFont() core.Font { return r.defaults.Font }

// DefaultSize returns the text size used when a text run names none.
func (r *Renderer) DefaultSize() core.Pixels { return r.defaults.Size }

// Clear discards every recorded primitive.
func (r *Renderer) Clear() { r.stack.Clear() }

// Layers returns the recorded layers in draw order.
func (r *Renderer) Layers() []layer.Layer { return r.stack.Layers() }

var _ core.Renderer = (*Renderer)(nil)
