//go:build !nosoftware

package software

import (
	"image"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/layer"
	"github.com/gogpu/renderer/internal/raster"
	"github.com/gogpu/renderer/internal/text"
)

// Renderer records primitives and rasterizes them on the CPU.
type Renderer struct {
	stack    *layer.Stack
	text     *text.Engine
	defaults text.Defaults
}

// NewRenderer creates a headless renderer with the given default font and text size.
func NewRenderer(font core.Font, size core.Pixels) *Renderer {
	return newRenderer(text.NewEngine(), font, size)
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

// StartTransformation pushes t.
func (r *Renderer) StartTransformation(t core.Transformation) { r.stack.PushTransformation(t) }

// EndTransformation pops the innermost transformation.
func (r *Renderer) EndTransformation() { r.stack.PopTransformation() }

// FillQuad records a quad.
func (r *Renderer) FillQuad(q core.Quad, bg core.Background) { r.stack.DrawQuad(q, bg) }

// FillText records a paragraph.
func (r *Renderer) FillText(t core.Text, position core.Point, color core.Color, clip core.Rectangle) {
	r.stack.DrawText(t, position, color, clip)
}

// MeasureText lays out t and returns its logical size.
func (r *Renderer) MeasureText(t core.Text) core.Size {
	return r.text.Measure(t, r.defaults)
}

// DefaultFont returns the font used when text names none.
func (r *Renderer) DefaultFont() core.Font { return r.defaults.Font }

// DefaultSize returns the text size used when text names none.
func (r *Renderer) DefaultSize() core.Pixels { return r.defaults.Size }

// DrawImage records an image.
func (r *Renderer) DrawImage(img core.Image, bounds core.Rectangle) { r.stack.DrawImage(img, bounds) }

// MeasureImage returns the pixel size of img.
func (r *Renderer) MeasureImage(img core.Image) core.PhysicalSize { return raster.MeasureImage(img) }

// Clear discards every recorded primitive.
func (r *Renderer) Clear() { r.stack.Clear() }

// Layers returns the recorded layers in draw order.
func (r *Renderer) Layers() []layer.Layer { return r.stack.Layers() }

// Draw rasterizes the recorded primitives into dst over background.
func (r *Renderer) Draw(dst *image.RGBA, scaleFactor float32, background core.Color) {
	c := raster.NewCanvas(dst, scaleFactor, r.text, r.defaults)
	c.Clear(background)
	c.DrawLayers(r.stack.Layers())
}

// Screenshot renders the recorded primitives into a new size buffer and
// returns its RGBA8 rows. A zero size yields an empty slice.
func (r *Renderer) Screenshot(size core.PhysicalSize, scaleFactor float32, background core.Color) []byte {
	if size.Width == 0 || size.Height == 0 {
		return []byte{}
	}
	img := image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	r.Draw(img, scaleFactor, background)
	return img.Pix
}

var _ core.Headless = (*Renderer)(nil)
