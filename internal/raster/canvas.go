// Package raster draws recorded layers into CPU pixel buffers.
//
// Geometry is rasterized with golang.org/x/image/vector, images are
// resampled with golang.org/x/image/draw and text is delegated to the
// text engine. All pixels are premultiplied RGBA, the layout of
// image.RGBA.
package raster

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/layer"
	"github.com/gogpu/renderer/internal/text"
)

// Canvas draws logical-unit primitives into an RGBA buffer at a fixed
// scale factor. A Canvas is not safe for concurrent use.
type Canvas struct {
	img      *image.RGBA
	scale    float32
	z        vector.Rasterizer
	text     *text.Engine
	defaults text.Defaults
}

// NewCanvas wraps img. Text is drawn with engine using defaults for
// unset fonts and sizes.
func NewCanvas(img *image.RGBA, scale float32, engine *text.Engine, defaults text.Defaults) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	return &Canvas{img: img, scale: scale, text: engine, defaults: defaults}
}

// Image returns the target buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the whole buffer with bg.
func (c *Canvas) Clear(bg core.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg.Premultiplied()), image.Point{}, draw.Src)
}

// DrawLayers draws layers in order.
func (c *Canvas) DrawLayers(layers []layer.Layer) {
	for i := range layers {
		c.DrawLayer(&layers[i], true)
	}
}

// DrawLayer draws one layer: quads, then images, then text. When withQuads
// is false the quads are assumed to be drawn already.
func (c *Canvas) DrawLayer(l *layer.Layer, withQuads bool) {
	if withQuads {
		for _, q := range l.Quads {
			c.FillQuad(q.Quad, q.Background, l.Bounds)
		}
	}
	for _, img := range l.Images {
		c.DrawImage(img.Image, img.Bounds, l.Bounds)
	}
	for _, t := range l.Texts {
		c.DrawText(t)
	}
}

// DrawText draws a recorded paragraph.
func (c *Canvas) DrawText(t layer.Text) {
	if c.text == nil {
		return
	}
	if t.Scale > 0 && t.Scale != 1 {
		t.Size = core.Pixels(float32(c.resolvedSize(t.Size)) * t.Scale)
		t.Bounds.Width *= t.Scale
		t.Bounds.Height *= t.Scale
	}
	_ = c.text.Draw(c.img, t.Text, c.defaults, t.Position, t.Color, t.Clip, c.scale)
}

func (c *Canvas) resolvedSize(s core.Pixels) core.Pixels {
	if s > 0 {
		return s
	}
	return c.defaults.Size
}

// pixelClip converts a logical clip to a pixel rectangle inside the buffer.
func (c *Canvas) pixelClip(clip core.Rectangle) image.Rectangle {
	x0, y0, x1, y1 := clip.Scale(c.scale).Snap()
	return image.Rect(x0, y0, x1, y1).Intersect(c.img.Bounds())
}
