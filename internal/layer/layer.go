// Package layer records drawing commands into clipped layers.
//
// Both renderer backends record through a Stack and rasterize the
// resulting layers in order. Primitives are stored after applying the
// active transformation, so layers only need the viewport scale factor to
// be drawn.
package layer

import "github.com/gogpu/renderer/core"

// Quad is a recorded rounded rectangle.
type Quad struct {
	core.Quad
	Background core.Background
}

// Text is a recorded paragraph.
type Text struct {
	core.Text
	Position core.Point
	Color    core.Color
	Clip     core.Rectangle
	// Scale is the transformation scale, applied to the text size.
	Scale float32
}

// Image is a recorded raster image.
type Image struct {
	core.Image
	Bounds core.Rectangle
}

// Layer is a clipped group of primitives. Within a layer quads are drawn
// first, then images, then text.
type Layer struct {
	Bounds core.Rectangle
	Quads  []Quad
	Images []Image
	Texts  []Text
}

// IsEmpty reports whether the layer holds no primitive.
func (l *Layer) IsEmpty() bool {
	return len(l.Quads) == 0 && len(l.Images) == 0 && len(l.Texts) == 0
}

func (l *Layer) reset(bounds core.Rectangle) {
	l.Bounds = bounds
	l.Quads = l.Quads[:0]
	l.Images = l.Images[:0]
	l.Texts = l.Texts[:0]
}
