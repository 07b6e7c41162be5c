package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/renderer/core"
)

// DrawImage scales img into bounds, clipped to clip. Both are logical.
func (c *Canvas) DrawImage(img core.Image, bounds, clip core.Rectangle) {
	if img.Handle == nil {
		return
	}
	src := img.Handle.Bounds()
	if src.Empty() {
		return
	}
	x0, y0, x1, y1 := bounds.Scale(c.scale).Snap()
	dr := image.Rect(x0, y0, x1, y1)
	visible := dr.Intersect(c.pixelClip(clip))
	if visible.Empty() {
		return
	}

	dst := c.img.SubImage(visible).(*image.RGBA)
	var opts *draw.Options
	if op := img.EffectiveOpacity(); op < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(op*255 + 0.5)})}
	}
	interpolator(img.Filter).Scale(dst, dr, img.Handle, src, draw.Over, opts)
}

func interpolator(f core.FilterMethod) draw.Interpolator {
	if f == core.FilterNearest {
		return draw.NearestNeighbor
	}
	return draw.BiLinear
}

// MeasureImage returns the pixel size of img.
func MeasureImage(img core.Image) core.PhysicalSize {
	if img.Handle == nil {
		return core.PhysicalSize{}
	}
	b := img.Handle.Bounds()
	return core.PhysicalSize{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
}
