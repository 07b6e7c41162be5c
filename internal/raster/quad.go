package raster

import (
	"image"

	"github.com/gogpu/renderer/core"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// FillQuad draws q's shadow, background and border, clipped to clip.
// q and clip are in logical units.
func (c *Canvas) FillQuad(q core.Quad, bg core.Background, clip core.Rectangle) {
	clipRect := c.pixelClip(clip)
	if clipRect.Empty() {
		return
	}
	b := q.Bounds.Scale(c.scale)
	radius := scaleRadius(q.Border.Radius, c.scale)
	radius = clampRadius(radius, b.Width, b.Height)

	if !q.Shadow.Color.IsTransparent() {
		c.drawShadow(b, radius, q.Shadow, clipRect)
	}
	if !bg.Color.IsTransparent() {
		c.fillPath(b, clipRect, bg.Color, func(ox, oy float32) {
			c.roundedRect(b.X-ox, b.Y-oy, b.Width, b.Height, radius, false)
		})
	}

	bw := q.Border.Width * c.scale
	if bw > 0 && !q.Border.Color.IsTransparent() {
		bw = min(bw, b.Width/2, b.Height/2)
		inner := core.Rectangle{X: b.X + bw, Y: b.Y + bw, Width: b.Width - 2*bw, Height: b.Height - 2*bw}
		innerRadius := insetRadius(radius, bw)
		c.fillPath(b, clipRect, q.Border.Color, func(ox, oy float32) {
			c.roundedRect(b.X-ox, b.Y-oy, b.Width, b.Height, radius, false)
			if !inner.IsEmpty() {
				c.roundedRect(inner.X-ox, inner.Y-oy, inner.Width, inner.Height, innerRadius, true)
			}
		})
	}
}

// fillPath rasterizes the path produced by build over the pixels of
// bounds inside clip. build receives the pixel origin to subtract.
func (c *Canvas) fillPath(bounds core.Rectangle, clip image.Rectangle, color core.Color, build func(ox, oy float32)) {
	x0, y0, x1, y1 := bounds.Snap()
	r := image.Rect(x0, y0, x1, y1).Intersect(clip)
	if r.Empty() {
		return
	}
	c.z.Reset(r.Dx(), r.Dy())
	build(float32(r.Min.X), float32(r.Min.Y))
	c.z.Draw(c.img, r, image.NewUniform(color.Premultiplied()), image.Point{})
}

// roundedRect appends a closed rounded rectangle to the rasterizer.
// Reversed paths subtract from the coverage of enclosing paths.
func (c *Canvas) roundedRect(x, y, w, h float32, r core.Radius, reverse bool) {
	tl, tr, br, bl := r[0], r[1], r[2], r[3]
	right, bottom := x+w, y+h
	k := float32(1 - kappa)

	if !reverse {
		c.z.MoveTo(x+tl, y)
		c.z.LineTo(right-tr, y)
		if tr > 0 {
			c.z.CubeTo(right-tr*k, y, right, y+tr*k, right, y+tr)
		}
		c.z.LineTo(right, bottom-br)
		if br > 0 {
			c.z.CubeTo(right, bottom-br*k, right-br*k, bottom, right-br, bottom)
		}
		c.z.LineTo(x+bl, bottom)
		if bl > 0 {
			c.z.CubeTo(x+bl*k, bottom, x, bottom-bl*k, x, bottom-bl)
		}
		c.z.LineTo(x, y+tl)
		if tl > 0 {
			c.z.CubeTo(x, y+tl*k, x+tl*k, y, x+tl, y)
		}
		c.z.ClosePath()
		return
	}

	c.z.MoveTo(x+tl, y)
	if tl > 0 {
		c.z.CubeTo(x+tl*k, y, x, y+tl*k, x, y+tl)
	}
	c.z.LineTo(x, bottom-bl)
	if bl > 0 {
		c.z.CubeTo(x, bottom-bl*k, x+bl*k, bottom, x+bl, bottom)
	}
	c.z.LineTo(right-br, bottom)
	if br > 0 {
		c.z.CubeTo(right-br*k, bottom, right, bottom-br*k, right, bottom-br)
	}
	c.z.LineTo(right, y+tr)
	if tr > 0 {
		c.z.CubeTo(right, y+tr*k, right-tr*k, y, right-tr, y)
	}
	c.z.ClosePath()
}

func scaleRadius(r core.Radius, f float32) core.Radius {
	for i := range r {
		r[i] *= f
	}
	return r
}

// clampRadius keeps every corner within half the shorter side.
func clampRadius(r core.Radius, w, h float32) core.Radius {
	limit := max(0, min(w, h)/2)
	for i := range r {
		r[i] = max(0, min(r[i], limit))
	}
	return r
}

func insetRadius(r core.Radius, d float32) core.Radius {
	for i := range r {
		r[i] = max(0, r[i]-d)
	}
	return r
}
