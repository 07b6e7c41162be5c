package text

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// subpixelSteps is the number of horizontal glyph positions cached per pixel.
const subpixelSteps = 4

type glyphKey struct {
	face     int
	id       sfnt.GlyphIndex
	size     fixed.Int26_6
	subpixel uint8
}

// mask is a rasterized glyph. Offset is the top left corner of Alpha
// relative to the integer pen position.
type mask struct {
	Alpha  *image.Alpha
	Offset image.Point
}

func (l *layouter) rasterize(face *Face, key glyphKey) *mask {
	segs, err := face.outline.LoadGlyph(&l.buf, key.id, key.size, nil)
	if err != nil || len(segs) == 0 {
		return nil
	}
	shift := float32(key.subpixel) / subpixelSteps

	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, s := range segs {
		for _, p := range s.Args[:argCount(s.Op)] {
			x, y := fromFixed(p.X)+shift, fromFixed(p.Y)
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	x0, y0 := int(math.Floor(float64(minX))), int(math.Floor(float64(minY)))
	x1, y1 := int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY)))
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil
	}

	ox, oy := shift-float32(x0), -float32(y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fromFixed(p.X) + ox, fromFixed(p.Y) + oy
	}

	z := vector.NewRasterizer(w, h)
	for i, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
	return &mask{Alpha: alpha, Offset: image.Pt(x0, y0)}
}

func argCount(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}
