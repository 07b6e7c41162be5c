package core

import "math"

// Transformation is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Transformation struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transformation {
	return Transformation{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float32) Transformation {
	return Transformation{A: 1, C: x, E: 1, F: y}
}

// Scale returns a uniform scale.
func Scale(f float32) Transformation {
	return Transformation{A: f, E: f}
}

// Orthographic maps logical pixels of a width x height target to normalized
// device coordinates, y pointing down.
func Orthographic(width, height float32) Transformation {
	if width == 0 || height == 0 {
		return Identity()
	}
	return Transformation{
		A: 2 / width, C: -1,
		E: -2 / height, F: 1,
	}
}

// Multiply returns t * o, applying o first.
func (t Transformation) Multiply(o Transformation) Transformation {
	return Transformation{
		A: t.A*o.A + t.B*o.D,
		B: t.A*o.B + t.B*o.E,
		C: t.A*o.C + t.B*o.F + t.C,
		D: t.D*o.A + t.E*o.D,
		E: t.D*o.B + t.E*o.E,
		F: t.D*o.C + t.E*o.F + t.F,
	}
}

// TransformPoint applies t to p.
func (t Transformation) TransformPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// TransformRectangle returns the bounding box of r after t.
func (t Transformation) TransformRectangle(r Rectangle) Rectangle {
	if t.IsTranslation() {
		return r.Translate(t.Translation())
	}
	corners := [4]Point{
		t.TransformPoint(Point{X: r.X, Y: r.Y}),
		t.TransformPoint(Point{X: r.X + r.Width, Y: r.Y}),
		t.TransformPoint(Point{X: r.X, Y: r.Y + r.Height}),
		t.TransformPoint(Point{X: r.X + r.Width, Y: r.Y + r.Height}),
	}
	minP, maxP := corners[0], corners[0]
	for _, c := range corners[1:] {
		minP.X, minP.Y = min(minP.X, c.X), min(minP.Y, c.Y)
		maxP.X, maxP.Y = max(maxP.X, c.X), max(maxP.Y, c.Y)
	}
	return Rectangle{X: minP.X, Y: minP.Y, Width: maxP.X - minP.X, Height: maxP.Y - minP.Y}
}

// Translation returns the translation component.
func (t Transformation) Translation() Vector {
	return Vector{X: t.C, Y: t.F}
}

// ScaleFactor returns the average axis scale, used for text and border widths.
func (t Transformation) ScaleFactor() float32 {
	sx := math.Hypot(float64(t.A), float64(t.D))
	sy := math.Hypot(float64(t.B), float64(t.E))
	return float32((sx + sy) / 2)
}

// Invert returns the inverse transformation, or identity when t is singular.
func (t Transformation) Invert() Transformation {
	det := t.A*t.E - t.B*t.D
	if float32(math.Abs(float64(det))) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Transformation{
		A: t.E * inv,
		B: -t.B * inv,
		C: (t.B*t.F - t.C*t.E) * inv,
		D: -t.D * inv,
		E: t.A * inv,
		F: (t.C*t.D - t.A*t.F) * inv,
	}
}

// IsIdentity reports whether t is the identity.
func (t Transformation) IsIdentity() bool {
	return t == Identity()
}

// IsTranslation reports whether t only translates.
func (t Transformation) IsTranslation() bool {
	return t.A == 1 && t.B == 0 && t.D == 0 && t.E == 1
}
