package core

import "math"

// Point is a position in logical pixels.
type Point struct {
	X, Y float32
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vector is a displacement in logical pixels.
type Vector struct {
	X, Y float32
}

// Size is a logical extent.
type Size struct {
	Width, Height float32
}

// PhysicalSize is an extent in device pixels.
type PhysicalSize struct {
	Width, Height uint32
}

// Area returns the number of pixels covered.
func (s PhysicalSize) Area() int {
	return int(s.Width) * int(s.Height)
}

// Logical converts the physical size to logical units.
func (s PhysicalSize) Logical(scaleFactor float32) Size {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	return Size{
		Width:  float32(s.Width) / scaleFactor,
		Height: float32(s.Height) / scaleFactor,
	}
}

// Rectangle is an axis aligned box given by its top left corner and size.
type Rectangle struct {
	X, Y          float32
	Width, Height float32
}

// NewRectangle builds a rectangle from a position and a size.
func NewRectangle(p Point, s Size) Rectangle {
	return Rectangle{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// WithSize returns a rectangle at the origin with the given size.
func WithSize(s Size) Rectangle {
	return Rectangle{Width: s.Width, Height: s.Height}
}

// Infinite is a rectangle that contains every finite point.
var Infinite = Rectangle{
	X:      -math.MaxFloat32 / 2,
	Y:      -math.MaxFloat32 / 2,
	Width:  math.MaxFloat32,
	Height: math.MaxFloat32,
}

// Position returns the top left corner.
func (r Rectangle) Position() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the extent.
func (r Rectangle) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Max returns the bottom right corner.
func (r Rectangle) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Center returns the midpoint.
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersection returns the overlap of r and o and whether it is non-empty.
func (r Rectangle) Intersection(o Rectangle) (Rectangle, bool) {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rectangle{}, false
	}
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Union returns the smallest rectangle containing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Expand grows the rectangle by d on every side.
func (r Rectangle) Expand(d float32) Rectangle {
	return Rectangle{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Translate moves the rectangle by v.
func (r Rectangle) Translate(v Vector) Rectangle {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Scale multiplies position and size by f.
func (r Rectangle) Scale(f float32) Rectangle {
	return Rectangle{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Snap rounds the rectangle outwards to whole pixels.
// It returns min and max pixel coordinates (max exclusive), saturated to
// a range that fits any image size.
func (r Rectangle) Snap() (x0, y0, x1, y1 int) {
	x0 = snapInt(math.Floor(float64(r.X)))
	y0 = snapInt(math.Floor(float64(r.Y)))
	x1 = snapInt(math.Ceil(float64(r.X) + float64(r.Width)))
	y1 = snapInt(math.Ceil(float64(r.Y) + float64(r.Height)))
	return x0, y0, x1, y1
}

const snapLimit = 1 << 30

func snapInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -snapLimit:
		return -snapLimit
	case v > snapLimit:
		return snapLimit
	}
	return int(v)
}
