package core

import "image"

// Pixels is a length in logical pixels.
type Pixels float32

// Font family names understood by the bundled font set.
const (
	FamilySans = "Go"
	FamilyMono = "Go Mono"
)

// Weight of a font face.
type Weight uint8

// Font weights.
const (
	WeightNormal Weight = iota
	WeightBold
)

// Style of a font face.
type Style uint8

// Font styles.
const (
	StyleNormal Style = iota
	StyleItalic
)

// Font identifies a font face by family, weight and style.
type Font struct {
	Family string
	Weight Weight
	Style  Style
}

// DefaultFont is the proportional regular face.
var DefaultFont = Font{Family: FamilySans}

// MonospaceFont is the monospaced regular face.
var MonospaceFont = Font{Family: FamilyMono}

// Radius holds the corner radii of a quad: top left, top right,
// bottom right, bottom left.
type Radius [4]float32

// UniformRadius returns the same radius for every corner.
func UniformRadius(r float32) Radius {
	return Radius{r, r, r, r}
}

// Border describes the stroke drawn inside the bounds of a quad.
type Border struct {
	Color  Color
	Width  float32
	Radius Radius
}

// Shadow is a blurred, offset copy of a quad drawn beneath it.
type Shadow struct {
	Color      Color
	Offset     Vector
	BlurRadius float32
}

// Quad is a rounded rectangle with an optional border and shadow.
type Quad struct {
	Bounds Rectangle
	Border Border
	Shadow Shadow
}

// Background is the fill of a quad. Only solid colors are supported.
type Background struct {
	Color Color
}

// SolidBackground returns a solid fill.
func SolidBackground(c Color) Background {
	return Background{Color: c}
}

// Alignment positions content along one axis.
type Alignment uint8

// Alignments.
const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// Text is a paragraph to be laid out inside Bounds.
type Text struct {
	Content string
	// Bounds limits the layout box; a zero dimension means unbounded.
	Bounds     Size
	Size       Pixels
	LineHeight float32 // relative to Size; zero means 1.3
	Font       Font
	Horizontal Alignment
	Vertical   Alignment
}

// EffectiveLineHeight returns the line advance in logical pixels.
func (t Text) EffectiveLineHeight() float32 {
	lh := t.LineHeight
	if lh <= 0 {
		lh = 1.3
	}
	return lh * float32(t.Size)
}

// FilterMethod selects how images are sampled when scaled.
type FilterMethod uint8

// Filter methods.
const (
	FilterLinear FilterMethod = iota
	FilterNearest
)

// Image is a raster image handle.
type Image struct {
	Handle  image.Image
	Filter  FilterMethod
	Opacity float32 // zero means fully opaque
}

// EffectiveOpacity returns the opacity in [0, 1].
func (i Image) EffectiveOpacity() float32 {
	if i.Opacity <= 0 || i.Opacity > 1 {
		return 1
	}
	return i.Opacity
}
