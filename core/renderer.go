package core

// Renderer is the drawing capability every backend provides.
//
// Calls record primitives; nothing is rasterized until the owning
// compositor presents or a headless renderer takes a screenshot.
// A Renderer is not safe for concurrent use.
type Renderer interface {
	// StartLayer opens a layer clipped to bounds. Layers nest.
	StartLayer(bounds Rectangle)
	// EndLayer closes the innermost layer.
	EndLayer()

	// StartTransformation pushes a transformation applied to every
	// primitive until the matching EndTransformation.
	StartTransformation(t Transformation)
	EndTransformation()

	// FillQuad draws a rounded rectangle.
	FillQuad(q Quad, bg Background)

	// FillText draws a paragraph at position, clipped to clip.
	FillText(t Text, position Point, color Color, clip Rectangle)
	// MeasureText returns the logical size of a laid out paragraph.
	MeasureText(t Text) Size
	DefaultFont() Font
	DefaultSize() Pixels

	// DrawImage draws img scaled into bounds.
	DrawImage(img Image, bounds Rectangle)
	// MeasureImage returns the pixel dimensions of img.
	MeasureImage(img Image) PhysicalSize

	// Clear discards every recorded primitive.
	Clear()
}

// Headless is implemented by renderers that can render offscreen.
type Headless interface {
	Renderer

	// Screenshot renders the recorded primitives into a new buffer of
	// size pixels, scaled by scaleFactor, over background. The result is
	// tightly packed RGBA8 rows of length size.Width*4.
	Screenshot(size PhysicalSize, scaleFactor float32, background Color) []byte
}
