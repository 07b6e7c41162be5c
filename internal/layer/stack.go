package layer

import "github.com/gogpu/renderer/core"

// Stack records primitives into a flat list of layers.
//
// Pushing a layer appends a new one clipped to the intersection of the
// requested bounds and the enclosing layer; popping returns to the
// enclosing layer. Layers are drawn in creation order, so nested content
// covers its parent.
type Stack struct {
	layers []Layer
	used   int

	current int
	opened  []int

	transforms []core.Transformation
}

// NewStack returns a stack with a single unbounded root layer.
func NewStack() *Stack {
	s := &Stack{}
	s.Clear()
	return s
}

// Clear discards every recorded primitive and resets the stack.
func (s *Stack) Clear() {
	s.used = 0
	s.opened = s.opened[:0]
	s.transforms = append(s.transforms[:0], core.Identity())
	s.current = s.newLayer(core.Infinite)
}

func (s *Stack) newLayer(bounds core.Rectangle) int {
	if s.used < len(s.layers) {
		s.layers[s.used].reset(bounds)
	} else {
		s.layers = append(s.layers, Layer{Bounds: bounds})
	}
	s.used++
	return s.used - 1
}

// Transformation returns the active transformation.
func (s *Stack) Transformation() core.Transformation {
	return s.transforms[len(s.transforms)-1]
}

// PushClip opens a layer clipped to bounds in the current coordinates.
func (s *Stack) PushClip(bounds core.Rectangle) {
	clip := s.Transformation().TransformRectangle(bounds)
	parent := s.layers[s.current].Bounds
	clip, ok := parent.Intersection(clip)
	if !ok {
		clip = core.Rectangle{X: clip.X, Y: clip.Y}
	}
	s.opened = append(s.opened, s.current)
	s.current = s.newLayer(clip)
}

// PopClip returns to the enclosing layer. Popping the root is a no-op.
func (s *Stack) PopClip() {
	n := len(s.opened)
	if n == 0 {
		return
	}
	s.current = s.opened[n-1]
	s.opened = s.opened[:n-1]

	// Content recorded after a nested layer closes must cover it, so it
	// goes into a fresh layer with the parent's bounds.
	s.current = s.newLayer(s.layers[s.current].Bounds)
}

// PushTransformation composes t with the active transformation.
func (s *Stack) PushTransformation(t core.Transformation) {
	s.transforms = append(s.transforms, s.Transformation().Multiply(t))
}

// PopTransformation restores the previous transformation.
// The identity at the bottom is never popped.
func (s *Stack) PopTransformation() {
	if len(s.transforms) > 1 {
		s.transforms = s.transforms[:len(s.transforms)-1]
	}
}

// Depth returns the number of open layers above the root.
func (s *Stack) Depth() int {
	return len(s.opened)
}

func (s *Stack) layer() *Layer {
	return &s.layers[s.current]
}

// DrawQuad records a quad.
func (s *Stack) DrawQuad(q core.Quad, bg core.Background) {
	t := s.Transformation()
	if !t.IsIdentity() {
		f := t.ScaleFactor()
		q.Bounds = t.TransformRectangle(q.Bounds)
		q.Border.Width *= f
		for i := range q.Border.Radius {
			q.Border.Radius[i] *= f
		}
		q.Shadow.Offset.X *= f
		q.Shadow.Offset.Y *= f
		q.Shadow.BlurRadius *= f
	}
	l := s.layer()
	if _, ok := l.Bounds.Intersection(q.Bounds.Expand(shadowExtent(q.Shadow))); !ok {
		return
	}
	l.Quads = append(l.Quads, Quad{Quad: q, Background: bg})
}

func shadowExtent(sh core.Shadow) float32 {
	if sh.Color.IsTransparent() {
		return 0
	}
	return sh.BlurRadius*3 + max(abs(sh.Offset.X), abs(sh.Offset.Y))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// DrawText records a paragraph.
func (s *Stack) DrawText(t core.Text, pos core.Point, c core.Color, clip core.Rectangle) {
	tr := s.Transformation()
	l := s.layer()
	clip, ok := l.Bounds.Intersection(tr.TransformRectangle(clip))
	if !ok {
		return
	}
	l.Texts = append(l.Texts, Text{
		Text:     t,
		Position: tr.TransformPoint(pos),
		Color:    c,
		Clip:     clip,
		Scale:    tr.ScaleFactor(),
	})
}

// DrawImage records an image drawn into bounds.
func (s *Stack) DrawImage(img core.Image, bounds core.Rectangle) {
	bounds = s.Transformation().TransformRectangle(bounds)
	l := s.layer()
	if _, ok := l.Bounds.Intersection(bounds); !ok {
		return
	}
	l.Images = append(l.Images, Image{Image: img, Bounds: bounds})
}

// Layers returns the non-empty layers in draw order. The slice is valid
// until the next call that records or clears.
func (s *Stack) Layers() []Layer {
	out := make([]Layer, 0, s.used)
	for i := 0; i < s.used; i++ {
		if !s.layers[i].IsEmpty() {
			out = append(out, s.layers[i])
		}
	}
	return out
}

// Count returns the number of recorded primitives.
func (s *Stack) Count() (quads, images, texts int) {
	for i := 0; i < s.used; i++ {
		l := &s.layers[i]
		quads += len(l.Quads)
		images += len(l.Images)
		texts += len(l.Texts)
	}
	return quads, images, texts
}
