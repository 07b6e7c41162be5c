package layer

import (
	"testing"

	"github.com/gogpu/renderer/core"
)

func rect(x, y, w, h float32) core.Rectangle {
	return core.Rectangle{X: x, Y: y, Width: w, Height: h}
}

func TestStackRootLayer(t *testing.T) {
	s := NewStack()
	if got := s.Layers(); len(got) != 0 {
		t.Fatalf("empty stack has %d layers", len(got))
	}

	s.DrawQuad(core.Quad{Bounds: rect(0, 0, 10, 10)}, core.SolidBackground(core.White))
	s.DrawImage(core.Image{}, rect(1, 1, 2, 2))
	s.DrawText(core.Text{Content: "hi", Size: 12}, core.Point{X: 3, Y: 4}, core.Black, core.Infinite)

	layers := s.Layers()
	if len(layers) != 1 {
		t.Fatalf("Layers() = %d, want 1", len(layers))
	}
	q, i, tx := s.Count()
	if q != 1 || i != 1 || tx != 1 {
		t.Errorf("Count() = %d,%d,%d; want 1,1,1", q, i, tx)
	}
}

func TestStackClipNesting(t *testing.T) {
	s := NewStack()
	s.PushClip(rect(0, 0, 100, 100))
	s.PushClip(rect(50, 50, 100, 100))
	s.DrawQuad(core.Quad{Bounds: rect(60, 60, 10, 10)}, core.Background{})
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
	s.PopClip()
	s.DrawQuad(core.Quad{Bounds: rect(0, 0, 10, 10)}, core.Background{})
	s.PopClip()
	s.PopClip() // extra pop is ignored

	layers := s.Layers()
	if len(layers) != 2 {
		t.Fatalf("Layers() = %d, want 2", len(layers))
	}
	if want := rect(50, 50, 50, 50); layers[0].Bounds != want {
		t.Errorf("inner bounds = %+v, want %+v", layers[0].Bounds, want)
	}
	if want := rect(0, 0, 100, 100); layers[1].Bounds != want {
		t.Errorf("reopened parent bounds = %+v, want %+v", layers[1].Bounds, want)
	}
}

func TestStackCulling(t *testing.T) {
	s := NewStack()
	s.PushClip(rect(0, 0, 10, 10))
	s.DrawQuad(core.Quad{Bounds: rect(20, 20, 5, 5)}, core.Background{})
	s.DrawImage(core.Image{}, rect(-10, -10, 5, 5))
	s.DrawText(core.Text{}, core.Point{}, core.Black, rect(11, 0, 5, 5))

	// a shadow reaching into the clip keeps the quad
	s.DrawQuad(core.Quad{
		Bounds: rect(12, 0, 5, 5),
		Shadow: core.Shadow{Color: core.Black, Offset: core.Vector{X: -4}},
	}, core.Background{})

	q, i, tx := s.Count()
	if q != 1 || i != 0 || tx != 0 {
		t.Errorf("Count() = %d,%d,%d; want 1,0,0", q, i, tx)
	}
}

func TestStackTransformation(t *testing.T) {
	s := NewStack()
	s.PushTransformation(core.Translate(10, 0))
	s.PushTransformation(core.Scale(2))
	s.DrawQuad(core.Quad{
		Bounds: rect(1, 1, 4, 4),
		Border: core.Border{Width: 1, Radius: core.UniformRadius(2)},
	}, core.Background{})
	s.DrawText(core.Text{Size: 10}, core.Point{X: 1, Y: 1}, core.Black, core.Infinite)
	s.PopTransformation()
	s.PopTransformation()
	s.PopTransformation() // identity stays

	if !s.Transformation().IsIdentity() {
		t.Errorf("Transformation() = %+v, want identity", s.Transformation())
	}

	l := s.Layers()[0]
	quad := l.Quads[0]
	if want := rect(12, 2, 8, 8); quad.Bounds != want {
		t.Errorf("quad bounds = %+v, want %+v", quad.Bounds, want)
	}
	if quad.Border.Width != 2 || quad.Border.Radius != core.UniformRadius(4) {
		t.Errorf("border = %+v", quad.Border)
	}
	text := l.Texts[0]
	if text.Position != (core.Point{X: 12, Y: 2}) || text.Scale != 2 {
		t.Errorf("text = %+v", text)
	}
}

func TestStackClearReusesLayers(t *testing.T) {
	s := NewStack()
	s.PushClip(rect(0, 0, 5, 5))
	s.DrawQuad(core.Quad{Bounds: rect(0, 0, 1, 1)}, core.Background{})
	s.Clear()

	if s.Depth() != 0 {
		t.Errorf("Depth() after Clear = %d", s.Depth())
	}
	if len(s.Layers()) != 0 {
		t.Errorf("Layers() after Clear = %d", len(s.Layers()))
	}
	s.DrawQuad(core.Quad{Bounds: rect(0, 0, 1, 1)}, core.Background{})
	if got := s.Layers()[0].Bounds; got != core.Infinite {
		t.Errorf("root bounds after Clear = %+v", got)
	}
}
