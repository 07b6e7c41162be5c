package fallback

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
)

// fakeRenderer records the calls it receives.
type fakeRenderer struct {
	name   string
	calls  []string
	closed bool
}

func (f *fakeRenderer) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeRenderer) StartLayer(core.Rectangle)               { f.record("StartLayer") }
func (f *fakeRenderer) EndLayer()                               { f.record("EndLayer") }
func (f *fakeRenderer) StartTransformation(core.Transformation) { f.record("StartTransformation") }
func (f *fakeRenderer) EndTransformation()                      { f.record("EndTransformation") }
func (f *fakeRenderer) FillQuad(core.Quad, core.Background)     { f.record("FillQuad") }
func (f *fakeRenderer) FillText(core.Text, core.Point, core.Color, core.Rectangle) {
	f.record("FillText")
}
func (f *fakeRenderer) DrawImage(core.Image, core.Rectangle) { f.record("DrawImage") }
func (f *fakeRenderer) Clear()                               { f.record("Clear") }

func (f *fakeRenderer) MeasureText(t core.Text) core.Size {
	f.record("MeasureText")
	return core.Size{Width: float32(len(t.Content)), Height: float32(len(f.name))}
}

func (f *fakeRenderer) MeasureImage(core.Image) core.PhysicalSize {
	f.record("MeasureImage")
	return core.PhysicalSize{Width: uint32(len(f.name))}
}

func (f *fakeRenderer) DefaultFont() core.Font {
	f.record("DefaultFont")
	return core.Font{Family: f.name}
}

func (f *fakeRenderer) DefaultSize() core.Pixels {
	f.record("DefaultSize")
	return core.Pixels(len(f.name))
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

// headlessRenderer can take screenshots.
type headlessRenderer struct{ fakeRenderer }

func (h *headlessRenderer) Screenshot(size core.PhysicalSize, _ float32, bg core.Color) []byte {
	h.record("Screenshot")
	out := make([]byte, size.Width*size.Height*4)
	r, g, b, a := bg.RGBA8()
	for i := 0; i < len(out); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = r, g, b, a
	}
	return out
}

type renderers = Renderer[*fakeRenderer, *headlessRenderer]

func drive(r *renderers) {
	r.StartLayer(core.Rectangle{Width: 10, Height: 10})
	r.StartTransformation(core.Translate(1, 2))
	r.FillQuad(core.Quad{}, core.SolidBackground(core.White))
	r.FillText(core.Text{Content: "a"}, core.Point{}, core.Black, core.Infinite)
	r.DrawImage(core.Image{}, core.Rectangle{})
	r.EndTransformation()
	r.EndLayer()
	r.Clear()
}

var driven = []string{
	"StartLayer", "StartTransformation", "FillQuad", "FillText",
	"DrawImage", "EndTransformation", "EndLayer", "Clear",
}

func TestVariantString(t *testing.T) {
	for v, want := range map[Variant]string{Primary: "primary", Secondary: "secondary", 7: "Variant(7)"} {
		if got := v.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", uint8(v), got, want)
		}
	}
}

func TestRendererForwardsToPrimary(t *testing.T) {
	a := &fakeRenderer{name: "gpu"}
	r := NewPrimary[*fakeRenderer, *headlessRenderer](a)

	if r.Variant() != Primary {
		t.Fatalf("Variant = %v", r.Variant())
	}
	if got, ok := r.Primary(); !ok || got != a {
		t.Error("Primary() does not return the held renderer")
	}
	if _, ok := r.Secondary(); ok {
		t.Error("Secondary() reports a renderer")
	}

	drive(r)
	if !slices.Equal(a.calls, driven) {
		t.Errorf("calls = %v, want %v", a.calls, driven)
	}
	checkResults(t, r, a)
}

func TestRendererForwardsToSecondary(t *testing.T) {
	b := &headlessRenderer{fakeRenderer{name: "software"}}
	r := NewSecondary[*fakeRenderer](b)

	if r.Variant() != Secondary {
		t.Fatalf("Variant = %v", r.Variant())
	}
	if _, ok := r.Primary(); ok {
		t.Error("Primary() reports a renderer")
	}
	drive(r)
	if !slices.Equal(b.calls, driven) {
		t.Errorf("calls = %v, want %v", b.calls, driven)
	}
	checkResults(t, r, &b.fakeRenderer)
}

func checkResults(t *testing.T, r *renderers, direct *fakeRenderer) {
	t.Helper()
	text := core.Text{Content: "hello"}
	if got, want := r.MeasureText(text), direct.MeasureText(text); got != want {
		t.Errorf("MeasureText = %+v, want %+v", got, want)
	}
	if got, want := r.MeasureImage(core.Image{}), direct.MeasureImage(core.Image{}); got != want {
		t.Errorf("MeasureImage = %+v, want %+v", got, want)
	}
	if got, want := r.DefaultFont(), direct.DefaultFont(); got != want {
		t.Errorf("DefaultFont = %+v, want %+v", got, want)
	}
	if got, want := r.DefaultSize(), direct.DefaultSize(); got != want {
		t.Errorf("DefaultSize = %v, want %v", got, want)
	}
}

func TestScreenshotOnPrimaryPanics(t *testing.T) {
	r := NewPrimary[*fakeRenderer, *headlessRenderer](&fakeRenderer{})
	defer func() {
		v := recover()
		err, ok := v.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", v)
		}
		var ue *UnsupportedError
		if !errors.As(err, &ue) || ue.Operation != "screenshot" || ue.Variant != Primary {
			t.Errorf("panic = %v", err)
		}
		if !errors.Is(err, ErrUnsupported) {
			t.Error("panic value does not match ErrUnsupported")
		}
	}()
	r.Screenshot(core.PhysicalSize{Width: 1, Height: 1}, 1, core.White)
	t.Fatal("Screenshot on Primary returned")
}

func TestScreenshotOnSecondaryForwards(t *testing.T) {
	b := &headlessRenderer{}
	r := NewSecondary[*fakeRenderer](b)
	size := core.PhysicalSize{Width: 100, Height: 100}

	got := r.Screenshot(size, 1, core.White)
	want := b.Screenshot(size, 1, core.White)
	if len(got) != 100*100*4 {
		t.Fatalf("len = %d", len(got))
	}
	if !slices.Equal(got, want) {
		t.Error("screenshot differs from the backend's")
	}
}

func TestScreenshotFollowsCapability(t *testing.T) {
	size := core.PhysicalSize{Width: 2, Height: 3}
	primary := &headlessRenderer{}
	secondary := &headlessRenderer{}
	tests := []struct {
		name       string
		screenshot func() []byte
		backend    *headlessRenderer
	}{
		{"headless primary", func() []byte {
			return NewPrimary[*headlessRenderer, *fakeRenderer](primary).Screenshot(size, 1, core.Black)
		}, primary},
		{"headless secondary", func() []byte {
			return NewSecondary[*fakeRenderer](secondary).Screenshot(size, 1, core.Black)
		}, secondary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.screenshot(); len(got) != 2*3*4 {
				t.Errorf("len = %d", len(got))
			}
			if !slices.Equal(tt.backend.calls, []string{"Screenshot"}) {
				t.Errorf("calls = %v", tt.backend.calls)
			}
		})
	}
}

func TestRendererClose(t *testing.T) {
	a := &fakeRenderer{}
	if err := NewPrimary[*fakeRenderer, *headlessRenderer](a).Close(); err != nil || !a.closed {
		t.Errorf("Close = %v, closed = %v", err, a.closed)
	}
	b := &headlessRenderer{}
	if err := NewSecondary[*fakeRenderer](b).Close(); err != nil || !b.closed {
		t.Errorf("Close = %v, closed = %v", err, b.closed)
	}
}

func TestInvalidVariantPanics(t *testing.T) {
	r := &renderers{variant: 9}
	defer func() {
		if recover() == nil {
			t.Error("no panic for invalid variant")
		}
	}()
	r.Clear()
}

// fakeSurface is a backend surface.
type fakeSurface struct {
	width, height uint32
}

// fakeCompositor is a backend compositor producing R renderers.
type fakeCompositor[R core.Renderer] struct {
	name       string
	newR       func() R
	presentErr error
	presented  int
	closed     bool
}

func (c *fakeCompositor[R]) CreateRenderer() R { return c.newR() }

func (c *fakeCompositor[R]) CreateSurface(w graphics.Window, width, height uint32) (*fakeSurface, error) {
	if w == nil {
		return nil, graphics.ErrIncompatibleWindow
	}
	return &fakeSurface{width, height}, nil
}

func (c *fakeCompositor[R]) ConfigureSurface(s *fakeSurface, width, height uint32) {
	s.width, s.height = width, height
}

func (c *fakeCompositor[R]) FetchInformation() graphics.Information {
	return graphics.Information{Backend: c.name}
}

func (c *fakeCompositor[R]) Present(R, *fakeSurface, graphics.Viewport, core.Color) error {
	c.presented++
	return c.presentErr
}

func (c *fakeCompositor[R]) Screenshot(_ R, vp graphics.Viewport, _ core.Color) []byte {
	return make([]byte, vp.PhysicalSize().Area()*4)
}

func (c *fakeCompositor[R]) Close() error {
	c.closed = true
	return nil
}

type compositors = Compositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface]

var _ graphics.Compositor[*renderers, *Surface[*fakeSurface, *fakeSurface]] = (*compositors)(nil)

func newFakes() (*fakeCompositor[*fakeRenderer], *fakeCompositor[*headlessRenderer]) {
	a := &fakeCompositor[*fakeRenderer]{name: "gpu", newR: func() *fakeRenderer { return &fakeRenderer{name: "gpu"} }}
	b := &fakeCompositor[*headlessRenderer]{name: "software", newR: func() *headlessRenderer {
		return &headlessRenderer{fakeRenderer{name: "software"}}
	}}
	return a, b
}

func TestCompositorForwards(t *testing.T) {
	a, b := newFakes()
	window := gpucontext.NullWindowProvider{W: 4, H: 4}
	vp := graphics.ViewportOf(window)

	for _, c := range []*compositors{
		NewPrimaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](a),
		NewSecondaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](b),
	} {
		r := c.CreateRenderer()
		if r.Variant() != c.Variant() {
			t.Errorf("%v compositor created a %v renderer", c.Variant(), r.Variant())
		}
		s, err := c.CreateSurface(window, 4, 4)
		if err != nil {
			t.Fatal(err)
		}
		if s.Variant() != c.Variant() {
			t.Errorf("%v compositor created a %v surface", c.Variant(), s.Variant())
		}
		c.ConfigureSurface(s, 8, 2)
		if err := c.Present(r, s, vp, core.Black); err != nil {
			t.Errorf("Present = %v", err)
		}
		if got := len(c.Screenshot(r, vp, core.Black)); got != 64 {
			t.Errorf("Screenshot len = %d", got)
		}
		if _, err := c.CreateSurface(nil, 1, 1); !errors.Is(err, graphics.ErrIncompatibleWindow) {
			t.Errorf("CreateSurface(nil) = %v", err)
		}
	}

	if a.presented != 1 || b.presented != 1 {
		t.Errorf("presented = %d, %d", a.presented, b.presented)
	}
	p := NewPrimaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](a)
	if p.FetchInformation().Backend != "gpu" {
		t.Errorf("information = %+v", p.FetchInformation())
	}
	if got, ok := p.Primary(); !ok || got != graphics.Compositor[*fakeRenderer, *fakeSurface](a) {
		t.Error("Primary() does not return the held compositor")
	}
	if err := p.Close(); err != nil || !a.closed {
		t.Errorf("Close = %v, closed = %v", err, a.closed)
	}
}

func TestCompositorSurfaceConfigured(t *testing.T) {
	_, b := newFakes()
	c := NewSecondaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](b)
	s, _ := c.CreateSurface(gpucontext.NullWindowProvider{}, 1, 1)
	c.ConfigureSurface(s, 3, 5)
	inner, ok := s.Secondary()
	if !ok || inner.width != 3 || inner.height != 5 {
		t.Errorf("surface = %+v, %v", inner, ok)
	}
}

func TestCompositorErrorsPassThrough(t *testing.T) {
	a, _ := newFakes()
	a.presentErr = graphics.ErrSurfaceLost
	c := NewPrimaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](a)
	s, _ := c.CreateSurface(gpucontext.NullWindowProvider{}, 1, 1)
	err := c.Present(c.CreateRenderer(), s, graphics.NewViewport(core.PhysicalSize{Width: 1, Height: 1}, 1), core.Black)
	if err != graphics.ErrSurfaceLost {
		t.Errorf("Present = %v, want the backend error unchanged", err)
	}
}

func TestCompositorMismatchPanics(t *testing.T) {
	a, b := newFakes()
	primary := NewPrimaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](a)
	secondary := NewSecondaryCompositor[*fakeRenderer, *fakeSurface, *headlessRenderer, *fakeSurface](b)
	foreign := secondary.CreateRenderer()
	s, _ := primary.CreateSurface(gpucontext.NullWindowProvider{}, 1, 1)

	defer func() {
		err, _ := recover().(error)
		var me *MismatchError
		if !errors.As(err, &me) || me.Want != Primary || me.Got != Secondary {
			t.Errorf("panic = %v", err)
		}
		if !errors.Is(err, ErrMismatch) {
			t.Error("panic value does not match ErrMismatch")
		}
	}()
	_ = primary.Present(foreign, s, graphics.NewViewport(core.PhysicalSize{Width: 1, Height: 1}, 1), core.Black)
	t.Fatal("Present with a foreign renderer returned")
}

func fakeFactories(primaryOK, secondaryOK func(string) bool) (Factory[*fakeRenderer, *fakeSurface], Factory[*headlessRenderer, *fakeSurface]) {
	a, b := newFakes()
	primary := Adapt[*fakeCompositor[*fakeRenderer], *fakeRenderer, *fakeSurface](
		func(_ graphics.Settings, _ graphics.Window, name string) (*fakeCompositor[*fakeRenderer], error) {
			if name != "" && name != "gpu" {
				return nil, graphics.NotMatched("gpu", name)
			}
			if !primaryOK(name) {
				return nil, graphics.RequestFailedError("gpu", name, errors.New("no device"))
			}
			return a, nil
		})
	secondary := Adapt[*fakeCompositor[*headlessRenderer], *headlessRenderer, *fakeSurface](
		func(_ graphics.Settings, _ graphics.Window, name string) (*fakeCompositor[*headlessRenderer], error) {
			if name != "" && name != "software" {
				return nil, graphics.NotMatched("software", name)
			}
			if !secondaryOK(name) {
				return nil, graphics.RequestFailedError("software", name, errors.New("no memory"))
			}
			return b, nil
		})
	return primary, secondary
}

func always(string) bool { return true }
func never(string) bool  { return false }

func TestNewPrefersPrimary(t *testing.T) {
	t.Setenv(graphics.BackendEnv, "")
	primary, secondary := fakeFactories(always, always)
	c, err := New(graphics.DefaultSettings(), gpucontext.NullWindowProvider{}, primary, secondary)
	if err != nil {
		t.Fatal(err)
	}
	if c.Variant() != Primary {
		t.Errorf("Variant = %v, want primary", c.Variant())
	}
}

func TestNewFallsBackWhenPrimaryFails(t *testing.T) {
	t.Setenv(graphics.BackendEnv, "")
	primary, secondary := fakeFactories(never, always)
	c, err := New(graphics.DefaultSettings(), gpucontext.NullWindowProvider{}, primary, secondary)
	if err != nil {
		t.Fatal(err)
	}
	if c.Variant() != Secondary {
		t.Errorf("Variant = %v, want secondary", c.Variant())
	}
}

func TestNewHonorsBackendNames(t *testing.T) {
	primary, secondary := fakeFactories(always, always)

	c, err := New(graphics.NewSettings(graphics.WithBackend("software")), gpucontext.NullWindowProvider{}, primary, secondary)
	if err != nil || c.Variant() != Secondary {
		t.Errorf("software: %v, %v", c, err)
	}

	t.Setenv(graphics.BackendEnv, "bogus, software")
	c, err = New(graphics.DefaultSettings(), gpucontext.NullWindowProvider{}, primary, secondary)
	if err != nil || c.Variant() != Secondary {
		t.Errorf("env bogus,software: %v, %v", c, err)
	}

	c, err = New(graphics.NewSettings(graphics.WithBackend("gpu")), gpucontext.NullWindowProvider{}, primary, secondary)
	if err != nil || c.Variant() != Primary {
		t.Errorf("settings override env: %v, %v", c, err)
	}
}

func TestNewJoinsErrors(t *testing.T) {
	t.Setenv(graphics.BackendEnv, "")
	primary, secondary := fakeFactories(never, never)
	c, err := New(graphics.DefaultSettings(), gpucontext.NullWindowProvider{}, primary, secondary)
	if c != nil || err == nil {
		t.Fatalf("New = %v, %v", c, err)
	}
	if !errors.Is(err, graphics.ErrAdapterNotFound) {
		t.Errorf("err = %v, want ErrAdapterNotFound", err)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Errorf("err = %v, want one error per attempt", err)
	}
}

func TestAdaptKeepsNilInterface(t *testing.T) {
	f := Adapt[*fakeCompositor[*fakeRenderer], *fakeRenderer, *fakeSurface](
		func(graphics.Settings, graphics.Window, string) (*fakeCompositor[*fakeRenderer], error) {
			return nil, errors.New("boom")
		})
	c, err := f(graphics.DefaultSettings(), nil, "")
	if err == nil || c != nil {
		t.Errorf("Adapt = %v, %v; want a nil compositor", c, err)
	}
}
