//go:build !nosoftware

package software

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
)

type presenterWindow struct {
	gpucontext.NullWindowProvider
	frames int
	last   *image.RGBA
	err    error
}

func (w *presenterWindow) PresentPixels(frame *image.RGBA) error {
	if w.err != nil {
		return w.err
	}
	w.frames++
	w.last = frame
	return nil
}

func TestScreenshotSolidQuad(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 100, Height: 100}}, core.SolidBackground(core.White))

	pix := r.Screenshot(core.PhysicalSize{Width: 100, Height: 100}, 1, core.Black)
	if len(pix) != 40000 {
		t.Fatalf("len = %d, want 40000", len(pix))
	}
	for i, b := range pix {
		if b != 255 {
			t.Fatalf("byte %d = %d, want 255", i, b)
		}
	}
}

func TestScreenshotBackground(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	pix := r.Screenshot(core.PhysicalSize{Width: 2, Height: 3}, 1, core.FromRGB(0, 0, 1))
	if len(pix) != 2*3*4 {
		t.Fatalf("len = %d", len(pix))
	}
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 255 || pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v", i/4, pix[i:i+4])
		}
	}
}

func TestScreenshotZeroSize(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 10, Height: 10}}, core.SolidBackground(core.White))
	for _, size := range []core.PhysicalSize{{}, {Width: 10}, {Height: 10}} {
		if pix := r.Screenshot(size, 1, core.Black); len(pix) != 0 {
			t.Errorf("Screenshot(%+v) returned %d bytes", size, len(pix))
		}
	}
}

func TestScreenshotScaleFactor(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 5, Height: 5}}, core.SolidBackground(core.White))
	pix := r.Screenshot(core.PhysicalSize{Width: 20, Height: 20}, 2, core.Black)

	at := func(x, y int) byte { return pix[(y*20+x)*4] }
	if at(9, 9) != 255 {
		t.Errorf("(9,9) = %d, want white at scale 2", at(9, 9))
	}
	if at(12, 12) != 0 {
		t.Errorf("(12,12) = %d, want black", at(12, 12))
	}
}

func TestRendererClear(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 10, Height: 10}}, core.SolidBackground(core.White))
	if len(r.Layers()) == 0 {
		t.Fatal("no layers recorded")
	}
	r.Clear()
	if n := len(r.Layers()); n != 0 {
		t.Errorf("layers after Clear = %d", n)
	}
}

func TestRendererLayersAndTransformations(t *testing.T) {
	r := NewRenderer(core.DefaultFont, 16)
	r.StartLayer(core.Rectangle{Width: 10, Height: 10})
	r.StartTransformation(core.Translate(5, 5))
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 10, Height: 10}}, core.SolidBackground(core.White))
	r.EndTransformation()
	r.EndLayer()

	pix := r.Screenshot(core.PhysicalSize{Width: 20, Height: 20}, 1, core.Black)
	at := func(x, y int) byte { return pix[(y*20+x)*4] }
	if at(7, 7) != 255 {
		t.Errorf("(7,7) = %d, want white", at(7, 7))
	}
	if at(3, 3) != 0 {
		t.Errorf("(3,3) = %d, translated quad drawn at origin", at(3, 3))
	}
	if at(12, 12) != 0 {
		t.Errorf("(12,12) = %d, layer clip ignored", at(12, 12))
	}
}

func TestRendererDefaults(t *testing.T) {
	r := NewRenderer(core.MonospaceFont, 20)
	if r.DefaultFont() != core.MonospaceFont {
		t.Errorf("DefaultFont = %+v", r.DefaultFont())
	}
	if r.DefaultSize() != 20 {
		t.Errorf("DefaultSize = %v", r.DefaultSize())
	}
	size := r.MeasureText(core.Text{Content: "Hello"})
	if size.Width <= 0 || size.Height <= 0 {
		t.Errorf("MeasureText = %+v", size)
	}
	img := core.Image{Handle: image.NewRGBA(image.Rect(0, 0, 3, 7))}
	if got := r.MeasureImage(img); got != (core.PhysicalSize{Width: 3, Height: 7}) {
		t.Errorf("MeasureImage = %+v", got)
	}
}

func TestWithBackend(t *testing.T) {
	w := &presenterWindow{}
	for _, name := range []string{"", "software", "cpu"} {
		if _, err := WithBackend(graphics.DefaultSettings(), w, name); err != nil {
			t.Errorf("WithBackend(%q) = %v", name, err)
		}
	}

	_, err := WithBackend(graphics.DefaultSettings(), w, "gpu")
	var anf *graphics.AdapterNotFoundError
	if !errors.As(err, &anf) {
		t.Fatalf("WithBackend(gpu) = %v, want AdapterNotFoundError", err)
	}
	if anf.Reason != graphics.DidNotMatch || anf.Backend != graphics.BackendSoftware {
		t.Errorf("error = %+v", anf)
	}
}

func TestNewHonorsCandidates(t *testing.T) {
	w := &presenterWindow{}
	if _, err := New(graphics.NewSettings(graphics.WithBackend("gpu,software")), w); err != nil {
		t.Errorf("New(gpu,software) = %v", err)
	}
	if _, err := New(graphics.NewSettings(graphics.WithBackend("gpu")), w); !errors.Is(err, graphics.ErrAdapterNotFound) {
		t.Errorf("New(gpu) = %v, want ErrAdapterNotFound", err)
	}
}

func TestCreateSurfaceRequiresPresenter(t *testing.T) {
	c, err := WithBackend(graphics.DefaultSettings(), gpucontext.NullWindowProvider{}, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.CreateSurface(gpucontext.NullWindowProvider{W: 10, H: 10}, 10, 10)
	if !errors.Is(err, graphics.ErrIncompatibleWindow) {
		t.Errorf("CreateSurface = %v, want ErrIncompatibleWindow", err)
	}
}

func TestPresent(t *testing.T) {
	w := &presenterWindow{NullWindowProvider: gpucontext.NullWindowProvider{W: 8, H: 8}}
	c, err := New(graphics.DefaultSettings(), w)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	s, err := c.CreateSurface(w, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	r := c.CreateRenderer()
	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 8, Height: 8}}, core.SolidBackground(core.White))

	if err := c.Present(r, s, graphics.ViewportOf(w), core.Black); err != nil {
		t.Fatalf("Present = %v", err)
	}
	if w.frames != 1 {
		t.Fatalf("frames = %d", w.frames)
	}
	if got := w.last.RGBAAt(4, 4); got.R != 255 || got.A != 255 {
		t.Errorf("presented pixel = %v", got)
	}
	if s.Frame() != w.last {
		t.Error("surface frame differs from presented frame")
	}

	w.err = errors.New("window closed")
	if err := c.Present(r, s, graphics.ViewportOf(w), core.Black); !errors.Is(err, w.err) {
		t.Errorf("Present = %v, want wrapped window error", err)
	}
}

func TestPresentOutdated(t *testing.T) {
	w := &presenterWindow{NullWindowProvider: gpucontext.NullWindowProvider{W: 8, H: 8}}
	c, _ := New(graphics.DefaultSettings(), w)
	r := c.CreateRenderer()

	s, err := c.CreateSurface(w, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	vp := graphics.NewViewport(core.PhysicalSize{}, 1)
	if err := c.Present(r, s, vp, core.Black); !errors.Is(err, graphics.ErrSurfaceOutdated) {
		t.Errorf("zero size Present = %v", err)
	}

	c.ConfigureSurface(s, 8, 8)
	vp = graphics.NewViewport(core.PhysicalSize{Width: 16, Height: 16}, 2)
	if err := c.Present(r, s, vp, core.Black); !errors.Is(err, graphics.ErrSurfaceOutdated) {
		t.Errorf("mismatched Present = %v", err)
	}
	c.ConfigureSurface(s, 16, 16)
	if err := c.Present(r, s, vp, core.Black); err != nil {
		t.Errorf("reconfigured Present = %v", err)
	}
}

func TestCompositorScreenshotAndInformation(t *testing.T) {
	c, _ := New(graphics.DefaultSettings(), &presenterWindow{})
	r := c.CreateRenderer()
	pix := c.Screenshot(r, graphics.NewViewport(core.PhysicalSize{Width: 4, Height: 4}, 1), core.White)
	if len(pix) != 64 {
		t.Errorf("len = %d", len(pix))
	}

	info := c.FetchInformation()
	if info.Backend != graphics.BackendSoftware || info.Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("information = %+v", info)
	}
}

func TestRegistered(t *testing.T) {
	info, ok := graphics.LookupBackend(graphics.BackendSoftware)
	if !ok || !info.Headless || info.Accelerated {
		t.Errorf("LookupBackend = %+v, %v", info, ok)
	}
}
