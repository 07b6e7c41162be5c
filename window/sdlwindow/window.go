//go:build sdl

package sdlwindow

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/renderer/graphics"
)

// Window is an SDL2 window presenting RGBA frames through a streaming
// texture.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	width    int
	height   int
	quit     bool
	redraw   bool
}

// New opens a window of width x height logical points.
func New(title string, width, height int) (*Window, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdlwindow: init: %w", err)
	}
	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		return nil, fmt.Errorf("sdlwindow: create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = window.Destroy()
		return nil, fmt.Errorf("sdlwindow: create renderer: %w", err)
	}
	return &Window{window: window, renderer: renderer}, nil
}

// Size returns the window size in logical points.
func (w *Window) Size() (int, int) {
	width, height := w.window.GetSize()
	return int(width), int(height)
}

// ScaleFactor returns the ratio of drawable pixels to logical points.
func (w *Window) ScaleFactor() float64 {
	width, _ := w.window.GetSize()
	out, _, err := w.renderer.GetOutputSize()
	if err != nil || width == 0 || out == 0 {
		return 1
	}
	return float64(out) / float64(width)
}

// RequestRedraw marks the window for redraw. Poll reports it.
func (w *Window) RequestRedraw() { w.redraw = true }

// PresentPixels uploads frame and shows it stretched over the window.
func (w *Window) PresentPixels(frame *image.RGBA) error {
	width, height := frame.Rect.Dx(), frame.Rect.Dy()
	if err := w.ensureTexture(width, height); err != nil {
		return err
	}
	if err := w.texture.Update(nil, frame.Pix, frame.Stride); err != nil {
		return fmt.Errorf("sdlwindow: update texture: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("sdlwindow: clear: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("sdlwindow: copy: %w", err)
	}
	w.renderer.Present()
	return nil
}

func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.width == width && w.height == height {
		return nil
	}
	if w.texture != nil {
		_ = w.texture.Destroy()
		w.texture = nil
	}
	// ABGR8888 is R, G, B, A in memory order on little endian hosts.
	tex, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("sdlwindow: create texture: %w", err)
	}
	w.texture, w.width, w.height = tex, width, height
	return nil
}

// Poll drains pending SDL events. It reports whether the window should
// close and whether it needs to be redrawn.
func (w *Window) Poll() (quit, redraw bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				w.quit = true
			}
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_EXPOSED {
				w.redraw = true
			}
		}
	}
	redraw, w.redraw = w.redraw, false
	return w.quit, redraw
}

// Close destroys the window and its resources.
func (w *Window) Close() error {
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	_ = w.renderer.Destroy()
	err := w.window.Destroy()
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return err
}

var (
	_ graphics.Window         = (*Window)(nil)
	_ graphics.PixelPresenter = (*Window)(nil)
)
