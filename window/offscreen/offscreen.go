// Package offscreen provides an in-memory window for headless presentation
// and tests.
package offscreen

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/renderer/graphics"
)

var errDataSize = errors.New("offscreen: texture data size mismatch")

// Window is a fixed-size window that keeps the last presented frame.
// It accepts frames both as pixels and as textures.
type Window struct {
	mu       sync.Mutex
	width    int
	height   int
	scale    float64
	last     *image.RGBA
	frames   int
	redraws  int
	textures int
}

// New creates a window of width x height logical points.
// A non-positive scale is treated as 1.
func New(width, height int, scale float64) *Window {
	if scale <= 0 {
		scale = 1
	}
	return &Window{width: width, height: height, scale: scale}
}

// Size returns the window size in logical points.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// ScaleFactor returns the window scale factor.
func (w *Window) ScaleFactor() float64 { return w.scale }

// RequestRedraw counts redraw requests.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

// Resize changes the logical size of the window.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
}

// PresentPixels stores a copy of frame.
func (w *Window) PresentPixels(frame *image.RGBA) error {
	cp := image.NewRGBA(frame.Rect)
	copy(cp.Pix, frame.Pix)
	w.store(cp)
	return nil
}

// NewTextureFromRGBA creates an in-memory texture.
func (w *Window) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	t := &Texture{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	if err := t.UpdateData(data); err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.textures++
	w.mu.Unlock()
	return t, nil
}

// TextureCreator returns the window itself.
func (w *Window) TextureCreator() gpucontext.TextureCreator { return w }

// DrawTexture stores a copy of tex as the last frame. Only textures created
// by this window are accepted, and the position is ignored.
func (w *Window) DrawTexture(tex gpucontext.Texture, _, _ float32) error {
	t, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("offscreen: foreign texture %T", tex)
	}
	cp := image.NewRGBA(t.img.Rect)
	copy(cp.Pix, t.img.Pix)
	w.store(cp)
	return nil
}

func (w *Window) store(frame *image.RGBA) {
	w.mu.Lock()
	w.last = frame
	w.frames++
	w.mu.Unlock()
}

// Frame returns the last presented frame, or nil.
func (w *Window) Frame() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Frames returns the number of presented frames.
func (w *Window) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Textures returns the number of textures created.
func (w *Window) Textures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.textures
}

// Redraws returns the number of redraw requests.
func (w *Window) Redraws() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redraws
}

// Texture is an RGBA texture held in memory.
type Texture struct {
	img *image.RGBA
}

func (t *Texture) Width() int  { return t.img.Rect.Dx() }
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// UpdateData replaces the texture pixels.
func (t *Texture) UpdateData(data []byte) error {
	if len(data) != len(t.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", errDataSize, len(data), len(t.img.Pix))
	}
	copy(t.img.Pix, data)
	return nil
}

var (
	_ graphics.Window           = (*Window)(nil)
	_ graphics.PixelPresenter   = (*Window)(nil)
	_ gpucontext.TextureDrawer  = (*Window)(nil)
	_ gpucontext.TextureUpdater = (*Texture)(nil)
)
