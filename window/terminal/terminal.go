// Package terminal presents frames in a terminal using tcell.
//
// Every character cell shows two vertically stacked pixels with the
// upper half block rune: the foreground is the top pixel and the
// background the bottom one. A terminal of C columns and R rows is
// therefore a window of C x 2R pixels.
package terminal

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/renderer/graphics"
)

const halfBlock = '▀'

// Window is a terminal backed window.
type Window struct {
	mu     sync.Mutex
	screen tcell.Screen
	owned  bool
}

// New initializes the controlling terminal.
// Close restores it.
func New() (*Window, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init: %w", err)
	}
	s.HideCursor()
	w := NewWithScreen(s)
	w.owned = true
	return w, nil
}

// NewWithScreen wraps an initialized screen. Close leaves it running.
func NewWithScreen(s tcell.Screen) *Window {
	return &Window{screen: s}
}

// Screen returns the underlying screen.
func (w *Window) Screen() tcell.Screen { return w.screen }

// Size returns the window size in pixels.
func (w *Window) Size() (int, int) {
	cols, rows := w.screen.Size()
	return cols, rows * 2
}

// ScaleFactor is always 1. Cells are not subdivided horizontally.
func (w *Window) ScaleFactor() float64 { return 1 }

// RequestRedraw wakes up an event loop blocked in PollEvent.
func (w *Window) RequestRedraw() {
	// A full queue already guarantees a wakeup.
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// PresentPixels draws frame starting at the top left cell. Pixels outside
// the terminal are dropped, and a missing bottom pixel is drawn black.
func (w *Window) PresentPixels(frame *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cols, rows := w.screen.Size()
	b := frame.Bounds()
	width := min(cols, b.Dx())
	height := min(rows, (b.Dy()+1)/2)
	for y := range height {
		for x := range width {
			top := frame.RGBAAt(b.Min.X+x, b.Min.Y+2*y)
			bottom := frame.RGBAAt(b.Min.X+x, b.Min.Y+2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			w.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	w.screen.Show()
	return nil
}

// PollQuit drains pending events without blocking. It reports whether
// the user asked to quit with Escape, Ctrl-C or q. Resize events
// resynchronize the screen.
func (w *Window) PollQuit() bool {
	for w.screen.HasPendingEvent() {
		if quit(w.screen, w.screen.PollEvent()) {
			return true
		}
	}
	return false
}

func quit(s tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		return ev.Key() == tcell.KeyRune && ev.Rune() == 'q'
	case *tcell.EventResize:
		s.Sync()
	case nil:
		return true
	}
	return false
}

// Close restores the terminal if New initialized it.
func (w *Window) Close() error {
	if w.owned {
		w.screen.Fini()
	}
	return nil
}

var (
	_ graphics.Window         = (*Window)(nil)
	_ graphics.PixelPresenter = (*Window)(nil)
)
