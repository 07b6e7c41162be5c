//go:build !sdl

package sdlwindow

import (
	"errors"
	"image"
)

// ErrUnavailable is returned by New in builds without the sdl tag.
var ErrUnavailable = errors.New("sdlwindow: SDL support not enabled; rebuild with -tags sdl")

// Window is unavailable without the sdl tag.
type Window struct{}

// New always fails without the sdl tag.
func New(string, int, int) (*Window, error) { return nil, ErrUnavailable }

func (*Window) Size() (int, int)                { return 0, 0 }
func (*Window) ScaleFactor() float64            { return 1 }
func (*Window) RequestRedraw()                  {}
func (*Window) PresentPixels(*image.RGBA) error { return ErrUnavailable }
func (*Window) Poll() (quit, redraw bool)       { return true, false }
func (*Window) Close() error                    { return nil }
