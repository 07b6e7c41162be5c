//go:build nogpu && !nosoftware

package renderer

import (
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/software"
)

const configuration = ConfigurationSoftware

// Renderer is the software renderer.
type Renderer = software.Renderer

// Compositor is the software compositor.
type Compositor = software.Compositor

// Surface is the software surface.
type Surface = software.Surface

// NewHeadless returns a software renderer for offscreen use.
func NewHeadless(font core.Font, size core.Pixels) *Renderer {
	return software.NewRenderer(font, size)
}

// NewCompositor creates a software compositor for window.
func NewCompositor(settings Settings, window Window) (*Compositor, error) {
	return software.New(settings, window)
}
