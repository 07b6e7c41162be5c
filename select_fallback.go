//go:build !nogpu && !nosoftware

package renderer

import (
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/fallback"
	"github.com/gogpu/renderer/gpu"
	"github.com/gogpu/renderer/software"
)

const configuration = ConfigurationFallback

// Renderer holds either the GPU or the software renderer.
type Renderer = fallback.Renderer[*gpu.Renderer, *software.Renderer]

// Compositor holds either the GPU or the software compositor.
type Compositor = fallback.Compositor[*gpu.Renderer, *gpu.Surface, *software.Renderer, *software.Surface]

// Surface holds the surface of the active compositor.
type Surface = fallback.Surface[*gpu.Surface, *software.Surface]

// NewHeadless returns a software renderer for offscreen use. It is always
// the Secondary variant.
func NewHeadless(font core.Font, size core.Pixels) *Renderer {
	return fallback.NewSecondary[*gpu.Renderer](software.NewRenderer(font, size))
}

// NewCompositor creates a compositor for window, preferring the GPU.
func NewCompositor(settings Settings, window Window) (*Compositor, error) {
	return fallback.New(settings, window,
		fallback.Adapt[*gpu.Compositor, *gpu.Renderer, *gpu.Surface](gpu.WithBackend),
		fallback.Adapt[*software.Compositor, *software.Renderer, *software.Surface](software.WithBackend),
	)
}
