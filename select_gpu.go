//go:build !nogpu && nosoftware

package renderer

import "github.com/gogpu/renderer/gpu"

const configuration = ConfigurationGPU

// Renderer is the GPU renderer.
type Renderer = gpu.Renderer

// Compositor is the GPU compositor.
type Compositor = gpu.Compositor

// Surface is the GPU surface.
type Surface = gpu.Surface

// NewCompositor creates a GPU compositor for window.
func NewCompositor(settings Settings, window Window) (*Compositor, error) {
	return gpu.New(settings, window)
}
