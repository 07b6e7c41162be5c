//go:build nogpu && nosoftware && rendererdev

package renderer

const configuration = ConfigurationNone

// Renderer is a placeholder. It implements no drawing interface.
type Renderer struct{}

// Compositor is a placeholder. It cannot be created.
type Compositor struct{}

// Surface is a placeholder.
type Surface struct{}
