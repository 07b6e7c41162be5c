package renderer

import (
	"github.com/gogpu/renderer/graphics"
)

// Configuration is the backend set a binary was built with.
type Configuration uint8

const (
	// ConfigurationNone has no backend. It only builds with the
	// rendererdev tag and provides placeholder types.
	ConfigurationNone Configuration = iota
	// ConfigurationGPU has only the GPU backend (nosoftware tag).
	ConfigurationGPU
	// ConfigurationSoftware has only the software backend (nogpu tag).
	ConfigurationSoftware
	// ConfigurationFallback has both backends.
	ConfigurationFallback
)

// String returns a short name for the configuration.
func (c Configuration) String() string {
	switch c {
	case ConfigurationNone:
		return "none"
	case ConfigurationGPU:
		return "gpu"
	case ConfigurationSoftware:
		return "software"
	case ConfigurationFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Selected returns the configuration of this build.
func Selected() Configuration { return configuration }

// Settings configures a compositor.
type Settings = graphics.Settings

// Window is a host window.
type Window = graphics.Window

// Backends returns the names of the compiled-in backends, hardware first.
func Backends() []string {
	infos := graphics.Backends()
	names := make([]string, len(infos))
	for i, b := range infos {
		names[i] = b.Name
	}
	return names
}
