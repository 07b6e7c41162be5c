package graphics

import (
	"os"
	"strings"

	"github.com/gogpu/renderer/core"
)

// BackendEnv names the environment variable holding the preferred backends,
// as a comma separated list such as "software" or "gpu,software".
const BackendEnv = "RENDERER_BACKEND"

// Antialiasing selects the coverage quality used for geometry.
type Antialiasing uint8

// Antialiasing modes.
const (
	AntialiasingNone Antialiasing = iota
	AntialiasingMSAAx4
	AntialiasingAnalytic
)

// String returns a short name for the mode.
func (a Antialiasing) String() string {
	switch a {
	case AntialiasingNone:
		return "none"
	case AntialiasingMSAAx4:
		return "msaa4x"
	case AntialiasingAnalytic:
		return "analytic"
	default:
		return "unknown"
	}
}

// PresentMode controls how frames are paced.
type PresentMode uint8

// Present modes.
const (
	PresentModeFifo PresentMode = iota
	PresentModeImmediate
)

// Settings configures a compositor.
type Settings struct {
	DefaultFont     core.Font
	DefaultTextSize core.Pixels
	Antialiasing    Antialiasing
	PresentMode     PresentMode

	// Backend overrides the environment. Empty means no preference.
	Backend string
}

// Option configures Settings.
//
// Example:
//
//	s := graphics.NewSettings(
//	    graphics.WithDefaultTextSize(14),
//	    graphics.WithBackend("software"),
//	)
type Option func(*Settings)

// DefaultSettings returns settings with the bundled sans font at 16px.
func DefaultSettings() Settings {
	return Settings{
		DefaultFont:     core.DefaultFont,
		DefaultTextSize: 16,
		Antialiasing:    AntialiasingAnalytic,
		PresentMode:     PresentModeFifo,
	}
}

// NewSettings applies opts over DefaultSettings.
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithDefaultFont sets the font used when text does not name one.
func WithDefaultFont(f core.Font) Option {
	return func(s *Settings) {
		s.DefaultFont = f
	}
}

// WithDefaultTextSize sets the text size used when text does not name one.
func WithDefaultTextSize(size core.Pixels) Option {
	return func(s *Settings) {
		if size > 0 {
			s.DefaultTextSize = size
		}
	}
}

// WithAntialiasing sets the antialiasing mode.
func WithAntialiasing(a Antialiasing) Option {
	return func(s *Settings) {
		s.Antialiasing = a
	}
}

// WithPresentMode sets the frame pacing mode.
func WithPresentMode(m PresentMode) Option {
	return func(s *Settings) {
		s.PresentMode = m
	}
}

// WithBackend forces a backend name, ignoring the environment.
func WithBackend(name string) Option {
	return func(s *Settings) {
		s.Backend = name
	}
}

// Candidates returns the backend names to try, in order. An empty name
// means "no preference": each backend accepts it.
func (s Settings) Candidates() []string {
	if s.Backend != "" {
		return parseCandidates(s.Backend)
	}
	if env, ok := os.LookupEnv(BackendEnv); ok {
		if c := parseCandidates(env); len(c) > 0 {
			return c
		}
	}
	return []string{""}
}

func parseCandidates(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
