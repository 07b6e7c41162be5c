package renderer

import (
	"log/slog"

	"github.com/gogpu/renderer/graphics"
)

// SetLogger configures the logger for the renderer and every backend.
// By default nothing is logged. Pass nil to restore that.
//
// Example:
//
//	// Info-level logging to stderr:
//	renderer.SetLogger(slog.Default())
//
//	// Full diagnostics:
//	renderer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) { graphics.SetLogger(l) }

// Logger returns the current logger.
func Logger() *slog.Logger { return graphics.Logger() }
