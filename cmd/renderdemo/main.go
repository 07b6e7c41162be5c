//go:build !(nogpu && nosoftware)

// Command renderdemo animates the demo scene in the terminal, or in an SDL
// window when built with the sdl tag and run with -sdl.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/term"

	"github.com/gogpu/renderer"
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
	"github.com/gogpu/renderer/internal/demo"
	"github.com/gogpu/renderer/window/sdlwindow"
	"github.com/gogpu/renderer/window/terminal"
)

// SDL must run on the main thread.
func init() { runtime.LockOSThread() }

// window is a host window with an event pump.
type window interface {
	graphics.Window
	poll() (quit bool)
	Close() error
}

type terminalWindow struct{ *terminal.Window }

func (w terminalWindow) poll() bool { return w.PollQuit() }

type sdlWindow struct{ *sdlwindow.Window }

func (w sdlWindow) poll() bool {
	quit, _ := w.Poll()
	return quit
}

func main() {
	var (
		backend = flag.String("backend", "", "comma separated backends to try (gpu, software)")
		useSDL  = flag.Bool("sdl", false, "open an SDL window instead of using the terminal")
		width   = flag.Int("width", 800, "SDL window width")
		height  = flag.Int("height", 600, "SDL window height")
		fps     = flag.Float64("fps", 30, "target frames per second")
		frames  = flag.Int("frames", 0, "stop after this many frames (0 runs until q)")
		logFile = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if *fps <= 0 {
		log.Fatalf("fps must be positive (got %.2f)", *fps)
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		renderer.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	w, err := open(*useSDL, *width, *height)
	if err != nil {
		log.Fatal(err)
	}
	err = run(w, *backend, *fps, *frames)
	_ = w.Close()
	if err != nil {
		log.Fatal(err)
	}
}

func open(useSDL bool, width, height int) (window, error) {
	if useSDL {
		w, err := sdlwindow.New("renderdemo", width, height)
		if err != nil {
			return nil, err
		}
		return sdlWindow{w}, nil
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("renderdemo: stdout is not a terminal; use -sdl or rendershot")
	}
	w, err := terminal.New()
	if err != nil {
		return nil, err
	}
	return terminalWindow{w}, nil
}

func run(w window, backend string, fps float64, limit int) error {
	settings := graphics.NewSettings(graphics.WithBackend(backend))
	c, err := renderer.NewCompositor(settings, w)
	if err != nil {
		return err
	}
	defer c.Close()

	info := c.FetchInformation()
	caption := fmt.Sprintf("%s on %s (%s build)", info.Backend, info.Adapter, renderer.Selected())

	vp := graphics.ViewportOf(w)
	size := vp.PhysicalSize()
	s, err := c.CreateSurface(w, size.Width, size.Height)
	if err != nil {
		return err
	}
	r := c.CreateRenderer()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()
	for frame := 0; limit == 0 || frame < limit; frame++ {
		if w.poll() {
			return nil
		}
		if next := graphics.ViewportOf(w); next != vp {
			vp = next
			size = vp.PhysicalSize()
			c.ConfigureSurface(s, size.Width, size.Height)
		}

		r.Clear()
		demo.Scene(r, vp.LogicalSize(), frame, caption)
		switch err := c.Present(r, s, vp, core.Black); {
		case errors.Is(err, graphics.ErrSurfaceOutdated):
			c.ConfigureSurface(s, size.Width, size.Height)
		case err != nil:
			return err
		}
		<-ticker.C
	}
	return nil
}
