//go:build !nosoftware

// Command rendershot renders the demo scene headlessly and saves it as PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/renderer"
	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/demo"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width in logical pixels")
		height  = flag.Int("height", 600, "image height in logical pixels")
		scale   = flag.Float64("scale", 1, "scale factor")
		output  = flag.String("output", "shot.png", "output file")
		caption = flag.String("caption", "renderer", "caption text")
		size    = flag.Float64("text-size", 16, "default text size")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *width <= 0 || *height <= 0 || *scale <= 0 {
		log.Fatalf("invalid dimensions: %dx%d at scale %.2f", *width, *height, *scale)
	}
	if *debug {
		renderer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	r := renderer.NewHeadless(core.DefaultFont, core.Pixels(*size))
	demo.Scene(r, core.Size{Width: float32(*width), Height: float32(*height)}, 0, *caption)

	phys := core.PhysicalSize{
		Width:  uint32(float64(*width) * *scale),
		Height: uint32(float64(*height) * *scale),
	}
	img := &image.RGBA{
		Pix:    r.Screenshot(phys, float32(*scale), core.Black),
		Stride: int(phys.Width) * 4,
		Rect:   image.Rect(0, 0, int(phys.Width), int(phys.Height)),
	}

	if err := save(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Screenshot saved to %s (%dx%d, %s build)\n", *output, phys.Width, phys.Height, renderer.Selected())
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
