// Package demo draws the sample scene shared by the command line tools.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/renderer/core"
)

const stripes = 32

// Scene draws a gradient background, a row of rounded cards, a checker
// image and a caption into r. Frame animates the card offsets.
func Scene(r core.Renderer, size core.Size, frame int, caption string) {
	background(r, size)

	r.StartLayer(core.WithSize(size))
	cards(r, size, frame)
	r.EndLayer()

	side := min(size.Width, size.Height) / 4
	r.DrawImage(core.Image{Handle: Checker(8, 8), Filter: core.FilterNearest},
		core.Rectangle{X: size.Width - side - 8, Y: size.Height - side - 8, Width: side, Height: side})

	text := core.Text{
		Content: caption,
		Size:    max(r.DefaultSize(), core.Pixels(size.Height/12)),
		Font:    r.DefaultFont(),
	}
	r.FillText(text, core.Point{X: 8, Y: 8}, core.White, core.WithSize(size))
}

func background(r core.Renderer, size core.Size) {
	h := size.Height / stripes
	for i := range stripes {
		t := float32(i) / stripes
		r.FillQuad(core.Quad{
			Bounds: core.Rectangle{Y: float32(i) * h, Width: size.Width, Height: h + 1},
		}, core.SolidBackground(core.FromRGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2)))
	}
}

func cards(r core.Renderer, size core.Size, frame int) {
	colors := []core.Color{
		core.FromRGB(1, 0.3, 0.3),
		core.FromRGB(0.3, 1, 0.3),
		core.FromRGB(0.3, 0.3, 1),
	}
	w := size.Width / 5
	h := size.Height / 3
	for i, c := range colors {
		phase := float64(frame)/15 + float64(i)
		dy := float32(math.Sin(phase)) * h / 8
		r.StartTransformation(core.Translate(w/2+float32(i)*(w+w/4), size.Height/3+dy))
		r.FillQuad(core.Quad{
			Bounds: core.Rectangle{Width: w, Height: h},
			Border: core.Border{Color: core.White, Width: 2, Radius: core.UniformRadius(w / 6)},
			Shadow: core.Shadow{Color: core.Color{A: 0.5}, Offset: core.Vector{X: 3, Y: 4}, BlurRadius: 6},
		}, core.SolidBackground(c))
		label := core.Text{
			Content:    fmt.Sprint(i + 1),
			Bounds:     core.Size{Width: w, Height: h},
			Size:       core.Pixels(h / 3),
			Font:       r.DefaultFont(),
			Horizontal: core.AlignCenter,
			Vertical:   core.AlignCenter,
		}
		r.FillText(label, core.Point{}, core.Black, core.Infinite)
		r.EndTransformation()
	}
}

// Checker returns a w x h checkerboard of opaque black and white pixels.
func Checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}
