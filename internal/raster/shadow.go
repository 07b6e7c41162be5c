package raster

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/renderer/core"
)

// drawShadow rasterizes the quad's silhouette at the shadow offset,
// blurs it and composites it with the shadow color. b and radius are in
// pixels.
func (c *Canvas) drawShadow(b core.Rectangle, radius core.Radius, sh core.Shadow, clip image.Rectangle) {
	sigma := float64(sh.BlurRadius*c.scale) / 2
	spread := float32(math.Ceil(sigma * 3))
	shape := b.Translate(core.Vector{X: sh.Offset.X * c.scale, Y: sh.Offset.Y * c.scale})

	x0, y0, x1, y1 := shape.Expand(spread).Snap()
	r := image.Rect(x0, y0, x1, y1)
	visible := r.Intersect(clip)
	if visible.Empty() {
		return
	}

	// The silhouette is rasterized over the full blur extent so that
	// clipping does not cut into the blur.
	alpha := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	c.z.Reset(r.Dx(), r.Dy())
	c.roundedRect(shape.X-float32(r.Min.X), shape.Y-float32(r.Min.Y), shape.Width, shape.Height, radius, false)
	c.z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	if sigma > 0 {
		blurAlpha(alpha.Pix, r.Dx(), r.Dy(), sigma)
	}
	draw.DrawMask(c.img, visible, image.NewUniform(sh.Color.Premultiplied()), image.Point{},
		alpha, visible.Min.Sub(r.Min), draw.Over)
}

// gaussianKernel returns a normalized 1D kernel covering three standard
// deviations on each side.
func gaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

var (
	kernelsMu sync.Mutex
	kernels   = map[int][]float32{}
)

// cachedKernel quantizes sigma to hundredths.
func cachedKernel(sigma float64) []float32 {
	key := int(sigma * 100)
	kernelsMu.Lock()
	defer kernelsMu.Unlock()
	if k, ok := kernels[key]; ok {
		return k
	}
	if len(kernels) >= 64 {
		clear(kernels)
	}
	k := gaussianKernel(float64(key) / 100)
	kernels[key] = k
	return k
}

// blurAlpha applies a separable gaussian blur in place. Samples outside
// the buffer count as transparent.
func blurAlpha(pix []uint8, w, h int, sigma float64) {
	kernel := cachedKernel(sigma)
	half := len(kernel) / 2
	tmp := make([]float32, w*h)

	for y := 0; y < h; y++ {
		row := pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var sum float32
			for k, kv := range kernel {
				sx := x + k - half
				if sx >= 0 && sx < w {
					sum += float32(row[sx]) * kv
				}
			}
			tmp[y*w+x] = sum
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k, kv := range kernel {
				sy := y + k - half
				if sy >= 0 && sy < h {
					sum += tmp[sy*w+x] * kv
				}
			}
			pix[y*w+x] = uint8(min(255, sum+0.5))
		}
	}
}
