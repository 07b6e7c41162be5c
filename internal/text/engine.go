// Package text lays out and rasterizes paragraphs with the bundled Go
// fonts: bidi resolution, HarfBuzz shaping, greedy word wrapping and
// anti-aliased glyph masks.
package text

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/cache"
)

const (
	glyphCacheSize     = 2048
	paragraphCacheSize = 256
)

type paragraphKey struct {
	content    string
	font       core.Font
	size       float32
	lineHeight float32
	maxWidth   float32
}

// Engine lays out and draws text. It is safe for concurrent use.
type Engine struct {
	mu sync.Mutex
	l  layouter

	glyphs     *cache.Cache[glyphKey, *mask]
	paragraphs *cache.Cache[paragraphKey, *Paragraph]
}

// NewEngine returns an engine with empty caches.
func NewEngine() *Engine {
	return &Engine{
		glyphs:     cache.New[glyphKey, *mask](glyphCacheSize),
		paragraphs: cache.New[paragraphKey, *Paragraph](paragraphCacheSize),
	}
}

// Defaults supplies the font and size used when a Text leaves them unset.
type Defaults struct {
	Font core.Font
	Size core.Pixels
}

func (d Defaults) resolve(t core.Text) core.Text {
	if t.Font == (core.Font{}) {
		t.Font = d.Font
	}
	if t.Size <= 0 {
		t.Size = d.Size
	}
	if t.Size <= 0 {
		t.Size = 16
	}
	return t
}

// Layout lays out t at scale device pixels per logical pixel.
func (e *Engine) Layout(t core.Text, d Defaults, scale float32) (*Paragraph, error) {
	t = d.resolve(t)
	if scale <= 0 {
		scale = 1
	}
	face, err := Lookup(t.Font)
	if err != nil {
		return nil, err
	}
	key := paragraphKey{
		content:    t.Content,
		font:       t.Font,
		size:       float32(t.Size) * scale,
		lineHeight: t.EffectiveLineHeight() * scale,
		maxWidth:   t.Bounds.Width * scale,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paragraphs.GetOrCreate(key, func() *Paragraph {
		return e.l.layout(key.content, face, key.size, key.lineHeight, key.maxWidth)
	}), nil
}

// Measure returns the logical size of t. Unparseable fonts measure as zero.
func (e *Engine) Measure(t core.Text, d Defaults) core.Size {
	p, err := e.Layout(t, d, 1)
	if err != nil {
		return core.Size{}
	}
	return core.Size{Width: p.Width, Height: p.Height}
}

// Draw rasterizes t into dst. Position, clip and scale are in logical
// units; scale maps them to dst pixels.
func (e *Engine) Draw(dst *image.RGBA, t core.Text, d Defaults, position core.Point, color core.Color, clip core.Rectangle, scale float32) error {
	if color.IsTransparent() || t.Content == "" {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	p, err := e.Layout(t, d, scale)
	if err != nil {
		return err
	}

	cx0, cy0, cx1, cy1 := clip.Scale(scale).Snap()
	clipRect := image.Rect(cx0, cy0, cx1, cy1).Intersect(dst.Bounds())
	if clipRect.Empty() {
		return nil
	}

	origin := core.Point{X: position.X * scale, Y: position.Y * scale}
	origin.X -= align(t.Horizontal, p.Width)
	origin.Y -= align(t.Vertical, p.Height)
	src := image.NewUniform(color.Premultiplied())

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, line := range p.Lines {
		lineX := origin.X + alignOffset(t.Horizontal, p.Width, line.Width)
		baseline := origin.Y + line.Baseline
		for _, g := range line.Glyphs {
			e.drawGlyph(dst, clipRect, src, p.Face, p.Size, g, lineX, baseline)
		}
	}
	return nil
}

func (e *Engine) drawGlyph(dst *image.RGBA, clip image.Rectangle, src image.Image, face *Face, size float32, g Glyph, lineX, baseline float32) {
	x := lineX + g.X
	y := baseline + g.Y
	ix := math.Floor(float64(x))
	sub := uint8((x - float32(ix)) * subpixelSteps)
	iy := int(math.Round(float64(y)))

	key := glyphKey{face: face.id, id: g.ID, size: toFixed(size), subpixel: sub}
	m := e.glyphs.GetOrCreate(key, func() *mask { return e.l.rasterize(face, key) })
	if m == nil {
		return
	}
	at := image.Pt(int(ix), iy).Add(m.Offset)
	r := m.Alpha.Bounds().Add(at).Intersect(clip)
	if r.Empty() {
		return
	}
	draw.DrawMask(dst, r, src, image.Point{}, m.Alpha, r.Min.Sub(at), draw.Over)
}

// align returns how far content of the given extent shifts back from the
// anchor point.
func align(a core.Alignment, extent float32) float32 {
	switch a {
	case core.AlignCenter:
		return extent / 2
	case core.AlignEnd:
		return extent
	default:
		return 0
	}
}

// alignOffset positions a line of width w inside a paragraph of width total.
func alignOffset(a core.Alignment, total, w float32) float32 {
	return align(a, total-w)
}

// GlyphCacheStats exposes the glyph cache statistics.
func (e *Engine) GlyphCacheStats() cache.Stats {
	return e.glyphs.Stats()
}
