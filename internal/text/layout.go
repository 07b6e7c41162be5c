package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Glyph is a shaped glyph positioned relative to its line origin.
// Y grows down from the baseline.
type Glyph struct {
	ID   sfnt.GlyphIndex
	X, Y float32
}

// Line is one laid out line of a paragraph.
type Line struct {
	Glyphs []Glyph
	// Width excludes trailing whitespace.
	Width float32
	// Baseline is the distance from the paragraph top to the baseline.
	Baseline float32
}

// Paragraph is laid out text in pixel units.
type Paragraph struct {
	Face       *Face
	Size       float32
	LineHeight float32
	Lines      []Line
	Width      float32
	Height     float32
}

// piece is a shaped word with its trailing spaces, in visual glyph order.
type piece struct {
	word      []Glyph
	wordWidth float32
	space     []Glyph
	spaceW    float32
	rtl       bool
}

type layouter struct {
	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer
}

// layout shapes content with face at size pixels and wraps lines longer
// than maxWidth. A non-positive maxWidth disables wrapping.
func (l *layouter) layout(content string, face *Face, size, lineHeight, maxWidth float32) *Paragraph {
	p := &Paragraph{Face: face, Size: size, LineHeight: lineHeight}
	ascent, descent := l.metrics(face, size)
	lead := (lineHeight - (ascent + descent)) / 2

	shapingFace := face.NewShapingFace()
	for _, hard := range strings.Split(content, "\n") {
		pieces := l.shapeLine(strings.TrimSuffix(hard, "\r"), shapingFace, size)
		for _, lineTokens := range wrap(pieces, maxWidth) {
			line := assemble(lineTokens)
			line.Baseline = float32(len(p.Lines))*lineHeight + lead + ascent
			p.Width = max(p.Width, line.Width)
			p.Lines = append(p.Lines, line)
		}
	}
	p.Height = float32(len(p.Lines)) * lineHeight
	return p
}

func (l *layouter) metrics(face *Face, size float32) (ascent, descent float32) {
	m, err := face.outline.Metrics(&l.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return size * 0.8, size * 0.2
	}
	return fromFixed(m.Ascent), fromFixed(m.Descent)
}

// shapeLine splits a hard line into pieces and shapes each with the
// direction bidi resolution assigned to it.
func (l *layouter) shapeLine(line string, face *gotext.Face, size float32) []piece {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil
	}
	levels := directionLevels(line, runes)

	var out []piece
	for start := 0; start < len(runes); {
		end := start
		for end < len(runes) && !unicode.IsSpace(runes[end]) && levels[end] == levels[start] {
			end++
		}
		spaceEnd := end
		for spaceEnd < len(runes) && unicode.IsSpace(runes[spaceEnd]) {
			spaceEnd++
		}
		rtl := levels[start]%2 == 1
		pc := piece{rtl: rtl}
		pc.word, pc.wordWidth = l.shape(runes, start, end, rtl, face, size)
		pc.space, pc.spaceW = l.shape(runes, end, spaceEnd, rtl, face, size)
		out = append(out, pc)
		start = spaceEnd
	}
	return out
}

func (l *layouter) shape(runes []rune, start, end int, rtl bool, face *gotext.Face, size float32) ([]Glyph, float32) {
	if start >= end {
		return nil, 0
	}
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      face,
		Size:      toFixed(size),
		Script:    scriptOf(runes[start:end]),
		Language:  language.NewLanguage("en"),
	})

	glyphs := make([]Glyph, len(out.Glyphs))
	var x float32
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			ID: sfnt.GlyphIndex(g.GlyphID),
			X:  x + fromFixed(g.XOffset),
			Y:  -fromFixed(g.YOffset),
		}
		x += fromFixed(g.XAdvance)
	}
	return glyphs, x
}

// directionLevels returns an embedding level per rune: even for left to
// right, odd for right to left.
func directionLevels(line string, runes []rune) []int {
	levels := make([]int, len(runes))
	if !hasRTL(runes) {
		return levels
	}

	var p bidi.Paragraph
	if _, err := p.SetString(line, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}
	// Pos returns inclusive rune indices.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() != bidi.RightToLeft {
			continue
		}
		from, to := run.Pos()
		for j := from; j <= to && j < len(levels); j++ {
			levels[j] = 1
		}
	}
	return levels
}

func hasRTL(runes []rune) bool {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// wrap distributes pieces over lines no wider than maxWidth. A piece
// wider than maxWidth gets a line of its own.
func wrap(pieces []piece, maxWidth float32) [][]piece {
	if len(pieces) == 0 {
		return [][]piece{nil}
	}
	var lines [][]piece
	var current []piece
	var width float32
	for _, pc := range pieces {
		if maxWidth > 0 && len(current) > 0 && width+pc.wordWidth > maxWidth {
			lines = append(lines, current)
			current, width = nil, 0
		}
		current = append(current, pc)
		width += pc.wordWidth + pc.spaceW
	}
	return append(lines, current)
}

// assemble places the pieces of one line in visual order. Consecutive
// right to left pieces are reversed as a group.
func assemble(pieces []piece) Line {
	visual := make([]piece, 0, len(pieces))
	for i := 0; i < len(pieces); {
		if !pieces[i].rtl {
			visual = append(visual, pieces[i])
			i++
			continue
		}
		j := i
		for j < len(pieces) && pieces[j].rtl {
			j++
		}
		for k := j - 1; k >= i; k-- {
			visual = append(visual, pieces[k])
		}
		i = j
	}

	var line Line
	var x, trailing float32
	place := func(glyphs []Glyph, width float32) {
		for _, g := range glyphs {
			g.X += x
			line.Glyphs = append(line.Glyphs, g)
		}
		x += width
	}
	for i, pc := range visual {
		last := i == len(visual)-1
		if pc.rtl {
			place(pc.space, pc.spaceW)
			place(pc.word, pc.wordWidth)
			trailing = 0
		} else {
			place(pc.word, pc.wordWidth)
			place(pc.space, pc.spaceW)
			if last {
				trailing = pc.spaceW
			}
		}
	}
	line.Width = x - trailing
	return line
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
