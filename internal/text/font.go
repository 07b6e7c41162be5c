package text

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/renderer/core"
)

// Face is a parsed font usable for both shaping and outline extraction.
type Face struct {
	id      int
	name    string
	outline *sfnt.Font
	shaping *gotext.Font
}

// Name returns the face's descriptive name.
func (f *Face) Name() string { return f.name }

// NewShapingFace returns a fresh go-text face. go-text faces carry
// per-use caches and must not be shared between goroutines.
func (f *Face) NewShapingFace() *gotext.Face {
	return gotext.NewFace(f.shaping)
}

type bundled struct {
	name string
	data []byte
}

// The bundled faces, indexed by family*4 + weight*2 + style.
var bundledFaces = [...]bundled{
	{"Go Regular", goregular.TTF},
	{"Go Italic", goitalic.TTF},
	{"Go Bold", gobold.TTF},
	{"Go Bold Italic", gobolditalic.TTF},
	{"Go Mono", gomono.TTF},
	{"Go Mono Italic", gomonoitalic.TTF},
	{"Go Mono Bold", gomonobold.TTF},
	{"Go Mono Bold Italic", gomonobolditalic.TTF},
}

var (
	facesMu sync.Mutex
	faces   [len(bundledFaces)]*Face
)

func faceIndex(f core.Font) int {
	i := 0
	if f.Family == core.FamilyMono {
		i = 4
	}
	if f.Weight == core.WeightBold {
		i += 2
	}
	if f.Style == core.StyleItalic {
		i++
	}
	return i
}

// Lookup returns the bundled face closest to f. Unknown families resolve
// to the sans family. Faces are parsed once per process.
func Lookup(f core.Font) (*Face, error) {
	idx := faceIndex(f)

	facesMu.Lock()
	defer facesMu.Unlock()
	if faces[idx] != nil {
		return faces[idx], nil
	}

	b := bundledFaces[idx]
	outline, err := sfnt.Parse(b.data)
	if err != nil {
		return nil, fmt.Errorf("text: parse %s outlines: %w", b.name, err)
	}
	shapingFace, err := gotext.ParseTTF(bytes.NewReader(b.data))
	if err != nil {
		return nil, fmt.Errorf("text: parse %s tables: %w", b.name, err)
	}
	faces[idx] = &Face{
		id:      idx,
		name:    b.name,
		outline: outline,
		shaping: shapingFace.Font,
	}
	return faces[idx], nil
}
