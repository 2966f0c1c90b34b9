package overlay

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	boldFont    *truetype.Font
	regularFont *truetype.Font
)

func init() {
	var err error
	if boldFont, err = truetype.Parse(gobold.TTF); err != nil {
		panic(fmt.Sprintf("parsing bold font: %v", err))
	}
	if regularFont, err = truetype.Parse(goregular.TTF); err != nil {
		panic(fmt.Sprintf("parsing regular font: %v", err))
	}
}

// Faces hands out font faces by pixel size. Faces keep glyph caches, so a
// Faces value belongs to one render at a time.
type Faces struct {
	mu      sync.Mutex
	bold    map[float64]font.Face
	regular map[float64]font.Face
}

func NewFaces() *Faces {
	return &Faces{
		bold:    make(map[float64]font.Face),
		regular: make(map[float64]font.Face),
	}
}

// Bold returns the bold face at size pixels.
func (f *Faces) Bold(size float64) font.Face {
	return f.face(f.bold, boldFont, size)
}

// Regular returns the regular face at size pixels.
func (f *Faces) Regular(size float64) font.Face {
	return f.face(f.regular, regularFont, size)
}

func (f *Faces) face(cache map[float64]font.Face, ttf *truetype.Font, size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := cache[size]; ok {
		return face
	}
	// 72 DPI so that points equal pixels
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72})
	cache[size] = face
	return face
}
