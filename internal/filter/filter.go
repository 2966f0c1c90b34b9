// Package filter implements the per-pixel color transforms applied to photo
// slots of a strip.
package filter

import (
	"fmt"
	"image"
	"math"
)

// Kind names a color filter.
type Kind string

const (
	None      Kind = "none"
	Sepia     Kind = "sepia"
	Grayscale Kind = "grayscale"
	Vintage   Kind = "vintage"
	Bright    Kind = "bright"
	Contrast  Kind = "contrast"
)

// Kinds lists every filter in the order the editor offers them.
var Kinds = []Kind{None, Sepia, Grayscale, Vintage, Bright, Contrast}

// ContrastMode selects how the contrast filter recenters channels.
type ContrastMode string

const (
	// ContrastLiteral adds (factor-1)*255 on top of the recentering, which
	// brightens the result for factor > 1. Existing strips were made this way.
	ContrastLiteral ContrastMode = "literal"
	// ContrastCorrected is the plain (c-128)*factor+128 stretch.
	ContrastCorrected ContrastMode = "corrected"
)

const (
	DefaultBrightFactor   = 1.3
	DefaultContrastFactor = 1.5
)

// Options carries the tunable factors of the parametric filters.
type Options struct {
	BrightFactor   float64
	ContrastFactor float64
	ContrastMode   ContrastMode
}

// DefaultOptions returns the factors the editor has always used.
func DefaultOptions() Options {
	return Options{
		BrightFactor:   DefaultBrightFactor,
		ContrastFactor: DefaultContrastFactor,
		ContrastMode:   ContrastLiteral,
	}
}

// Parse maps a filter name to a Kind. The empty string means None.
func Parse(s string) (Kind, error) {
	if s == "" {
		return None, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// ParseContrastMode maps a config value to a ContrastMode. Empty means literal.
func ParseContrastMode(s string) (ContrastMode, error) {
	switch ContrastMode(s) {
	case "", ContrastLiteral:
		return ContrastLiteral, nil
	case ContrastCorrected:
		return ContrastCorrected, nil
	}
	return "", fmt.Errorf("unknown contrast mode %q", s)
}

// Apply transforms pix in place. pix holds 4-byte RGBA samples; alpha bytes
// are never touched. Unknown kinds are left unchanged.
func Apply(pix []uint8, kind Kind, opt Options) {
	fn := opt.pixelFunc(kind)
	if fn == nil {
		return
	}
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = clamp(r)
		pix[i+1] = clamp(g)
		pix[i+2] = clamp(b)
	}
}

// ApplyRegion runs Apply over the rows of img that fall inside r.
func ApplyRegion(img *image.RGBA, r image.Rectangle, kind Kind, opt Options) {
	r = r.Intersect(img.Rect)
	if r.Empty() || kind == None {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := img.PixOffset(r.Min.X, y)
		end := img.PixOffset(r.Max.X, y)
		Apply(img.Pix[start:end], kind, opt)
	}
}

type pixelFunc func(r, g, b float64) (float64, float64, float64)

func (o Options) pixelFunc(kind Kind) pixelFunc {
	switch kind {
	case Sepia:
		return sepia
	case Grayscale:
		return grayscale
	case Vintage:
		return vintage
	case Bright:
		return scale(o.BrightFactor)
	case Contrast:
		return contrast(o.ContrastFactor, o.ContrastMode)
	}
	return nil
}

func sepia(r, g, b float64) (float64, float64, float64) {
	return r*0.393 + g*0.769 + b*0.189,
		r*0.349 + g*0.686 + b*0.168,
		r*0.272 + g*0.534 + b*0.131
}

func grayscale(r, g, b float64) (float64, float64, float64) {
	l := Luma(r, g, b)
	return l, l, l
}

func vintage(r, g, b float64) (float64, float64, float64) {
	return r * 1.1, g * 1.05, b * 0.9
}

func scale(f float64) pixelFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		return r * f, g * f, b * f
	}
}

func contrast(f float64, mode ContrastMode) pixelFunc {
	offset := 0.0
	if mode != ContrastCorrected {
		offset = (f - 1) * 255
	}
	return func(r, g, b float64) (float64, float64, float64) {
		return (r-128)*f + 128 + offset,
			(g-128)*f + 128 + offset,
			(b-128)*f + 128 + offset
	}
}

// Luma is the BT.601 weighted sum used by the grayscale filter and by theme
// brightness checks.
func Luma(r, g, b float64) float64 {
	return r*0.299 + g*0.587 + b*0.114
}

// clamp stores v the way a clamped byte array does: bounded to [0,255],
// rounded half to even, NaN as 0.
func clamp(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
