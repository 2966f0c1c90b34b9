// Package overlay places user text in the four border zones of a strip and
// draws it.
package overlay

import (
	"fmt"
	"image/color"
	"math"

	"github.com/youruser/photobooth/internal/layout"
	"github.com/youruser/photobooth/internal/theme"
)

type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

const (
	DefaultSize = 24

	// pitch added to the font size when stacking overlays or characters
	stackGap = 5
	// pitch added to the font size when stacking overlays in the side zones
	sideGap = 10
)

// Overlay is one text annotation as the editor collected it.
type Overlay struct {
	Text        string
	Color       color.RGBA
	Size        int
	Position    Position
	Orientation Orientation
}

// ParsePosition maps a name to a Position; empty means Top.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case "":
		return Top, nil
	case Top, Bottom, Left, Right:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown text position %q", s)
}

// ParseOrientation maps a name to an Orientation; empty means Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "":
		return Horizontal, nil
	case Horizontal, Vertical:
		return Orientation(s), nil
	}
	return "", fmt.Errorf("unknown text orientation %q", s)
}

// Glyph is one single-character draw of a vertical stack.
type Glyph struct {
	Text string
	X, Y float64
}

// Instruction is the resolved draw for one overlay. X and Y are the
// center-aligned baseline anchor. When Chars is non-empty the overlay is
// drawn as those stacked characters instead of Text at the anchor.
type Instruction struct {
	Text     string
	Size     float64
	Color    color.RGBA
	Shadow   color.NRGBA
	X, Y     float64
	Rotation float64
	Chars    []Glyph
}

// Stacked reports whether the instruction is a per-character stack.
func (in Instruction) Stacked() bool {
	return len(in.Chars) > 0
}

var (
	shadowDark  = color.NRGBA{0, 0, 0, 179}
	shadowLight = color.NRGBA{255, 255, 255, 179}
)

// Place computes one Instruction per overlay, in order. Overlays sharing a
// position stack by their index within that position at a fixed pitch; text
// width is never measured, so long overlays in the same zone can still touch.
func Place(overlays []Overlay, th theme.Theme, spec layout.Spec) []Instruction {
	w, h := float64(spec.Width), float64(spec.Height)
	bw := float64(spec.BorderWidth)
	seen := make(map[Position]int, 4)
	out := make([]Instruction, 0, len(overlays))

	for _, o := range overlays {
		idx := float64(seen[o.Position])
		seen[o.Position]++
		size := float64(o.Size)

		in := Instruction{Text: o.Text, Size: size, Color: TextColor(o.Color, th)}
		in.Shadow = ShadowColor(in.Color)

		switch o.Position {
		case Bottom:
			in.X = w / 2
			in.Y = h - bw/2 + size/2 - idx*(size+stackGap)
		case Left:
			in.X = bw / 2
			in.Y = h/2 + idx*(size+sideGap)
			if o.Orientation != Vertical {
				in.Rotation = -math.Pi / 2
			}
		case Right:
			in.X = w - bw/2
			in.Y = h/2 + idx*(size+sideGap)
			if o.Orientation != Vertical {
				in.Rotation = math.Pi / 2
			}
		default:
			in.X = w / 2
			in.Y = bw/2 + size/2 + idx*(size+stackGap)
		}

		if o.Orientation == Vertical {
			in.Chars = stack(o.Text, in.X, in.Y, size)
		}
		out = append(out, in)
	}
	return out
}

// stack centers the characters of text on x, spread along y at size+5 pitch
// with the block centered on y.
func stack(text string, x, y, size float64) []Glyph {
	runes := []rune(text)
	pitch := size + stackGap
	start := y - float64(len(runes)-1)*pitch/2
	out := make([]Glyph, len(runes))
	for i, r := range runes {
		out[i] = Glyph{Text: string(r), X: x, Y: start + float64(i)*pitch}
	}
	return out
}

// TextColor swaps pure black for white on gradient themes.
func TextColor(c color.RGBA, th theme.Theme) color.RGBA {
	if th.IsGradient() && c == theme.Black {
		return theme.White
	}
	return c
}

// ShadowColor is a dark shadow under white text and a light one otherwise.
func ShadowColor(text color.RGBA) color.NRGBA {
	if text == theme.White {
		return shadowDark
	}
	return shadowLight
}
