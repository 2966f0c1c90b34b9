// Package layout divides the strip canvas into a bordered frame and the
// photo slots inside it.
package layout

import (
	"image"
)

const (
	DefaultWidth       = 600
	DefaultHeight      = 1800
	DefaultBorderWidth = 80
	DefaultSpacing     = 20
)

// Spec holds the canvas constants a layout is computed from.
type Spec struct {
	Width       int
	Height      int
	BorderWidth int
	Spacing     int
}

// DefaultSpec is the 600x1800 strip with an 80px border and 20px gaps.
func DefaultSpec() Spec {
	return Spec{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		BorderWidth: DefaultBorderWidth,
		Spacing:     DefaultSpacing,
	}
}

// Size returns the canvas rectangle.
func (s Spec) Size() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// MaxPhotos is the largest photo count whose slots are still at least one
// pixel tall.
func (s Spec) MaxPhotos() int {
	frameH := s.Height - 2*s.BorderWidth
	if frameH < 1 {
		return 0
	}
	// frameH-(n-1)*spacing >= n
	return (frameH + s.Spacing) / (1 + s.Spacing)
}

// Layout is the computed geometry for one photo count.
type Layout struct {
	Spec       Spec
	Frame      image.Rectangle
	SlotHeight int
	Slots      []image.Rectangle
}

// Compute places n photos in equal-height slots stacked down the frame.
// Integer division may leave up to n-1 unused pixels below the last slot.
// n <= 0 yields no slots. Callers must keep n <= s.MaxPhotos().
func Compute(s Spec, n int) Layout {
	b := s.BorderWidth
	frame := image.Rect(b, b, s.Width-b, s.Height-b)
	l := Layout{Spec: s, Frame: frame}
	if n <= 0 {
		return l
	}
	avail := frame.Dy() - (n-1)*s.Spacing
	l.SlotHeight = avail / n
	l.Slots = make([]image.Rectangle, n)
	for i := range l.Slots {
		y := b + i*(l.SlotHeight+s.Spacing)
		l.Slots[i] = image.Rect(b, y, b+frame.Dx(), y+l.SlotHeight)
	}
	return l
}
