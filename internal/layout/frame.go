package layout

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/youruser/photobooth/internal/theme"
)

// Tone says which kind of background a frame stroke was chosen for.
type Tone int

const (
	// ToneNeutral is the classic light gray outline.
	ToneNeutral Tone = iota
	// ToneLight is a near-white stroke for dark or gradient backgrounds.
	ToneLight
	// ToneDark is a translucent dark stroke for light backgrounds.
	ToneDark
)

func (t Tone) String() string {
	switch t {
	case ToneLight:
		return "light"
	case ToneDark:
		return "dark"
	}
	return "neutral"
}

// Stroke is the frame outline style for a theme.
type Stroke struct {
	Tone  Tone
	Color color.NRGBA
	Width float64
}

var (
	strokeLight   = color.NRGBA{255, 255, 255, 204}
	strokeDark    = color.NRGBA{0, 0, 0, 77}
	strokeNeutral = color.NRGBA{0xde, 0xe2, 0xe6, 0xff}
	hairline      = color.NRGBA{0, 0, 0, 26}
)

const frameLineWidth = 3

// StrokeFor picks the frame outline for t. Custom themes get a dark stroke on
// light colors and a light stroke otherwise.
func StrokeFor(t theme.Theme) Stroke {
	s := Stroke{Tone: ToneNeutral, Color: strokeNeutral, Width: frameLineWidth}
	switch {
	case t.IsGradient():
		s.Tone, s.Color = ToneLight, strokeLight
	case t.IsPattern():
		s.Tone, s.Color = ToneDark, strokeDark
	case t.ID == theme.Custom:
		if theme.IsLight(t.Color) {
			s.Tone, s.Color = ToneDark, strokeDark
		} else {
			s.Tone, s.Color = ToneLight, strokeLight
		}
	}
	return s
}

// DrawFrame strokes the frame outline and a faint 1px hairline just inside it.
func DrawFrame(dc *gg.Context, l Layout, s Stroke) {
	f := l.Frame
	dc.SetColor(s.Color)
	dc.SetLineWidth(s.Width)
	dc.DrawRectangle(float64(f.Min.X), float64(f.Min.Y), float64(f.Dx()), float64(f.Dy()))
	dc.Stroke()

	dc.SetColor(hairline)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(f.Min.X+1), float64(f.Min.Y+1), float64(f.Dx()-2), float64(f.Dy()-2))
	dc.Stroke()
}
