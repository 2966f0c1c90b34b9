package theme

import (
	"image/color"

	"github.com/fogleman/gg"
)

// gradient stops, top to bottom
var gradients = map[ID][2]color.RGBA{
	Sunset: {MustHex("#ff7e5f"), MustHex("#feb47b")},
	Ocean:  {MustHex("#667eea"), MustHex("#764ba2")},
	Forest: {MustHex("#11998e"), MustHex("#38ef7d")},
}

var (
	patternLight = MustHex("#f8f9fa")
	patternDark  = MustHex("#e9ecef")
)

const (
	dotRadius   = 4
	dotSpacing  = 20
	stripeWidth = 30
)

// Paint covers the whole w x h area of dc with the theme background. Unknown
// ids paint classic white.
func Paint(dc *gg.Context, t Theme, w, h int) {
	fw, fh := float64(w), float64(h)
	switch t.ID {
	case Sunset, Ocean, Forest:
		stops := gradients[t.ID]
		// end the gradient on the last row so both stop colors land exactly
		grad := gg.NewLinearGradient(0, 0, 0, fh-1)
		grad.AddColorStop(0, stops[0])
		grad.AddColorStop(1, stops[1])
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, fw, fh)
		dc.Fill()
	case Dots:
		fill(dc, patternLight, 0, 0, fw, fh)
		dc.SetColor(patternDark)
		for x := dotSpacing; x < w; x += dotSpacing {
			for y := dotSpacing; y < h; y += dotSpacing {
				dc.DrawCircle(float64(x), float64(y), dotRadius)
			}
		}
		dc.Fill()
	case Stripes:
		light := true
		for x := 0; x < w; x += stripeWidth {
			c := patternDark
			if light {
				c = patternLight
			}
			fill(dc, c, float64(x), 0, stripeWidth, fh)
			light = !light
		}
	case Custom:
		fill(dc, t.Color, 0, 0, fw, fh)
	default:
		fill(dc, White, 0, 0, fw, fh)
	}
}

func fill(dc *gg.Context, c color.Color, x, y, w, h float64) {
	dc.SetColor(c)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
}
