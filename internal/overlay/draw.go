package overlay

import (
	"image/color"

	"github.com/fogleman/gg"
)

// shadow offset in canvas pixels, independent of text rotation
const shadowOffset = 1

// Draw renders every instruction onto dc. Each overlay's shadow pass is drawn
// and discarded before its text, so nothing carries over to later drawing.
func Draw(dc *gg.Context, ins []Instruction, faces *Faces) {
	for _, in := range ins {
		dc.SetFontFace(faces.Bold(in.Size))
		drawPass(dc, in, shadowOffset, in.Shadow)
		drawPass(dc, in, 0, in.Color)
	}
}

func drawPass(dc *gg.Context, in Instruction, off float64, c color.Color) {
	dc.Push()
	defer dc.Pop()
	dc.SetColor(c)

	if in.Stacked() {
		for _, g := range in.Chars {
			dc.DrawStringAnchored(g.Text, g.X+off, g.Y+off, 0.5, 0)
		}
		return
	}
	dc.Translate(in.X+off, in.Y+off)
	if in.Rotation != 0 {
		dc.Rotate(in.Rotation)
	}
	dc.DrawStringAnchored(in.Text, 0, 0, 0.5, 0)
}
