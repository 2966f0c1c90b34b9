// Package theme defines the strip backgrounds and paints them.
package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ID names a background theme. The values match the ids the editor has
// always stored in saved sessions.
type ID string

const (
	Classic ID = "classic"
	Sunset  ID = "gradient1"
	Ocean   ID = "gradient2"
	Forest  ID = "gradient3"
	Dots    ID = "pattern1"
	Stripes ID = "pattern2"
	Custom  ID = "custom"
)

// IDs lists the preset themes followed by Custom.
var IDs = []ID{Classic, Sunset, Ocean, Forest, Dots, Stripes, Custom}

var aliases = map[string]ID{
	"gradient-sunset": Sunset,
	"gradient-ocean":  Ocean,
	"gradient-forest": Forest,
	"dot-pattern":     Dots,
	"stripe-pattern":  Stripes,
}

// Theme is a theme id plus, for Custom, its flat color.
type Theme struct {
	ID    ID
	Color color.RGBA
}

var (
	White = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Black = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Default is the classic white theme.
func Default() Theme {
	return Theme{ID: Classic, Color: White}
}

// Parse resolves a theme name (id or long alias). customHex is only read for
// the custom theme and defaults to white when empty.
func Parse(name, customHex string) (Theme, error) {
	if name == "" {
		return Default(), nil
	}
	id := ID(name)
	if a, ok := aliases[name]; ok {
		id = a
	}
	switch id {
	case Classic, Sunset, Ocean, Forest, Dots, Stripes:
		return Theme{ID: id}, nil
	case Custom:
		c := White
		if customHex != "" {
			var err error
			if c, err = ParseHex(customHex); err != nil {
				return Theme{}, err
			}
		}
		return Theme{ID: Custom, Color: c}, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// IsGradient reports whether t is one of the gradient presets.
func (t Theme) IsGradient() bool {
	return t.ID == Sunset || t.ID == Ocean || t.ID == Forest
}

// IsPattern reports whether t is the dot or stripe preset.
func (t Theme) IsPattern() bool {
	return t.ID == Dots || t.ID == Stripes
}

func (t Theme) String() string {
	if t.ID == Custom {
		return string(Custom) + "(" + Hex(t.Color) + ")"
	}
	return string(t.ID)
}

// ParseHex parses #rrggbb or #rgb into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as lowercase #rrggbb, ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance is the normalised BT.601 luma of c in [0,1].
func Luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// IsLight reports whether c reads as a light background.
func IsLight(c color.RGBA) bool {
	return Luminance(c) > 0.5
}
