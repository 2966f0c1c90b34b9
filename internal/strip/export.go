package strip

import (
	"bytes"
	"image"
	"io"
	"time"

	"github.com/youruser/photobooth/internal/filter"
	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/theme"
)

// RenderedStrip is one finished render. It is not modified after Render
// returns.
type RenderedStrip struct {
	Image        *image.RGBA
	Theme        theme.Theme
	Filter       filter.Kind
	OverlayCount int
	PhotoCount   int
	Failures     []*PhotoError
	RenderedAt   time.Time
}

// Placeholder reports whether the strip shows the no-photos message.
func (s *RenderedStrip) Placeholder() bool {
	return s != nil && s.PhotoCount == 0
}

// Complete reports whether every photo made it into its slot.
func (s *RenderedStrip) Complete() bool {
	return s != nil && len(s.Failures) == 0
}

func (s *RenderedStrip) ready() error {
	if s == nil || s.Image == nil {
		return ErrNoStrip
	}
	return nil
}

// EncodePNG writes the strip as PNG.
func (s *RenderedStrip) EncodePNG(w io.Writer) error {
	if err := s.ready(); err != nil {
		return err
	}
	return imagepkg.EncodePNG(w, s.Image)
}

// EncodeJPEG writes the strip as JPEG.
func (s *RenderedStrip) EncodeJPEG(w io.Writer, quality int) error {
	if err := s.ready(); err != nil {
		return err
	}
	return imagepkg.EncodeJPEG(w, s.Image, quality)
}

// PNG returns the encoded strip.
func (s *RenderedStrip) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns the strip as a data:image/png URL, the form the gallery
// stores.
func (s *RenderedStrip) DataURL() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return imagepkg.PNGDataURL(s.Image)
}
