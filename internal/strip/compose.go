package strip

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"github.com/youruser/photobooth/internal/filter"
	"github.com/youruser/photobooth/internal/layout"
	"github.com/youruser/photobooth/internal/overlay"
	"github.com/youruser/photobooth/internal/theme"
)

// PlaceholderText is drawn in place of photos when none are selected.
const PlaceholderText = "Select photos to create strip"

var mutedText = theme.MustHex("#6c757d")

const (
	placeholderSize = 24
	brandingSize    = 10
	brandingMargin  = 5
)

// Capabilities switches optional editor features.
type Capabilities struct {
	Themes       bool
	EmailSharing bool
}

// Branding is the small stamp at the bottom of every strip.
type Branding struct {
	Text       string
	DateLayout string
}

// Options configures a Compositor. Zero fields take defaults.
type Options struct {
	Layout        layout.Spec
	Filters       filter.Options
	DecodeWorkers int
	Capabilities  Capabilities
	Branding      Branding
	Decoder       Decoder
	Now           func() time.Time
}

// DefaultOptions returns the 600x1800 strip with every feature enabled.
func DefaultOptions() Options {
	return Options{
		Layout:        layout.DefaultSpec(),
		Filters:       filter.DefaultOptions(),
		DecodeWorkers: 4,
		Capabilities:  Capabilities{Themes: true, EmailSharing: true},
		Branding:      Branding{Text: "Photobooth", DateLayout: "1/2/2006"},
		Decoder:       DataURLDecoder{},
		Now:           time.Now,
	}
}

// Compositor renders requests into strips. It holds no per-render state and
// may be shared between goroutines; each render draws on its own surface.
type Compositor struct {
	opt Options
}

func New(opt Options) *Compositor {
	def := DefaultOptions()
	if opt.Layout == (layout.Spec{}) {
		opt.Layout = def.Layout
	}
	if opt.Filters == (filter.Options{}) {
		opt.Filters = def.Filters
	}
	if opt.DecodeWorkers <= 0 {
		opt.DecodeWorkers = def.DecodeWorkers
	}
	if opt.Branding.Text == "" {
		opt.Branding.Text = def.Branding.Text
	}
	if opt.Branding.DateLayout == "" {
		opt.Branding.DateLayout = def.Branding.DateLayout
	}
	if opt.Decoder == nil {
		opt.Decoder = def.Decoder
	}
	if opt.Now == nil {
		opt.Now = def.Now
	}
	return &Compositor{opt: opt}
}

// Options returns the effective options.
func (c *Compositor) Options() Options {
	return c.opt
}

// Render draws req from scratch. Photos that fail to decode leave their slot
// blank and are listed in RenderedStrip.Failures. Errors are ErrInvalidRequest
// when the photos cannot fit the canvas, or ctx's if it ends before drawing
// starts.
func (c *Compositor) Render(ctx context.Context, req Request) (*RenderedStrip, error) {
	start := time.Now()
	spec := c.opt.Layout
	if n, limit := len(req.Photos), spec.MaxPhotos(); n > limit {
		return nil, fmt.Errorf("%w: %d photos do not fit a %dx%d strip (max %d)", ErrInvalidRequest, n, spec.Width, spec.Height, limit)
	}
	th := req.Theme
	if !c.opt.Capabilities.Themes {
		th = theme.Default()
	}

	im := image.NewRGBA(spec.Size())
	dc := gg.NewContextForRGBA(im)
	dc.SetColor(color.Transparent)
	dc.Clear()

	theme.Paint(dc, th, spec.Width, spec.Height)
	l := layout.Compute(spec, len(req.Photos))
	layout.DrawFrame(dc, l, layout.StrokeFor(th))

	out := &RenderedStrip{
		Image:        im,
		Theme:        th,
		Filter:       req.Filter,
		OverlayCount: len(req.Overlays),
		PhotoCount:   len(req.Photos),
	}
	faces := overlay.NewFaces()

	if len(req.Photos) == 0 {
		dc.SetFontFace(faces.Regular(placeholderSize))
		dc.SetColor(mutedText)
		dc.DrawStringAnchored(PlaceholderText, float64(spec.Width)/2, float64(spec.Height)/2, 0.5, 0)
		out.RenderedAt = c.opt.Now()
		return out, nil
	}

	imgs, errs, err := decodeAll(ctx, c.opt.Decoder, req.Photos, c.opt.DecodeWorkers)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, slot := range l.Slots {
		if errs[i] != nil {
			pe := &PhotoError{Index: i, ShotNumber: req.Photos[i].ShotNumber, Err: errs[i]}
			out.Failures = append(out.Failures, pe)
			log.Warn().Err(errs[i]).Int("slot", i).Int("shot", pe.ShotNumber).Msg("photo decode failed, leaving slot blank")
			continue
		}
		// stretched to fill the slot exactly, aspect ratio is not kept
		scaled := imaging.Resize(imgs[i], slot.Dx(), slot.Dy(), imaging.Linear)
		draw.Draw(im, slot, scaled, image.Point{}, draw.Over)
		filter.ApplyRegion(im, slot, req.Filter, c.opt.Filters)
	}

	overlay.Draw(dc, overlay.Place(req.Overlays, th, spec), faces)
	c.drawBranding(dc, faces)

	out.RenderedAt = c.opt.Now()
	log.Debug().
		Str("theme", th.String()).
		Str("filter", string(req.Filter)).
		Int("photos", len(req.Photos)).
		Int("overlays", len(req.Overlays)).
		Int("failed", len(out.Failures)).
		Dur("took", time.Since(start)).
		Msg("strip rendered")
	return out, nil
}

func (c *Compositor) drawBranding(dc *gg.Context, faces *overlay.Faces) {
	spec := c.opt.Layout
	text := c.opt.Branding.Text + " - " + c.opt.Now().Format(c.opt.Branding.DateLayout)
	dc.SetFontFace(faces.Regular(brandingSize))
	dc.SetColor(mutedText)
	dc.DrawStringAnchored(text, float64(spec.Width)/2, float64(spec.Height-brandingMargin), 0.5, 0)
}
