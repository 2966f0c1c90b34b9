// Package strip composites captured photos into a themed, filtered,
// annotated photo strip.
package strip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/youruser/photobooth/internal/filter"
	"github.com/youruser/photobooth/internal/overlay"
	"github.com/youruser/photobooth/internal/session"
	"github.com/youruser/photobooth/internal/theme"
)

// ErrInvalidRequest marks requests rejected before rendering.
var ErrInvalidRequest = errors.New("invalid render request")

const (
	minOverlaySize = 8
	maxOverlaySize = 200
)

// Request is everything one render needs. Values are never mutated by the
// compositor; the With* methods return modified copies.
type Request struct {
	Photos   []session.CapturedPhoto
	Theme    theme.Theme
	Filter   filter.Kind
	Overlays []overlay.Overlay
}

// OverlaySpec is the wire form of an overlay.
type OverlaySpec struct {
	Text        string `json:"text"`
	Color       string `json:"color"`
	Size        int    `json:"size"`
	Position    string `json:"position"`
	Orientation string `json:"orientation"`
}

// RequestSpec is the wire form of a Request, as the editor page posts it.
type RequestSpec struct {
	Photos      []session.CapturedPhoto `json:"photos"`
	Theme       string                  `json:"theme"`
	CustomColor string                  `json:"customColor"`
	Filter      string                  `json:"filter"`
	Overlays    []OverlaySpec           `json:"textOverlays"`
}

// NewRequest validates rs and resolves it into a Request.
func NewRequest(rs RequestSpec) (Request, error) {
	th, err := theme.Parse(rs.Theme, rs.CustomColor)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	k, err := filter.Parse(rs.Filter)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req := Request{
		Photos: append([]session.CapturedPhoto(nil), rs.Photos...),
		Theme:  th,
		Filter: k,
	}
	for i, raw := range rs.Overlays {
		o, err := ParseOverlay(raw)
		if err != nil {
			return Request{}, fmt.Errorf("%w: overlay %d: %v", ErrInvalidRequest, i, err)
		}
		req.Overlays = append(req.Overlays, o)
	}
	return req, nil
}

// ParseOverlay resolves one OverlaySpec. Color defaults to black, size to
// 24px, position to top and orientation to horizontal.
func ParseOverlay(s OverlaySpec) (overlay.Overlay, error) {
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return overlay.Overlay{}, errors.New("empty text")
	}
	o := overlay.Overlay{Text: text, Color: theme.Black, Size: s.Size}
	if s.Color != "" {
		c, err := theme.ParseHex(s.Color)
		if err != nil {
			return overlay.Overlay{}, err
		}
		o.Color = c
	}
	if o.Size == 0 {
		o.Size = overlay.DefaultSize
	}
	if o.Size < minOverlaySize || o.Size > maxOverlaySize {
		return overlay.Overlay{}, fmt.Errorf("size %d out of range [%d,%d]", o.Size, minOverlaySize, maxOverlaySize)
	}
	var err error
	if o.Position, err = overlay.ParsePosition(s.Position); err != nil {
		return overlay.Overlay{}, err
	}
	if o.Orientation, err = overlay.ParseOrientation(s.Orientation); err != nil {
		return overlay.Overlay{}, err
	}
	return o, nil
}

// Validate checks a Request built in code rather than through NewRequest.
func (r Request) Validate() error {
	if _, err := filter.Parse(string(r.Filter)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if r.Theme.ID != "" {
		if _, err := theme.Parse(string(r.Theme.ID), ""); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	for i, o := range r.Overlays {
		if err := validOverlay(o); err != nil {
			return fmt.Errorf("%w: overlay %d: %v", ErrInvalidRequest, i, err)
		}
	}
	return nil
}

func validOverlay(o overlay.Overlay) error {
	if strings.TrimSpace(o.Text) == "" {
		return errors.New("empty text")
	}
	if o.Size < minOverlaySize || o.Size > maxOverlaySize {
		return fmt.Errorf("size %d out of range [%d,%d]", o.Size, minOverlaySize, maxOverlaySize)
	}
	if _, err := overlay.ParsePosition(string(o.Position)); err != nil {
		return err
	}
	_, err := overlay.ParseOrientation(string(o.Orientation))
	return err
}

// WithPhotos returns a copy of r rendering photos.
func (r Request) WithPhotos(photos []session.CapturedPhoto) Request {
	r.Photos = append([]session.CapturedPhoto(nil), photos...)
	return r
}

// WithTheme returns a copy of r using th.
func (r Request) WithTheme(th theme.Theme) Request {
	r.Theme = th
	return r
}

// WithFilter returns a copy of r using k.
func (r Request) WithFilter(k filter.Kind) Request {
	r.Filter = k
	return r
}

// WithOverlay returns a copy of r with o appended.
func (r Request) WithOverlay(o overlay.Overlay) Request {
	r.Overlays = append(append([]overlay.Overlay(nil), r.Overlays...), o)
	return r
}

// WithoutOverlays returns a copy of r with no overlays.
func (r Request) WithoutOverlays() Request {
	r.Overlays = nil
	return r
}
