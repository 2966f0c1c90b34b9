package strip

import (
	"context"
	"image/color"

	"github.com/youruser/photobooth/internal/filter"
	"github.com/youruser/photobooth/internal/overlay"
	"github.com/youruser/photobooth/internal/session"
	"github.com/youruser/photobooth/internal/theme"
)

// Editor keeps the current request for one session and re-renders the whole
// strip after every change. It is not safe for concurrent use.
type Editor struct {
	comp    *Compositor
	session *session.Session
	sel     *session.Selection
	req     Request
	last    *RenderedStrip
}

// NewEditor starts with every photo selected, the classic theme, no filter
// and no overlays.
func NewEditor(c *Compositor, s *session.Session) *Editor {
	e := &Editor{comp: c, session: s, sel: session.NewSelection(s.Photos)}
	e.req = Request{Photos: e.sel.Photos(), Theme: theme.Default(), Filter: filter.None}
	return e
}

// Session returns the session being edited.
func (e *Editor) Session() *session.Session { return e.session }

// Request returns the current request.
func (e *Editor) Request() Request { return e.req }

// Strip returns the last render, or nil before the first one.
func (e *Editor) Strip() *RenderedStrip { return e.last }

// Render redraws the current request.
func (e *Editor) Render(ctx context.Context) (*RenderedStrip, error) {
	return e.apply(ctx, e.req)
}

func (e *Editor) SetFilter(ctx context.Context, k filter.Kind) (*RenderedStrip, error) {
	return e.apply(ctx, e.req.WithFilter(k))
}

func (e *Editor) SetTheme(ctx context.Context, th theme.Theme) (*RenderedStrip, error) {
	return e.apply(ctx, e.req.WithTheme(th))
}

// SetCustomColor switches to the custom theme filled with c.
func (e *Editor) SetCustomColor(ctx context.Context, c color.RGBA) (*RenderedStrip, error) {
	return e.apply(ctx, e.req.WithTheme(theme.Theme{ID: theme.Custom, Color: c}))
}

func (e *Editor) AddOverlay(ctx context.Context, o overlay.Overlay) (*RenderedStrip, error) {
	return e.apply(ctx, e.req.WithOverlay(o))
}

func (e *Editor) ClearOverlays(ctx context.Context) (*RenderedStrip, error) {
	return e.apply(ctx, e.req.WithoutOverlays())
}

// TogglePhoto flips the selection of the photo with the given shot number.
func (e *Editor) TogglePhoto(ctx context.Context, shot int) (*RenderedStrip, error) {
	e.sel.ToggleShot(shot)
	return e.apply(ctx, e.req.WithPhotos(e.sel.Photos()))
}

// Reset returns to the initial state and re-renders.
func (e *Editor) Reset(ctx context.Context) (*RenderedStrip, error) {
	e.sel.Reset()
	return e.apply(ctx, Request{Photos: e.sel.Photos(), Theme: theme.Default(), Filter: filter.None})
}

func (e *Editor) apply(ctx context.Context, req Request) (*RenderedStrip, error) {
	e.req = req
	out, err := e.comp.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	e.last = out
	return out, nil
}
