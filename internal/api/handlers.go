package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/photobooth/internal/gallery"
	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/session"
	"github.com/youruser/photobooth/internal/strip"
)

const maxImageSize = 1024

// Handler serves the render and gallery endpoints.
type Handler struct {
	comp  *strip.Compositor
	store *gallery.Store
	// publicURL prefixes share links; empty means derive from the request.
	publicURL string
	now       func() time.Time
}

func NewHandler(comp *strip.Compositor, store *gallery.Store, publicURL string) *Handler {
	return &Handler{comp: comp, store: store, publicURL: publicURL, now: time.Now}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorStatus maps package errors to HTTP statuses and logs server faults.
func errorStatus(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, strip.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, gallery.ErrNotFound), errors.Is(err, gallery.ErrNoStrip), errors.Is(err, strip.ErrNoStrip):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type failureJSON struct {
	Index      int    `json:"index"`
	ShotNumber int    `json:"shotNumber"`
	Error      string `json:"error"`
}

type stripJSON struct {
	Image        string        `json:"image"`
	Filename     string        `json:"filename"`
	Theme        string        `json:"theme"`
	Filter       string        `json:"filter"`
	PhotoCount   int           `json:"photoCount"`
	OverlayCount int           `json:"overlayCount"`
	Failures     []failureJSON `json:"failures"`
	RenderedAt   time.Time     `json:"renderedAt"`
}

// renderSpec renders the wire request, mapping bad input to ErrInvalidRequest.
func (h *Handler) renderSpec(c *gin.Context, spec strip.RequestSpec) (*strip.RenderedStrip, error) {
	req, err := strip.NewRequest(spec)
	if err != nil {
		return nil, err
	}
	return h.comp.Render(c.Request.Context(), req)
}

// POST /api/strips[?format=json][&email=...]
func (h *Handler) renderStrip(c *gin.Context) {
	var spec strip.RequestSpec
	if err := c.BindJSON(&spec); err != nil {
		return
	}
	out, err := h.renderSpec(c, spec)
	if err != nil {
		errorStatus(c, err)
		return
	}
	filename := gallery.StripFilename(c.Query("email"), string(out.Theme.ID), string(out.Filter), out.RenderedAt)

	if c.Query("format") == "json" {
		u, err := out.DataURL()
		if err != nil {
			errorStatus(c, err)
			return
		}
		resp := stripJSON{
			Image:        u,
			Filename:     filename,
			Theme:        out.Theme.String(),
			Filter:       string(out.Filter),
			PhotoCount:   out.PhotoCount,
			OverlayCount: out.OverlayCount,
			Failures:     []failureJSON{},
			RenderedAt:   out.RenderedAt,
		}
		for _, f := range out.Failures {
			resp.Failures = append(resp.Failures, failureJSON{Index: f.Index, ShotNumber: f.ShotNumber, Error: f.Err.Error()})
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	var buf bytes.Buffer
	if err := out.EncodePNG(&buf); err != nil {
		errorStatus(c, err)
		return
	}
	c.Header("X-Strip-Theme", out.Theme.String())
	c.Header("X-Strip-Filter", string(out.Filter))
	c.Header("X-Strip-Photos", strconv.Itoa(out.PhotoCount))
	c.Header("X-Strip-Failed", strconv.Itoa(len(out.Failures)))
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// qrHandler returns a PNG QR code for the "text" query param.
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= maxImageSize {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		errorStatus(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// sessionJSON is the body of POST /api/gallery: the capture session plus the
// editor state to render it with.
type sessionJSON struct {
	strip.RequestSpec
	SessionID  string    `json:"sessionId"`
	Email      string    `json:"email"`
	Layout     string    `json:"layout"`
	TotalShots int       `json:"totalShots"`
	Timestamp  time.Time `json:"timestamp"`
}

// POST /api/gallery renders the session and saves it with its strip.
func (h *Handler) saveSession(c *gin.Context) {
	var body sessionJSON
	if err := c.BindJSON(&body); err != nil {
		return
	}
	if body.Layout != "" && !session.ValidLayout(body.Layout) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown layout " + strconv.Quote(body.Layout)})
		return
	}
	out, err := h.renderSpec(c, body.RequestSpec)
	if err != nil {
		errorStatus(c, err)
		return
	}
	u, err := out.DataURL()
	if err != nil {
		errorStatus(c, err)
		return
	}
	e, err := h.store.Save(c.Request.Context(), gallery.Entry{
		SessionID:        body.SessionID,
		Email:            body.Email,
		Layout:           body.Layout,
		TotalShots:       body.TotalShots,
		Photos:           body.Photos,
		PhotoStrip:       u,
		Filter:           string(out.Filter),
		Theme:            string(out.Theme.ID),
		TextOverlayCount: out.OverlayCount,
		SessionDate:      body.Timestamp,
	})
	if err != nil {
		errorStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, e.Summary())
}
