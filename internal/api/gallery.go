package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/photobooth/internal/gallery"
	imagepkg "github.com/youruser/photobooth/internal/image"
)

func (h *Handler) listGallery(c *gin.Context) {
	opt := gallery.ListOptions{
		Email:     c.Query("email"),
		FreeWords: c.Query("q"),
	}
	if v := c.Query("theme"); v != "" {
		opt.Themes = strings.Split(v, ",")
	}
	if v := c.Query("filter"); v != "" {
		opt.Filters = strings.Split(v, ",")
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		opt.Limit = v
	}
	entries, err := h.store.List(c.Request.Context(), opt)
	if err != nil {
		errorStatus(c, err)
		return
	}
	out := make([]gallery.Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "sessions": out})
}

func (h *Handler) galleryStats(c *gin.Context) {
	st, err := h.store.Stats(c.Request.Context())
	if err != nil {
		errorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GET /api/gallery/downloads[?format=csv]
func (h *Handler) downloads(c *gin.Context) {
	logs, err := h.store.Downloads(c.Request.Context())
	if err != nil {
		errorStatus(c, err)
		return
	}
	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := gallery.WriteDownloadsCSV(&buf, logs); err != nil {
			errorStatus(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="photobooth_downloads.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}
	if logs == nil {
		logs = []gallery.Download{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "downloads": logs})
}

func (h *Handler) getEntry(c *gin.Context) {
	e, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// logDownload records d; a failed log never fails the download.
func (h *Handler) logDownload(c *gin.Context, e gallery.Entry, kind, filename string) {
	err := h.store.LogDownload(c.Request.Context(), gallery.Download{
		SessionID:    e.SessionID,
		Email:        e.Email,
		Type:         kind,
		Filename:     filename,
		Theme:        e.Theme,
		Filter:       e.Filter,
		PhotoCount:   len(e.Photos),
		TextOverlays: e.TextOverlayCount,
	})
	if err != nil {
		log.Warn().Err(err).Str("id", e.ID).Msg("failed to log download")
	}
}

// GET /api/gallery/:id/strip
func (h *Handler) downloadStrip(c *gin.Context) {
	ctx := c.Request.Context()
	e, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		errorStatus(c, err)
		return
	}
	im, err := h.store.Strip(ctx, e.ID)
	if err != nil {
		errorStatus(c, err)
		return
	}
	var buf bytes.Buffer
	if err := imagepkg.EncodePNG(&buf, im); err != nil {
		errorStatus(c, err)
		return
	}
	filename := gallery.StripFilename(e.Email, e.Theme, e.Filter, h.now())
	h.logDownload(c, e, gallery.DownloadStrip, filename)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GET /api/gallery/:id/photos/:shot
func (h *Handler) downloadPhoto(c *gin.Context) {
	e, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorStatus(c, err)
		return
	}
	shot, err := strconv.Atoi(c.Param("shot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shot must be a number"})
		return
	}
	for _, p := range e.Photos {
		if p.ShotNumber != shot {
			continue
		}
		im, err := imagepkg.DecodeDataURL(p.DataURL)
		if err != nil {
			errorStatus(c, err)
			return
		}
		var buf bytes.Buffer
		if err := imagepkg.EncodeJPEG(&buf, im, imagepkg.DefaultJPEGQuality); err != nil {
			errorStatus(c, err)
			return
		}
		filename := gallery.PhotoFilename(e.Email, shot, h.now())
		h.logDownload(c, e, gallery.DownloadPhoto, filename)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no photo with shot number " + c.Param("shot")})
}

func (h *Handler) thumbnail(c *gin.Context) {
	size := imagepkg.ThumbnailSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= maxImageSize {
		size = v
	}
	im, err := h.store.Thumbnail(c.Request.Context(), c.Param("id"), size)
	if err != nil {
		errorStatus(c, err)
		return
	}
	var buf bytes.Buffer
	if err := imagepkg.EncodeJPEG(&buf, im, imagepkg.DefaultJPEGQuality); err != nil {
		errorStatus(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

// stripURL is where entry id can be downloaded from.
func (h *Handler) stripURL(c *gin.Context, id string) string {
	base := h.publicURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return strings.TrimRight(base, "/") + "/api/gallery/" + id + "/strip"
}

// GET /api/gallery/:id/qr encodes the strip's download link.
func (h *Handler) entryQR(c *gin.Context) {
	e, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorStatus(c, err)
		return
	}
	b, err := imagepkg.GenerateQRPNG(h.stripURL(c, e.ID), imagepkg.DefaultQRSize)
	if err != nil {
		errorStatus(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type shareJSON struct {
	Title    string              `json:"title"`
	Text     string              `json:"text"`
	URL      string              `json:"url"`
	Filename string              `json:"filename"`
	Email    *gallery.EmailShare `json:"email,omitempty"`
}

// GET /api/gallery/:id/share
func (h *Handler) share(c *gin.Context) {
	e, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorStatus(c, err)
		return
	}
	photos := e.TotalShots
	if photos == 0 {
		photos = len(e.Photos)
	}
	now := h.now()
	link := h.stripURL(c, e.ID)
	resp := shareJSON{
		Title:    "Check out my photobooth strip!",
		Text:     gallery.ShareText(photos, e.Theme),
		URL:      link,
		Filename: gallery.StripFilename(e.Email, e.Theme, e.Filter, now),
	}
	kind := gallery.DownloadShare
	opt := h.comp.Options()
	if opt.Capabilities.EmailSharing && e.Email != "" {
		em := gallery.NewEmailShare(e, opt.Branding.DateLayout, link, now)
		resp.Email = &em
		kind = gallery.DownloadEmail
	}
	h.logDownload(c, e, kind, resp.Filename)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteEntry(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearGallery(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		errorStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
