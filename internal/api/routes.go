package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/strips", h.renderStrip)
		api.GET("/qr", qrHandler)

		g := api.Group("/gallery")
		g.GET("", h.listGallery)
		g.POST("", h.saveSession)
		g.DELETE("", h.clearGallery)
		g.GET("/stats", h.galleryStats)
		g.GET("/downloads", h.downloads)
		g.GET("/:id", h.getEntry)
		g.DELETE("/:id", h.deleteEntry)
		g.GET("/:id/strip", h.downloadStrip)
		g.GET("/:id/photos/:shot", h.downloadPhoto)
		g.GET("/:id/thumbnail", h.thumbnail)
		g.GET("/:id/qr", h.entryQR)
		g.GET("/:id/share", h.share)
	}
}
