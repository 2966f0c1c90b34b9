package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/photobooth/internal/api"
	"github.com/youruser/photobooth/internal/config"
	"github.com/youruser/photobooth/internal/gallery"
	"github.com/youruser/photobooth/internal/logging"
	"github.com/youruser/photobooth/internal/strip"
	"github.com/youruser/photobooth/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(cfg.LogLevel)

	if err := util.EnsureParentDir(cfg.Gallery.DBPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Gallery.DBPath).Msg("cannot create gallery directory")
	}
	store, err := gallery.Open(cfg.Gallery.DBPath, cfg.Gallery.MaxDownloadLogs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open gallery")
	}
	defer store.Close()

	comp := strip.New(cfg.StripOptions())
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, api.NewHandler(comp, store, cfg.Server.PublicURL))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", "http://localhost"+srv.Addr).Str("db", cfg.Gallery.DBPath).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
