package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/handlers"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/routes"
	"bloodbank-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// 1. Load config (.env + environment)
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env)

	// 2. Connect DB. The service is useless without it, so fail hard.
	db, err := config.ConnectDB(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("connected to database")

	// 3. Upload directory
	disk, err := storage.NewDisk(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not prepare upload directory")
	}

	// 4. Router
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	repo := repository.NewRequestRepository(db)
	routes.SetupRoutes(r, routes.Options{
		Requests:       handlers.NewRequestHandler(repo, log),
		Uploads:        handlers.NewUploadHandler(disk, cfg.Upload.MaxBytes, log),
		Health:         handlers.NewHealthHandler(repo, log),
		UploadDir:      disk.Dir(),
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Logger:         log,
	})

	// 5. Run server until SIGINT/SIGTERM
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	if err := config.CloseDB(db); err != nil {
		log.Error().Err(err).Msg("close database")
	}
	log.Info().Msg("server stopped")
}
