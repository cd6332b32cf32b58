package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/storage"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/telemetry"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.ForEnv(cfg.IsProduction(), cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting portfolio site",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("backend", cfg.Site.APIBaseURL),
		zap.String("version", version),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	metrics := telemetry.NewMetrics("portfolio")

	client, err := api.NewClient(cfg.API, cfg.Site, api.WithLogger(log), api.WithObserver(metrics))
	if err != nil {
		log.Fatal("Failed to create backend client", zap.Error(err))
	}
	services := api.NewServices(client)

	store, err := session.NewStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()

	mirror, err := storage.New(cfg.Storage.S3, log)
	if err != nil {
		log.Fatal("Failed to create upload mirror", zap.Error(err))
	}

	authService := auth.NewService(store, services.Auth,
		auth.ServiceConfig{ValidateTTL: cfg.Session.ValidateTTL}, log,
		auth.WithLoginObserver(metrics))
	siteService := site.NewService(site.SourcesFrom(services), cfg.Site, site.Options{
		AchievementsPerSlide: cfg.Display.AchievementsPerSlide,
		ProjectsPerSlide:     cfg.Display.ProjectsPerSlide,
	}, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := router.New(router.Deps{
		Config:    cfg,
		Logger:    log,
		Metrics:   metrics,
		Services:  services,
		Auth:      authService,
		Site:      siteService,
		Managers:  admin.NewManagers(services),
		Autoplays: site.NewAutoplays(cfg.Display.AutoplayInterval),
		Mirror:    mirror,
		Version:   version,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        server,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Carousel streams are long lived; end them before draining.
	server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
