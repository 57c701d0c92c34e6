package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/safetravel/go-travel-safety/internal/alerts"
	"github.com/safetravel/go-travel-safety/internal/api"
	"github.com/safetravel/go-travel-safety/internal/config"
	"github.com/safetravel/go-travel-safety/internal/geocode"
	"github.com/safetravel/go-travel-safety/internal/logging"
	"github.com/safetravel/go-travel-safety/internal/notify"
	"github.com/safetravel/go-travel-safety/internal/places"
	"github.com/safetravel/go-travel-safety/internal/repository"
	"github.com/safetravel/go-travel-safety/internal/sos"
	"github.com/safetravel/go-travel-safety/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.New()

	// Without an API key the place and geocode services stay up but
	// report themselves unconfigured.
	var placesProvider places.Provider
	var geocodeProvider geocode.Provider
	if cfg.Google.APIKey != "" {
		placesProvider = places.NewGoogleProvider(cfg.Google.APIKey, cfg.Google.PlacesURL)
		geocodeProvider = geocode.NewGoogleProvider(cfg.Google.APIKey, cfg.Google.GeocodeURL)
	} else {
		slog.Warn("GOOGLE_API_KEY not set, place search and geocoding disabled")
	}
	placeService := places.NewService(placesProvider, st)
	geocodeService := geocode.NewService(geocodeProvider)

	broadcaster := alerts.NewBroadcaster()

	mgr := alerts.NewManager(cfg, st, broadcaster)
	mgr.Start(ctx)

	sosService := sos.NewService(db, db, notify.SMSSender{}, notify.EmailSender{},
		cfg.Worker.Count, cfg.Worker.BufferSize)
	sosService.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimit))

	handler := api.NewHandler(st, placeService, geocodeService, sosService, broadcaster, cfg.Google.APIKey)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	sosService.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
