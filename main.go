package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avenk/careerpath-be/internal/api"
	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/config"
	"github.com/avenk/careerpath-be/internal/database"
	"github.com/avenk/careerpath-be/internal/gateway"
	"github.com/avenk/careerpath-be/internal/logger"
	"github.com/avenk/careerpath-be/internal/monitoring"
	"github.com/avenk/careerpath-be/internal/realtime"
	"github.com/avenk/careerpath-be/internal/services"
	"github.com/avenk/careerpath-be/internal/storage"
	"github.com/avenk/careerpath-be/internal/storage/memstore"
	"github.com/avenk/careerpath-be/internal/storage/sqlitestore"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up storage: sqlite by default, in-memory when no database path is
	// configured. The in-memory store is a development convenience only.
	var store storage.Store
	if cfg.DatabasePath == "" {
		log.Warn().Msg("No database path configured, using in-memory store (data is not persisted)")
		store = memstore.New()
	} else {
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
		store = sqlitestore.New(db)
	}

	// Set up the realtime hub
	hub := realtime.NewHub()
	go hub.Run()

	// Set up the recommendation gateway client
	gw := gateway.NewGeminiClient(gateway.GeminiConfig{
		BaseURL:    cfg.GatewayBaseURL,
		APIKey:     cfg.GatewayAPIKey,
		Model:      cfg.GatewayModel,
		Timeout:    cfg.GatewayTimeout,
		MaxRetries: cfg.GatewayMaxRetries,
	})

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(store, hub)
	userService := services.NewUserService(store, eventService)
	assessmentService := services.NewAssessmentService(store, gw, eventService)
	formService := services.NewFormService(store, eventService)
	reportService := services.NewReportService(store, eventService)

	// Set up and run the background stats updater
	statUpdater, err := monitoring.NewStatUpdater(eventService, cfg.StatsCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up stat updater")
	}
	go statUpdater.Run()

	// Set up router
	router := api.NewRouter(tokens, hub, userService, assessmentService, formService, reportService, eventService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
