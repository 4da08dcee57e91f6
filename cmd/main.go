package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/manager-directory/config"
	"github.com/Dosada05/manager-directory/db"
	_ "github.com/Dosada05/manager-directory/docs"
	"github.com/Dosada05/manager-directory/handlers"
	"github.com/Dosada05/manager-directory/live"
	"github.com/Dosada05/manager-directory/repositories"
	api "github.com/Dosada05/manager-directory/routes"
	"github.com/Dosada05/manager-directory/services"
	"github.com/Dosada05/manager-directory/storage"
	"github.com/Dosada05/manager-directory/store"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const driftCheckInterval = 10 * time.Minute // How often the drift checker runs

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := store.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure sheet schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	// Snapshot uploader is optional; without it the rebuild job skips the
	// pre-clear backup.
	var uploader storage.FileUploader
	if cfg.SnapshotEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("snapshot uploader not configured")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("review feed hub started")

	submissionsTable := store.NewPostgresTable(dbConn, store.SheetSubmissions)
	managersTable := store.NewPostgresTable(dbConn, store.SheetManagers)

	submissionRepo := repositories.NewSheetSubmissionRepository(submissionsTable)
	managerRepo := repositories.NewSheetManagerRepository(managersTable)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, []byte(cfg.JWTSecretKey))
	submissionService := services.NewSubmissionService(submissionRepo, wsHub)
	reviewService := services.NewReviewService(submissionRepo, managerRepo, wsHub, logger)
	directoryService := services.NewDirectoryService(managerRepo, logger)
	maintenanceService := services.NewMaintenanceService(submissionRepo, managerRepo, uploader, logger)
	logger.Info("services initialized")

	// Approvals are two-phase and not transactional; the drift checker
	// surfaces half-committed approvals so an operator can run a rebuild.
	go func() {
		ticker := time.NewTicker(driftCheckInterval)
		defer ticker.Stop()
		logger.Info("drift checker started", slog.Duration("interval", driftCheckInterval))

		check := func() {
			drift, err := maintenanceService.CheckDrift(context.Background())
			if err != nil {
				logger.Error("drift check failed", slog.Any("error", err))
				return
			}
			if drift > 0 {
				logger.Warn("approved submissions without published manager rows, rebuild recommended",
					slog.Int("drift", drift))
			}
		}

		check()
		for range ticker.C {
			check()
		}
	}()

	authHandler := handlers.NewAuthHandler(authService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, reviewService)
	managerHandler := handlers.NewManagerHandler(directoryService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, []byte(cfg.JWTSecretKey))
	healthHandler := handlers.NewHealthHandler(dbConn)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		submissionHandler,
		managerHandler,
		maintenanceHandler,
		webSocketHandler,
		healthHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
