package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/config"
	"github.com/stwalsh4118/room4rent/internal/database"
	"github.com/stwalsh4118/room4rent/internal/handlers"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/middleware"
	"github.com/stwalsh4118/room4rent/internal/repository"
	"github.com/stwalsh4118/room4rent/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Room4Rent API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.DSN(), log); err != nil {
			log.Fatal("Failed to apply migrations", err, nil)
		}
	}

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Initialize repository and service layers
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	readingRepo := repository.NewMeterReadingRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	authService := services.NewAuthService(userRepo, tenantRepo, tokens, log)
	if cfg.Admin.Email != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal("Failed to ensure admin account", err, map[string]interface{}{"email": cfg.Admin.Email})
		}
	}

	api := handlers.API{
		Auth:    handlers.NewAuthHandler(authService),
		Rooms:   handlers.NewRoomHandler(services.NewRoomService(roomRepo, log)),
		Tenants: handlers.NewTenantHandler(services.NewTenantService(tenantRepo, roomRepo, log)),
		Meters:  handlers.NewMeterHandler(services.NewMeterService(readingRepo, roomRepo, log)),
		Bills: handlers.NewBillHandler(
			services.NewBillService(billRepo, tenantRepo, readingRepo, log),
			services.NewPaymentService(paymentRepo, billRepo, log),
		),
		Reports:       handlers.NewReportHandler(services.NewReportService(reportRepo, roomRepo, log)),
		Announcements: handlers.NewAnnouncementHandler(services.NewAnnouncementService(announcementRepo, log)),
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidation()
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Metrics())

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register API v1 routes
	api.RegisterRoutes(router.Group("/api/v1"), tokens)

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
