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
	"go.uber.org/zap"

	"github.com/tsaratour/service-booking/internal/application"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/config"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	reservationEvents "github.com/tsaratour/service-booking/internal/events"
	"github.com/tsaratour/service-booking/internal/handler"
	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/database"
	"github.com/tsaratour/service-booking/internal/platform/health"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
	"github.com/tsaratour/service-booking/internal/platform/logger"
	"github.com/tsaratour/service-booking/internal/platform/middleware"
	"github.com/tsaratour/service-booking/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("backoffice_url", cfg.BackofficeConfig.BaseURL),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.SubmissionModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Connect to Redis (edit buffer)
	rdb, err := database.ConnectRedis(ctx, cfg.RedisConfig, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	// Initialize auth: token verification, login sessions, permission table
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.SessionConfig.TTL)
	sessions := auth.NewSessionTracker(cfg.SessionConfig.TTL)
	authorizer, err := auth.NewAuthorizer(ctx)
	if err != nil {
		log.Fatal("failed to load permission policy", zap.Error(err))
	}

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize backend client and repositories
	backend := backoffice.NewClient(cfg.BackofficeConfig, log.Named("backoffice"))
	submissionRepo := repository.NewGormSubmissionRepository(db)
	editBuffer := repository.NewRedisEditBuffer(rdb, cfg.SessionConfig.EditBufferTTL, log)

	// Initialize application services
	wizardService := application.NewWizardService(
		backend,
		backend,
		catalog.NewStandardPricing(),
		editBuffer,
		submissionRepo,
		kafkaProducer,
		log,
	)
	authService := application.NewAuthService(backend, jwtManager, sessions, log)
	clientService := application.NewClientService(backend, log)
	dashboardService := application.NewDashboardService(backend, log)
	submissionService := application.NewSubmissionService(submissionRepo, log)

	// Expired or closed login sessions take their drafts with them
	sessions.OnExpire(func(userID string) {
		wizardService.DiscardOwner(userID)
	})
	go sessions.Run(ctx, cfg.SessionConfig.SweepInterval)

	// Initialize and start reservation event consumer in a goroutine
	groupID := cfg.KafkaConfig.GroupPrefix + "booking-wizard"
	reservationConsumer := reservationEvents.NewReservationEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		wizardService,
		log,
	)
	defer func() { _ = reservationConsumer.Close() }()

	go func() {
		log.Info("starting reservation event consumer")
		if err := reservationConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("reservation event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	draftHandler := handler.NewDraftHandler(wizardService, submissionService)
	adminHandler := handler.NewAdminHandler(dashboardService, submissionService)

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler("service-booking", map[string]health.Checker{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
	healthHandler.RegisterRoutes(router)

	// Register routes
	authMW := middleware.AuthMiddleware(jwtManager, sessions)
	authHandler.RegisterRoutes(&router.RouterGroup, authMW)
	clientHandler.RegisterRoutes(&router.RouterGroup, authMW, authorizer)
	draftHandler.RegisterRoutes(&router.RouterGroup, authMW, authorizer)
	adminHandler.RegisterRoutes(&router.RouterGroup, authMW, authorizer)

	// Create HTTP server. The write timeout leaves room for a submission that
	// makes one backend call per line item.
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Stop the consumer and the session sweeper
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
