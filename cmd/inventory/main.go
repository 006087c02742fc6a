package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/pixelbloom/inventory-service/docs"
	"github.com/pixelbloom/inventory-service/internal/inventory"
	httpDelivery "github.com/pixelbloom/inventory-service/internal/inventory/delivery/http"
	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/kafka"
	"github.com/pixelbloom/inventory-service/pkg/auth"
	"github.com/pixelbloom/inventory-service/pkg/config"
	"github.com/pixelbloom/inventory-service/pkg/database"
	"github.com/pixelbloom/inventory-service/pkg/logger"
	"github.com/pixelbloom/inventory-service/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.Service.Name, cfg.Service.IsDevelopment())
	logger.SetLevel(cfg.Service.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("log_level", cfg.Service.LogLevel).
		Msg("Starting inventory service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.Service.Name, cfg.Service.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.InventoryItem{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to the message bus; retries inside before giving up.
	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Failed to connect to message bus")
	}
	defer publisher.Close()

	logger.Logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Message bus publisher connected")

	// Initialize handler with Wire DI
	handler, err := inventory.InitializeItemHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	validator := auth.NewValidator(cfg.Auth.JWTSecret)
	server := newHTTPServer(handler, sqlDB, validator, cfg.Service.HTTPPort)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Service.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func newHTTPServer(handler *httpDelivery.ItemHandler, db *sql.DB, validator *auth.Validator, port string) *http.Server {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig(validator)
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	return &http.Server{
		Addr:    ":" + port,
		Handler: httpDelivery.SetupCORS(middlewareConfig)(router),
	}
}
