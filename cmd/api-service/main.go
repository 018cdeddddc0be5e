package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/job-search-be/internal/adzuna"
	"github.com/cuongbtq/job-search-be/internal/api/handler"
	"github.com/cuongbtq/job-search-be/internal/api/router"
	"github.com/cuongbtq/job-search-be/internal/config"
	"github.com/cuongbtq/job-search-be/internal/events"
	"github.com/cuongbtq/job-search-be/internal/search"
	"github.com/cuongbtq/job-search-be/shared/logger"
	"github.com/cuongbtq/job-search-be/shared/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w (set it in the environment or .env file)", err)
	}

	appLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	searchService := initSearchService(&cfg.Adzuna, appLogger.Logger)

	var rabbitClient *rabbitmq.Client
	var publisher handler.EventPublisher
	if cfg.Events.Enabled {
		rabbitClient, err = initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		defer rabbitClient.Close()

		publisher = events.NewPublisher(rabbitClient, appLogger.Logger)
		appLogger.Info("Search events enabled", slog.String("exchange", cfg.RabbitMQ.Exchange))
	}

	r := initRouter(cfg, &handler.Dependencies{
		Logger:                appLogger.Logger,
		Searcher:              searchService,
		Publisher:             publisher,
		SurfaceUpstreamErrors: cfg.Search.SurfaceUpstreamErrors,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cfg.Logging.Output,
		EnableSource: cfg.Logging.EnableCaller,
		TimeFormat:   time.RFC3339,
		Service:      cfg.App.Name,
	})
}

// initSearchService wires the Adzuna client into the search service
func initSearchService(cfg *config.AdzunaConfig, logger *slog.Logger) *search.Service {
	client := adzuna.NewClient(&adzuna.Config{
		BaseURL:      cfg.BaseURL,
		AppID:        cfg.AppID,
		AppKey:       cfg.AppKey,
		Timeout:      cfg.Timeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, logger)

	translator := search.NewTranslator(search.QueryPolicy{
		Country:        cfg.Country,
		Page:           cfg.Page,
		ResultsPerPage: cfg.ResultsPerPage,
		MaxDaysOld:     cfg.MaxDaysOld,
		SortBy:         cfg.SortBy,
	})

	policy := translator.Policy()
	logger.Info("Search query policy",
		slog.String("country", policy.Country),
		slog.Int("page", policy.Page),
		slog.Int("results_per_page", policy.ResultsPerPage),
		slog.Int("max_days_old", policy.MaxDaysOld),
		slog.String("sort_by", policy.SortBy),
	)

	return search.NewService(client, translator, logger)
}

// initRabbitMQ initializes the RabbitMQ client used for search events
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	return rabbitmq.NewClient(&rabbitmq.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		VHost:           cfg.VHost,
		ExchangeName:    cfg.Exchange,
		ExchangeType:    cfg.ExchangeType,
		ExchangeDurable: cfg.Durable,
		QueueName:       cfg.Queue,
		QueueDurable:    cfg.Durable,
		RoutingKey:      cfg.RoutingKey,
		RetryAttempts:   cfg.RetryAttempts,
		RetryInterval:   cfg.RetryInterval,
		Heartbeat:       cfg.Heartbeat,
	}, logger)
}

// initRouter sets the Gin mode and builds the router
func initRouter(cfg *config.Config, deps *handler.Dependencies) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps)
}
