package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-ticket/cmd"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/event"
	"cinema-ticket/internal/wire"
	"cinema-ticket/pkg/cache"
	"cinema-ticket/pkg/database"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected and migrated")

	// Redis and RabbitMQ are optional; the API runs without them.
	var store cache.Store
	if config.Redis.Addr != "" {
		redisStore, err := cache.NewRedisStore(config.Redis)
		if err != nil {
			logger.Warn("Response cache disabled", zap.Error(err))
		} else {
			defer redisStore.Close()
			store = redisStore
			logger.Info("Response cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	var publisher event.Publisher = event.NopPublisher{}
	if config.RabbitMQ.URL != "" {
		amqpPublisher, err := event.NewAMQPPublisher(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
		if err != nil {
			logger.Warn("Booking events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
			logger.Info("Booking events enabled", zap.String("queue", config.RabbitMQ.Queue))
		}
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, config, store, publisher, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
