package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/events"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to build logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, logrus.NewEntry(log))

	// Initialize database connection
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Initialize websocket hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Events go through Redis when configured so every instance's clients see them
	var publisher domain.EventPublisher = hub
	if cfg.Redis.Enabled() {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		publisher = events.NewRedisPublisher(redisClient, events.DefaultChannel)
		// Subscribe before serving so a broken relay fails startup
		relay := events.NewRelay(redisClient, events.DefaultChannel, hub)
		if err := relay.Subscribe(ctx); err != nil {
			log.Fatalf("Failed to subscribe to question events: %v", err)
		}
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.WithError(err).Error("Event relay stopped")
			}
		}()
	}

	// Initialize services
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, publisher, cfg.PageSize)

	e := handler.NewServer(handler.ServerConfig{
		Service: triviaService,
		Hub:     hub,
		Logger:  log,
	})

	// Start server
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("Starting server")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server failed")
			stop()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
		os.Exit(1)
	}
}
