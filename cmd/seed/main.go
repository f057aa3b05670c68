package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/seed"
)

// main loads a fixture into Postgres.
func main() {
	os.Exit(run())
}

func run() int {
	file := flag.String("file", "trivia.yaml", "path to the seed fixture")
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}

	// Validate before touching the database
	fixture, err := seed.Load(*file)
	if err != nil {
		log.WithError(err).WithField("file", *file).Error("Failed to load fixture")
		return 1
	}

	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		return 1
	}
	defer pool.Close()

	result, err := seed.Apply(ctx, postgres.NewCategoryRepository(pool), postgres.NewQuestionRepository(pool), fixture)
	if err != nil {
		log.WithError(err).Error("Failed to seed database")
		return 1
	}

	log.WithField("categories", result.Categories).
		WithField("questions", result.Questions).
		Info("Database seeded")
	return 0
}
