package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load configs/.env")
		}
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	cfg, err := config.Load(loadCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trivia, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build trivia service")
	}
	if err := trivia.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("trivia service stopped with error")
	}
}
