package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, version or reset")
		dir     = flag.String("dir", "db/migrations", "Directory containing migration files")
		envFile = flag.String("env", "configs/.env", "Optional .env file to load")
		timeout = flag.Duration("timeout", time.Minute, "Overall migration timeout")
	)
	flag.Parse()

	loadErr := godotenv.Load(*envFile)
	logger := logging.New("trivia-migrator", os.Getenv("APP_ENV"))
	if loadErr != nil {
		logger.Debug().Err(loadErr).Str("file", *envFile).Msg("no .env file loaded")
	}

	pg, err := config.LoadPostgres()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load postgres configuration")
	}
	if info, err := os.Stat(*dir); err != nil || !info.IsDir() {
		logger.Fatal().Str("dir", *dir).Msg("migration directory does not exist")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sql.Open("pgx", pg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Str("host", pg.Host).Msg("failed to ping database")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dir))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build migration provider")
	}
	logger = logger.With().Str("database", pg.Database).Str("command", *command).Logger()

	if err := run(ctx, provider, *command, logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
}

func run(ctx context.Context, p *goose.Provider, command string, logger zerolog.Logger) error {
	switch command {
	case "up":
		results, err := p.Up(ctx)
		logResults(logger, results)
		if err != nil {
			return err
		}
		logger.Info().Int("applied", len(results)).Msg("migrations applied")
	case "down":
		result, err := p.Down(ctx)
		if result != nil {
			logResults(logger, []*goose.MigrationResult{result})
		}
		return err
	case "reset":
		// Drops the trivia tables together with every stored question.
		results, err := p.DownTo(ctx, 0)
		logResults(logger, results)
		return err
	case "version":
		version, err := p.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		logger.Info().Int64("version", version).Msg("current schema version")
	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			event := logger.Info().
				Int64("version", s.Source.Version).
				Str("file", s.Source.Path).
				Str("state", string(s.State))
			if !s.AppliedAt.IsZero() {
				event = event.Time("applied_at", s.AppliedAt)
			}
			event.Msg("migration")
		}
	default:
		logger.Fatal().Msg("unknown command. Use: up, down, status, version or reset")
	}
	return nil
}

func logResults(logger zerolog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		event := logger.Info()
		if r.Error != nil {
			event = logger.Error().Err(r.Error)
		}
		event.Int64("version", r.Source.Version).
			Str("direction", r.Direction).
			Dur("duration", r.Duration).
			Msg(r.Source.Path)
	}
}
