package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		source         = flag.String("source", "opentdb", "Question provider: opentdb or triviaapi")
		amount         = flag.Int("amount", 10, "Number of questions to import, fetched in batches of 50")
		sourceCategory = flag.String("source-category", "", "Provider category (OpenTDB numeric id or Trivia API slug)")
		difficulty     = flag.String("difficulty", "", "easy, medium or hard (empty = any)")
		targetCategory = flag.Int("category", 1, "Local category id the questions are filed under")
		baseURL        = flag.String("base-url", "", "Provider base URL override")
		timeout        = flag.Duration("timeout", 5*time.Minute, "Overall import timeout")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	var provider interface {
		Fetch(ctx context.Context, req external.Request) ([]external.Question, error)
	}
	switch *source {
	case "opentdb":
		provider = external.NewOpenTDBClient(*baseURL, nil)
	case "triviaapi":
		provider = external.NewTriviaAPIClient(*baseURL, os.Getenv("TRIVIA_API_KEY"), nil)
	default:
		logger.Fatal().Str("source", *source).Msg("unknown source. Use: opentdb or triviaapi")
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	svc := question.NewService(store.Store, nil, question.ServiceOptions{Logger: logger})
	importer := question.NewImporter(provider, svc, logger)

	result, err := importer.Import(ctx, question.ImportRequest{
		Amount:         *amount,
		SourceCategory: *sourceCategory,
		Difficulty:     *difficulty,
		TargetCategory: *targetCategory,
	})
	logEvent := logger.Info()
	if err != nil {
		logEvent = logger.Error().Err(err)
	}
	logEvent.
		Str("source", *source).
		Int("fetched", result.Fetched).
		Int("imported", result.Imported).
		Int("rejected", result.Rejected).
		Msg("import finished")
	if err != nil {
		store.Close()
		os.Exit(1)
	}
}
