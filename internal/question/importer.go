package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

// questionSource is implemented by external.OpenTDBClient and external.TriviaAPIClient.
type questionSource interface {
	Fetch(ctx context.Context, req external.Request) ([]external.Question, error)
}

// ImportRequest describes one import pulled from an external provider. Amounts
// above external.MaxAmount are fetched in several batches.
type ImportRequest struct {
	Amount         int    `validate:"min=1,max=500"`
	SourceCategory string `validate:"omitempty,max=64,excludesall=&?#"`
	Difficulty     string `validate:"omitempty,oneof=easy medium hard"`
	TargetCategory int
}

// ImportResult counts what happened to an import.
type ImportResult struct {
	Fetched  int
	Imported int
	Rejected int
}

// Importer loads external questions through the same validation as POST /questions.
type Importer struct {
	source   questionSource
	service  *Service
	logger   zerolog.Logger
	validate *validator.Validate

	// The Open Trivia DB allows one request per five seconds per client; the
	// same pace is used for every provider.
	limiter *rate.Limiter
	backoff func() retry.Backoff
}

func NewImporter(source questionSource, service *Service, logger zerolog.Logger) *Importer {
	return &Importer{
		source:   source,
		service:  service,
		logger:   logger.With().Str("component", "question_importer").Logger(),
		validate: validator.New(),
		limiter:  rate.NewLimiter(rate.Every(5*time.Second), 1),
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.NewExponential(5*time.Second))
		},
	}
}

// Import fetches the requested questions and inserts every one that validates.
// A store failure aborts the import; validation failures only skip the question.
func (im *Importer) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	if err := im.validate.Struct(req); err != nil {
		return ImportResult{}, fmt.Errorf("invalid import request: %w", err)
	}

	var result ImportResult
	for remaining := req.Amount; remaining > 0; {
		batch := min(remaining, external.MaxAmount)
		fetched, err := im.fetch(ctx, external.Request{
			Amount:     batch,
			Category:   req.SourceCategory,
			Difficulty: req.Difficulty,
		})
		if err != nil {
			return result, fmt.Errorf("fetch questions: %w", err)
		}
		result.Fetched += len(fetched)
		remaining -= batch

		for _, q := range fetched {
			nq, err := ValidateNewQuestion(importPayload(q, req.TargetCategory))
			if err != nil {
				result.Rejected++
				im.logger.Warn().Err(err).Str("question", q.Question).Msg("skipping invalid question")
				continue
			}
			created, err := im.service.CreateQuestion(ctx, nq)
			if err != nil {
				return result, err
			}
			result.Imported++
			im.logger.Debug().Int("id", created.ID).Msg("question imported")
		}
	}
	return result, nil
}

func (im *Importer) fetch(ctx context.Context, req external.Request) ([]external.Question, error) {
	var out []external.Question
	err := retry.Do(ctx, im.backoff(), func(ctx context.Context) error {
		if err := im.limiter.Wait(ctx); err != nil {
			return err
		}
		fetched, err := im.source.Fetch(ctx, req)
		if errors.Is(err, external.ErrRateLimited) {
			im.logger.Info().Msg("provider rate limited; backing off")
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		out = fetched
		return nil
	})
	return out, err
}

// DifficultyFromLabel maps provider difficulty labels onto the 1-5 scale.
// Unknown labels map to 0, which validation rejects.
func DifficultyFromLabel(label string) int {
	switch label {
	case "easy":
		return 1
	case "medium":
		return 3
	case "hard":
		return 5
	default:
		return 0
	}
}

func importPayload(q external.Question, category int) Payload {
	return Payload{
		"question":   mustRaw(q.Question),
		"answer":     mustRaw(q.CorrectAnswer),
		"category":   mustRaw(category),
		"difficulty": mustRaw(DifficultyFromLabel(q.Difficulty)),
	}
}

func mustRaw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
