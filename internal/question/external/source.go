package external

import "errors"

// ErrRateLimited is returned when a provider asks the caller to slow down.
var ErrRateLimited = errors.New("external: rate limited")

// MaxAmount is the largest batch either provider serves per request.
const MaxAmount = 50

// Request filters a fetch. Zero values leave a filter unset. Category is the
// provider's own identifier (a numeric id for OpenTDB, a slug for the Trivia API).
type Request struct {
	Amount     int
	Category   string
	Difficulty string
}

// Question is one fetched question, text already decoded.
type Question struct {
	Category         string
	Difficulty       string
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}
