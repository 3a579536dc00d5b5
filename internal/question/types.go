package question

import (
	"context"
	"errors"
)

// Difficulty bounds accepted on creation.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// AllCategories is the quiz scope sentinel meaning "every question".
const AllCategories = 0

// DefaultPageSize is the number of questions per listing page.
const DefaultPageSize = 10

// ErrQuestionNotFound is returned by stores when no question matches an id.
var ErrQuestionNotFound = errors.New("question not found")

// Question is the stored trivia question as delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions. Categories are seeded outside the service.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// NewQuestion is a validated creation payload, ready to insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuizRequest is the parsed body of a quiz step.
type QuizRequest struct {
	CategoryID        int
	PreviousQuestions []int
}

// Page is one slice of the id-ordered question listing.
type Page struct {
	Questions  []Question
	Total      int
	Categories []Category
}

// Store is the persistence collaborator. All list operations return
// questions ordered by id ascending.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	ListQuestionIDs(ctx context.Context) ([]int, error)
	ListQuestionIDsByCategory(ctx context.Context, categoryID int) ([]int, error)
	GetQuestion(ctx context.Context, id int) (Question, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
}

// CategoryMap renders categories as the id -> type mapping clients expect.
func CategoryMap(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
