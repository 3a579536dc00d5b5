package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// questionStore is the statement set shared by the Postgres queries and the
// SQLite store.
type questionStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int32) ([]queries.Question, error)
	ListQuestionIDs(ctx context.Context) ([]int32, error)
	ListQuestionIDsByCategory(ctx context.Context, categoryID int32) ([]int32, error)
	GetQuestion(ctx context.Context, questionID int32) (queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, questionID int32) (int64, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
}

// QuestionRepository maps stored rows onto the question domain.
type QuestionRepository struct {
	store questionStore
}

var _ question.Store = (*QuestionRepository)(nil)

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

func (r *QuestionRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]question.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, question.Category{ID: int(row.CategoryID), Type: row.Type})
	}
	return out, nil
}

func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toDomainList(rows), nil
}

func (r *QuestionRepository) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]question.Question, error) {
	id, ok := toInt32(categoryID)
	if !ok {
		return []question.Question{}, nil
	}
	rows, err := r.store.ListQuestionsByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions in category %d: %w", categoryID, err)
	}
	return toDomainList(rows), nil
}

func (r *QuestionRepository) ListQuestionIDs(ctx context.Context) ([]int, error) {
	ids, err := r.store.ListQuestionIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list question ids: %w", err)
	}
	return toInts(ids), nil
}

func (r *QuestionRepository) ListQuestionIDsByCategory(ctx context.Context, categoryID int) ([]int, error) {
	id, ok := toInt32(categoryID)
	if !ok {
		return []int{}, nil
	}
	ids, err := r.store.ListQuestionIDsByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list question ids in category %d: %w", categoryID, err)
	}
	return toInts(ids), nil
}

// GetQuestion returns question.ErrQuestionNotFound when no row matches.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	qid, ok := toInt32(id)
	if !ok {
		return question.Question{}, question.ErrQuestionNotFound
	}
	row, err := r.store.GetQuestion(ctx, qid)
	if err != nil {
		if isNoRows(err) {
			return question.Question{}, question.ErrQuestionNotFound
		}
		return question.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return toDomain(row), nil
}

func (r *QuestionRepository) InsertQuestion(ctx context.Context, q question.NewQuestion) (question.Question, error) {
	category, ok := toInt32(q.Category)
	if !ok {
		return question.Question{}, fmt.Errorf("insert question: category %d out of range", q.Category)
	}
	row, err := r.store.InsertQuestion(ctx, queries.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		CategoryID: category,
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return toDomain(row), nil
}

// DeleteQuestion returns question.ErrQuestionNotFound when nothing was removed.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	qid, ok := toInt32(id)
	if !ok {
		return question.ErrQuestionNotFound
	}
	n, err := r.store.DeleteQuestion(ctx, qid)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return question.ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepository) SearchQuestions(ctx context.Context, term string) ([]question.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainList(rows), nil
}

func toDomain(row queries.Question) question.Question {
	return question.Question{
		ID:         int(row.QuestionID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.CategoryID),
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []queries.Question) []question.Question {
	out := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}

func toInts(ids []int32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// toInt32 reports false for ids no int4 column can hold; such ids match nothing.
func toInt32(v int) (int32, bool) {
	if v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int32(v), true
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
