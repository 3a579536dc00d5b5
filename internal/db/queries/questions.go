package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listCategories = `
SELECT category_id, type
FROM categories
ORDER BY category_id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Category, error) {
		var c Category
		err := row.Scan(&c.CategoryID, &c.Type)
		return c, err
	})
}

const listQuestions = `
SELECT question_id, question, answer, category_id, difficulty
FROM questions
ORDER BY question_id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

const listQuestionsByCategory = `
SELECT question_id, question, answer, category_id, difficulty
FROM questions
WHERE category_id = $1
ORDER BY question_id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

const listQuestionIDs = `
SELECT question_id
FROM questions
ORDER BY question_id
`

func (q *Queries) ListQuestionIDs(ctx context.Context) ([]int32, error) {
	rows, err := q.db.Query(ctx, listQuestionIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int32])
}

const listQuestionIDsByCategory = `
SELECT question_id
FROM questions
WHERE category_id = $1
ORDER BY question_id
`

func (q *Queries) ListQuestionIDsByCategory(ctx context.Context, categoryID int32) ([]int32, error) {
	rows, err := q.db.Query(ctx, listQuestionIDsByCategory, categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int32])
}

const getQuestion = `
SELECT question_id, question, answer, category_id, difficulty
FROM questions
WHERE question_id = $1
`

func (q *Queries) GetQuestion(ctx context.Context, questionID int32) (Question, error) {
	var i Question
	err := q.db.QueryRow(ctx, getQuestion, questionID).Scan(
		&i.QuestionID,
		&i.Question,
		&i.Answer,
		&i.CategoryID,
		&i.Difficulty,
	)
	return i, err
}

const insertQuestion = `
INSERT INTO questions (question, answer, category_id, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING question_id, question, answer, category_id, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	var i Question
	err := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.CategoryID,
		arg.Difficulty,
	).Scan(
		&i.QuestionID,
		&i.Question,
		&i.Answer,
		&i.CategoryID,
		&i.Difficulty,
	)
	return i, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE question_id = $1
`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, questionID int32) (int64, error) {
	result, err := q.db.Exec(ctx, deleteQuestion, questionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// strpos keeps the match literal: % and _ in the term are not wildcards.
const searchQuestions = `
SELECT question_id, question, answer, category_id, difficulty
FROM questions
WHERE strpos(question, $1) > 0
ORDER BY question_id
`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, term)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

func scanQuestion(row pgx.CollectableRow) (Question, error) {
	var i Question
	err := row.Scan(
		&i.QuestionID,
		&i.Question,
		&i.Answer,
		&i.CategoryID,
		&i.Difficulty,
	)
	return i, err
}
