package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// Store serves the question statements from a single SQLite file.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "trivia.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ListCategories(ctx context.Context) ([]queries.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category_id, type FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []queries.Category{}
	for rows.Next() {
		var c queries.Category
		if err := rows.Scan(&c.CategoryID, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	return s.queryQuestions(ctx, `
		SELECT question_id, question, answer, category_id, difficulty
		FROM questions
		ORDER BY question_id
	`)
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int32) ([]queries.Question, error) {
	return s.queryQuestions(ctx, `
		SELECT question_id, question, answer, category_id, difficulty
		FROM questions
		WHERE category_id = ?
		ORDER BY question_id
	`, categoryID)
}

func (s *Store) ListQuestionIDs(ctx context.Context) ([]int32, error) {
	return s.queryIDs(ctx, `SELECT question_id FROM questions ORDER BY question_id`)
}

func (s *Store) ListQuestionIDsByCategory(ctx context.Context, categoryID int32) ([]int32, error) {
	return s.queryIDs(ctx, `SELECT question_id FROM questions WHERE category_id = ? ORDER BY question_id`, categoryID)
}

func (s *Store) GetQuestion(ctx context.Context, questionID int32) (queries.Question, error) {
	var q queries.Question
	err := s.db.QueryRowContext(ctx, `
		SELECT question_id, question, answer, category_id, difficulty
		FROM questions
		WHERE question_id = ?
	`, questionID).Scan(&q.QuestionID, &q.Question, &q.Answer, &q.CategoryID, &q.Difficulty)
	return q, err
}

func (s *Store) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (question, answer, category_id, difficulty)
		VALUES (?, ?, ?, ?)
	`, arg.Question, arg.Answer, arg.CategoryID, arg.Difficulty)
	if err != nil {
		return queries.Question{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return queries.Question{}, err
	}
	return queries.Question{
		QuestionID: int32(id),
		Question:   arg.Question,
		Answer:     arg.Answer,
		CategoryID: arg.CategoryID,
		Difficulty: arg.Difficulty,
	}, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, questionID int32) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE question_id = ?`, questionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SearchQuestions uses instr so the match is literal and case-sensitive,
// unlike SQLite's LIKE.
func (s *Store) SearchQuestions(ctx context.Context, term string) ([]queries.Question, error) {
	return s.queryQuestions(ctx, `
		SELECT question_id, question, answer, category_id, difficulty
		FROM questions
		WHERE instr(question, ?) > 0
		ORDER BY question_id
	`, term)
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]queries.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []queries.Question{}
	for rows.Next() {
		var q queries.Question
		if err := rows.Scan(&q.QuestionID, &q.Question, &q.Answer, &q.CategoryID, &q.Difficulty); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]int32, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int32{}
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
