package sqlite

import (
	"context"
	"fmt"
)

// DefaultCategories seeds an empty database. Ids start at 1 because 0 is the
// "all categories" quiz scope.
var DefaultCategories = []string{
	"Science",
	"Art",
	"Geography",
	"History",
	"Entertainment",
	"Sports",
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			category_id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			question_id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category_id INTEGER NOT NULL,
			difficulty INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return s.seedCategories(ctx)
}

func (s *Store) seedCategories(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, name := range DefaultCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (type) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return tx.Commit()
}
