package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func insert(t *testing.T, s *Store, text string, category int32) queries.Question {
	t.Helper()
	q, err := s.InsertQuestion(context.Background(), queries.InsertQuestionParams{
		Question: text, Answer: "answer", CategoryID: category, Difficulty: 2,
	})
	require.NoError(t, err)
	return q
}

func TestOpen_SeedsCategories(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(DefaultCategories))
	assert.Equal(t, queries.Category{CategoryID: 1, Type: "Science"}, categories[0])
	assert.NoError(t, store.Ping(ctx))
}

func TestOpen_SeedsOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trivia.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	categories, err := second.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(DefaultCategories))
}

func TestStore_QuestionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := insert(t, store, "What is the boiling point of water?", 1)
	b := insert(t, store, "Who painted Guernica?", 2)
	c := insert(t, store, "What is the speed of light?", 1)
	assert.Less(t, a.QuestionID, b.QuestionID)
	assert.Less(t, b.QuestionID, c.QuestionID)

	all, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ids, err := store.ListQuestionIDsByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{a.QuestionID, c.QuestionID}, ids)

	byCategory, err := store.ListQuestionsByCategory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, b, byCategory[0])

	got, err := store.GetQuestion(ctx, b.QuestionID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	n, err := store.DeleteQuestion(ctx, b.QuestionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.DeleteQuestion(ctx, b.QuestionID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = store.GetQuestion(ctx, b.QuestionID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	allIDs, err := store.ListQuestionIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int32{a.QuestionID, c.QuestionID}, allIDs)
}

func TestStore_SearchIsLiteralAndCaseSensitive(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insert(t, store, "What is 100% cotton?", 1)
	insert(t, store, "Which title won?", 2)
	insert(t, store, "A Title case question", 2)

	found, err := store.SearchQuestions(ctx, "title")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Which title won?", found[0].Question)

	found, err = store.SearchQuestions(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "What is 100% cotton?", found[0].Question)

	found, err = store.SearchQuestions(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.NotNil(t, found)
}
