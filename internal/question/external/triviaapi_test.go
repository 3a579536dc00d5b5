package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriviaAPIClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/questions", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "science", r.URL.Query().Get("categories"))
		assert.Equal(t, "hard", r.URL.Query().Get("difficulties"))
		assert.Equal(t, "key-123", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`[{
			"id":"622a1c357cc59eab6f94fd4b","category":"science",
			"question":{"text":"What is the hardest natural substance?"},
			"difficulty":"hard","type":"text_choice",
			"correctAnswer":"Diamond","incorrectAnswers":["Quartz","Granite","Iron"]}]`))
	}))
	defer srv.Close()

	client := NewTriviaAPIClient(srv.URL+"/", "key-123", srv.Client())
	questions, err := client.Fetch(context.Background(), Request{Amount: 3, Category: "science", Difficulty: "hard"})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, Question{
		Category:         "science",
		Difficulty:       "hard",
		Question:         "What is the hardest natural substance?",
		CorrectAnswer:    "Diamond",
		IncorrectAnswers: []string{"Quartz", "Granite", "Iron"},
	}, questions[0])
}

func TestTriviaAPIClient_Errors(t *testing.T) {
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer limited.Close()

	_, err := NewTriviaAPIClient(limited.URL, "", nil).Fetch(context.Background(), Request{Amount: 1})
	assert.ErrorIs(t, err, ErrRateLimited)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-API-Key"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, err = NewTriviaAPIClient(broken.URL, "", nil).Fetch(context.Background(), Request{Amount: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}
