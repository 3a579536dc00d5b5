//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

func TestCreateQuestionValidation(t *testing.T) {
	url := baseURL() + "/questions"

	// Difficulty out of range
	resp, out := doJSON(t, http.MethodPost, url, map[string]interface{}{
		"question": "x", "answer": "y", "category": 1, "difficulty": 6,
	})
	expectError(t, resp, out, http.StatusUnprocessableEntity, "Unprocessable entity")

	// Missing difficulty
	resp, out = doJSON(t, http.MethodPost, url, map[string]interface{}{
		"question": "x", "answer": "y", "category": 1,
	})
	expectError(t, resp, out, http.StatusBadRequest, "Bad request")

	// Empty answer
	resp, out = doJSON(t, http.MethodPost, url, map[string]interface{}{
		"question": "x", "answer": "", "category": 1, "difficulty": 2,
	})
	expectError(t, resp, out, http.StatusUnprocessableEntity, "Unprocessable entity")
}

func TestSearchValidation(t *testing.T) {
	url := baseURL() + "/questions/searches"

	resp, out := doJSON(t, http.MethodPost, url, map[string]string{"term": "x"})
	expectError(t, resp, out, http.StatusBadRequest, "Bad request")

	resp, out = doJSON(t, http.MethodPost, url, map[string]string{"searchTerm": ""})
	expectError(t, resp, out, http.StatusUnprocessableEntity, "Unprocessable entity")
}

func TestQuizErrors(t *testing.T) {
	url := baseURL() + "/quizzes"

	resp, out := doJSON(t, http.MethodPost, url, map[string]interface{}{
		"previous_questions": []int{},
		"quiz_category":      map[string]interface{}{"id": 999999},
	})
	expectError(t, resp, out, http.StatusNotFound, "Not found")

	resp, out = doJSON(t, http.MethodPost, url, map[string]interface{}{
		"quiz_category": map[string]interface{}{"id": 1},
	})
	expectError(t, resp, out, http.StatusBadRequest, "Bad request")
}

func TestUnknownRoute(t *testing.T) {
	resp, out := doJSON(t, http.MethodGet, baseURL()+"/no-such-route", nil)
	expectError(t, resp, out, http.StatusNotFound, "Not found")
}
