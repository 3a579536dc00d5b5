//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

type questionJSON struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func doJSON(t *testing.T, method, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp, out
}

// createQuestion inserts a uniquely worded question and removes it when the test ends.
func createQuestion(t *testing.T, category, difficulty int) questionJSON {
	t.Helper()

	q := questionJSON{
		Question:   fmt.Sprintf("Integration question %d?", time.Now().UnixNano()),
		Answer:     "integration",
		Category:   category,
		Difficulty: difficulty,
	}
	resp, out := doJSON(t, http.MethodPost, baseURL()+"/questions", map[string]interface{}{
		"question":   q.Question,
		"answer":     q.Answer,
		"category":   q.Category,
		"difficulty": q.Difficulty,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create question: unexpected status %d: %v", resp.StatusCode, out)
	}
	created, ok := out["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing created id in %v", out)
	}
	q.ID = int(created)

	t.Cleanup(func() {
		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL(), q.ID), nil)
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
		}
	})
	return q
}

func expectError(t *testing.T, resp *http.Response, out map[string]interface{}, status int, message string) {
	t.Helper()

	if resp.StatusCode != status {
		t.Fatalf("expected %d, got %d: %v", status, resp.StatusCode, out)
	}
	if out["success"] != false {
		t.Fatalf("expected success=false, got %v", out["success"])
	}
	if out["error"] != float64(status) {
		t.Fatalf("expected error=%d, got %v", status, out["error"])
	}
	if out["message"] != message {
		t.Fatalf("expected message %q, got %v", message, out["message"])
	}
}
