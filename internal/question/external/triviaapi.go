package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TriviaAPIClient integrates with the-trivia-api.com (API key optional, env TRIVIA_API_KEY).
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = "https://the-trivia-api.com/v2"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type triviaAPIQuestion struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Question struct {
		Text string `json:"text"`
	} `json:"question"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Correct    string   `json:"correctAnswer"`
	Incorrect  []string `json:"incorrectAnswers"`
}

func (c *TriviaAPIClient) Fetch(ctx context.Context, req Request) ([]Question, error) {
	values := url.Values{}
	values.Set("limit", fmt.Sprint(req.Amount))
	if req.Category != "" {
		values.Set("categories", req.Category)
	}
	if req.Difficulty != "" {
		values.Set("difficulties", req.Difficulty)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/questions?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []triviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(payload))
	for _, q := range payload {
		out = append(out, Question{
			Category:         q.Category,
			Difficulty:       q.Difficulty,
			Question:         q.Question.Text,
			CorrectAnswer:    q.Correct,
			IncorrectAnswers: q.Incorrect,
		})
	}
	return out, nil
}
