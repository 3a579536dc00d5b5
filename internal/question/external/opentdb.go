package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"time"
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type openTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []openTDBQuestion `json:"results"`
}

// Open Trivia DB response codes.
const (
	codeSuccess         = 0
	codeNoResults       = 1
	codeInvalidParam    = 2
	codeTooManyRequests = 5
)

func (c *OpenTDBClient) Fetch(ctx context.Context, req Request) ([]Question, error) {
	values := url.Values{}
	values.Set("amount", fmt.Sprint(req.Amount))
	if req.Category != "" {
		values.Set("category", req.Category)
	}
	if req.Difficulty != "" {
		values.Set("difficulty", req.Difficulty)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
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
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	switch payload.ResponseCode {
	case codeSuccess:
	case codeNoResults:
		return nil, fmt.Errorf("opentdb: not enough questions for the requested filters")
	case codeInvalidParam:
		return nil, fmt.Errorf("opentdb: invalid parameter")
	case codeTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}

	out := make([]Question, 0, len(payload.Results))
	for _, q := range payload.Results {
		out = append(out, unescape(q))
	}
	return out, nil
}

// OpenTDB HTML-encodes every text field.
func unescape(q openTDBQuestion) Question {
	incorrect := make([]string, len(q.IncorrectAnswer))
	for i, a := range q.IncorrectAnswer {
		incorrect[i] = html.UnescapeString(a)
	}
	return Question{
		Category:         html.UnescapeString(q.Category),
		Difficulty:       q.Difficulty,
		Question:         html.UnescapeString(q.Question),
		CorrectAnswer:    html.UnescapeString(q.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}
