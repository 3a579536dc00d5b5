package question

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Payload is a decoded JSON object whose values are parsed lazily.
type Payload map[string]json.RawMessage

// maxExactFloatInt is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloatInt = 1 << 53

// Search terms in exponent form beyond these magnitudes, as in 1e+16 or 1e-05.
const (
	minPlainFloat = 1e-4
	maxPlainFloat = 1e16
)

var newQuestionKeys = []string{"answer", "category", "difficulty", "question"}

// DecodePayload parses body as a JSON object.
func DecodePayload(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, malformed("", "empty body")
	}
	if trimmed[0] != '{' {
		return nil, malformed("", "body is not a JSON object")
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, malformed("", "decode body: %v", err)
	}
	if p == nil {
		return nil, malformed("", "body is not a JSON object")
	}
	return p, nil
}

// ValidateNewQuestion checks a creation payload. Structural problems (key set,
// uncoercible JSON types) are reported before semantic ones.
func ValidateNewQuestion(p Payload) (NewQuestion, error) {
	if err := checkKeys(p, newQuestionKeys); err != nil {
		return NewQuestion{}, err
	}

	text, err := stringField(p, "question")
	if err != nil {
		return NewQuestion{}, err
	}
	answer, err := stringField(p, "answer")
	if err != nil {
		return NewQuestion{}, err
	}
	rawDifficulty, err := scalarField(p, "difficulty")
	if err != nil {
		return NewQuestion{}, err
	}
	rawCategory, err := scalarField(p, "category")
	if err != nil {
		return NewQuestion{}, err
	}

	if len(text) == 0 {
		return NewQuestion{}, invalid("question", "must not be empty")
	}
	if len(answer) == 0 {
		return NewQuestion{}, invalid("answer", "must not be empty")
	}
	difficulty, ok := coerceInt(rawDifficulty)
	if !ok {
		return NewQuestion{}, invalid("difficulty", "not an integer: %s", rawDifficulty)
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return NewQuestion{}, invalid("difficulty", "%d outside [%d, %d]", difficulty, MinDifficulty, MaxDifficulty)
	}
	category, ok := coerceInt(rawCategory)
	if !ok {
		return NewQuestion{}, invalid("category", "not an integer: %s", rawCategory)
	}

	return NewQuestion{
		Question:   text,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}, nil
}

// ValidateSearch extracts the search term. String terms are returned verbatim.
// Zero-like terms (null, false, 0, "", [], {}) are invalid. Other scalars are
// searched by their text form; non-empty arrays and objects are malformed.
func ValidateSearch(p Payload) (string, error) {
	raw, ok := p["searchTerm"]
	if !ok {
		return "", malformed("searchTerm", "missing")
	}

	switch kindOfJSON(raw) {
	case '"':
		term, err := stringField(p, "searchTerm")
		if err != nil {
			return "", err
		}
		if term == "" {
			return "", invalid("searchTerm", "must not be empty")
		}
		return term, nil
	case 't':
		return "True", nil
	case '0':
		term, ok := numberText(raw)
		if !ok {
			return "", invalid("searchTerm", "zero or out of range: %s", raw)
		}
		return term, nil
	case 'n', 'f':
		return "", invalid("searchTerm", "must not be empty")
	case '[', '{':
		var items []json.RawMessage
		var fields map[string]json.RawMessage
		if (json.Unmarshal(raw, &items) == nil && len(items) == 0) ||
			(json.Unmarshal(raw, &fields) == nil && len(fields) == 0) {
			return "", invalid("searchTerm", "must not be empty")
		}
		return "", malformed("searchTerm", "must be a string")
	default:
		return "", malformed("searchTerm", "must be a string")
	}
}

// ParseQuizRequest reads previous_questions and quiz_category.id. Every
// failure here is structural.
func ParseQuizRequest(p Payload) (QuizRequest, error) {
	rawPrevious, ok := p["previous_questions"]
	if !ok {
		return QuizRequest{}, malformed("previous_questions", "missing")
	}
	rawCategory, ok := p["quiz_category"]
	if !ok {
		return QuizRequest{}, malformed("quiz_category", "missing")
	}

	var items []json.RawMessage
	if kindOfJSON(rawPrevious) != '[' || json.Unmarshal(rawPrevious, &items) != nil {
		return QuizRequest{}, malformed("previous_questions", "must be an array")
	}
	previous := make([]int, 0, len(items))
	for _, item := range items {
		if !isScalar(item) {
			return QuizRequest{}, malformed("previous_questions", "not an id: %s", item)
		}
		id, ok := exactInt(item)
		if !ok {
			return QuizRequest{}, malformed("previous_questions", "not an id: %s", item)
		}
		previous = append(previous, id)
	}

	var category Payload
	if kindOfJSON(rawCategory) != '{' || json.Unmarshal(rawCategory, &category) != nil {
		return QuizRequest{}, malformed("quiz_category", "must be an object")
	}
	rawID, ok := category["id"]
	if !ok {
		return QuizRequest{}, malformed("quiz_category.id", "missing")
	}
	if !isScalar(rawID) {
		return QuizRequest{}, malformed("quiz_category.id", "not an id: %s", rawID)
	}
	categoryID, ok := exactInt(rawID)
	if !ok {
		return QuizRequest{}, malformed("quiz_category.id", "not an id: %s", rawID)
	}

	return QuizRequest{CategoryID: categoryID, PreviousQuestions: previous}, nil
}

func checkKeys(p Payload, want []string) error {
	var missing, extra []string
	for _, k := range want {
		if _, ok := p[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range p {
		if !containsString(want, k) {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return malformed("", "missing keys %v, unexpected keys %v", missing, extra)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func stringField(p Payload, key string) (string, error) {
	raw := p[key]
	if kindOfJSON(raw) != '"' {
		return "", malformed(key, "must be a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(key, "must be a string")
	}
	return s, nil
}

// scalarField accepts a number, a string or a boolean, the types an integer
// can be coerced from.
func scalarField(p Payload, key string) (json.RawMessage, error) {
	raw := p[key]
	switch kindOfJSON(raw) {
	case '"', '0', 't', 'f':
		return raw, nil
	default:
		return nil, malformed(key, "must be a number, a string or a boolean")
	}
}

func isScalar(raw json.RawMessage) bool {
	switch kindOfJSON(raw) {
	case '"', '0':
		return true
	default:
		return false
	}
}

// kindOfJSON reports the JSON type of raw by its first byte; numbers are '0'.
func kindOfJSON(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	switch c := trimmed[0]; {
	case c == '-' || (c >= '0' && c <= '9'):
		return '0'
	default:
		return c
	}
}

// coerceInt converts a creation field to int: numbers are truncated toward
// zero, booleans count as 0 and 1, and strings must hold a base-10 integer
// once surrounding whitespace is trimmed.
func coerceInt(raw json.RawMessage) (int, bool) {
	switch kindOfJSON(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	case '0':
		text := string(bytes.TrimSpace(raw))
		if n, err := strconv.Atoi(text); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.Abs(f) >= math.MaxInt64 {
			return 0, false
		}
		return int(math.Trunc(f)), true
	case 't':
		return 1, true
	case 'f':
		return 0, true
	default:
		return 0, false
	}
}

// exactInt converts an integral JSON number or a numeric string to int.
// Fractions are rejected.
func exactInt(raw json.RawMessage) (int, bool) {
	switch kindOfJSON(raw) {
	case '"':
		return coerceInt(raw)
	case '0':
		text := string(bytes.TrimSpace(raw))
		if n, err := strconv.Atoi(text); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloatInt {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// numberText renders a non-zero JSON number the way it is searched for:
// integers as written, floats in shortest form with a trailing ".0" when
// whole. Zero reports false.
func numberText(raw json.RawMessage) (string, bool) {
	text := string(bytes.TrimSpace(raw))
	if !strings.ContainsAny(text, ".eE") {
		if strings.Trim(text, "-0") == "" {
			return "", false
		}
		return text, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f == 0 {
		return "", false
	}
	if abs := math.Abs(f); abs < minPlainFloat || abs >= maxPlainFloat {
		return strconv.FormatFloat(f, 'e', -1, 64), true
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out, true
}
