package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// memStore is an in-memory Store keeping questions in id order.
type memStore struct {
	mu         sync.Mutex
	categories []Category
	questions  map[int]Question
	nextID     int

	failWith error
	// vanish makes GetQuestion miss for these ids even though they list.
	vanish map[int]bool
}

func newMemStore(categories []Category, questions ...Question) *memStore {
	s := &memStore{
		categories: categories,
		questions:  map[int]Question{},
		nextID:     1,
		vanish:     map[int]bool{},
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	return s
}

func defaultCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
}

func (s *memStore) sorted(filter func(Question) bool) []Question {
	out := []Question{}
	for _, q := range s.questions {
		if filter(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func questionIDs(qs []Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func (s *memStore) ListCategories(context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]Category(nil), s.categories...), nil
}

func (s *memStore) ListQuestions(context.Context) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(Question) bool { return true }), nil
}

func (s *memStore) ListQuestionsByCategory(_ context.Context, categoryID int) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(q Question) bool { return q.Category == categoryID }), nil
}

func (s *memStore) ListQuestionIDs(ctx context.Context) ([]int, error) {
	qs, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return questionIDs(qs), nil
}

func (s *memStore) ListQuestionIDsByCategory(ctx context.Context, categoryID int) ([]int, error) {
	qs, err := s.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return questionIDs(qs), nil
}

func (s *memStore) GetQuestion(_ context.Context, id int) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return Question{}, s.failWith
	}
	q, ok := s.questions[id]
	if !ok || s.vanish[id] {
		return Question{}, ErrQuestionNotFound
	}
	return q, nil
}

func (s *memStore) InsertQuestion(_ context.Context, nq NewQuestion) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return Question{}, s.failWith
	}
	q := Question{
		ID:         s.nextID,
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memStore) SearchQuestions(_ context.Context, term string) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(q Question) bool { return strings.Contains(q.Question, term) }), nil
}

var errStoreDown = errors.New("connection refused")

// mapCache is an in-memory CategoryCache.
type mapCache struct {
	mu     sync.Mutex
	value  []Category
	getErr error
	setErr error
	gets   int
	sets   int
}

func (c *mapCache) Get(context.Context) ([]Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.value, nil
}

func (c *mapCache) Set(_ context.Context, categories []Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.value = append([]Category(nil), categories...)
	return nil
}

// fixedRand returns a fixed index, clamped to n-1.
type fixedRand struct {
	index int
	calls []int
}

func (r *fixedRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	if r.index >= n {
		return n - 1
	}
	return r.index
}

type outcomeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *outcomeCounter) QuizOutcome(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[string]int{}
	}
	o.counts[outcome]++
}

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Question: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 1},
		{ID: 2, Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: 2, Difficulty: 2},
		{ID: 4, Question: "What is the largest planet?", Answer: "Jupiter", Category: 1, Difficulty: 2},
		{ID: 5, Question: "Capital of France?", Answer: "Paris", Category: 3, Difficulty: 1},
		{ID: 7, Question: "Which title did Shakespeare write?", Answer: "Hamlet", Category: 2, Difficulty: 3},
	}
}
