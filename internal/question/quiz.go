package question

import (
	"context"
	"errors"
)

// Selector picks the next unseen quiz question. It holds no per-quiz state:
// the caller resends the asked ids on every call.
type Selector struct {
	store Store
	rnd   RandSource
}

// NewSelector builds a selector. A nil rnd falls back to a clock-seeded source.
func NewSelector(store Store, rnd RandSource) *Selector {
	if rnd == nil {
		rnd = NewRandSource(0)
	}
	return &Selector{store: store, rnd: rnd}
}

// SelectNext returns a random question from the category scope that is not in
// asked. A nil question with a nil error means the round is exhausted.
//
// Exhaustion is detected by comparing the size of the asked set with the size
// of the scope, not by containment, so ids from outside the scope count too.
func (s *Selector) SelectNext(ctx context.Context, categoryID int, asked []int) (*Question, error) {
	scope, err := s.scope(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return nil, notFound("no questions in category %d", categoryID)
	}

	seen := make(map[int]struct{}, len(asked))
	for _, id := range asked {
		seen[id] = struct{}{}
	}
	if len(seen) == len(scope) {
		return nil, nil
	}

	id, ok := pickRemaining(scope, seen, s.rnd)
	if !ok {
		return nil, nil
	}

	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, notFound("question %d vanished during selection", id)
		}
		return nil, storeFailure("get question", err)
	}
	return &q, nil
}

func (s *Selector) scope(ctx context.Context, categoryID int) ([]int, error) {
	var (
		ids []int
		err error
	)
	if categoryID == AllCategories {
		ids, err = s.store.ListQuestionIDs(ctx)
	} else {
		ids, err = s.store.ListQuestionIDsByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, storeFailure("list quiz scope", err)
	}
	return ids, nil
}

// pickRemaining draws uniformly from scope minus seen, keeping scope order so
// a fixed source yields a fixed pick.
func pickRemaining(scope []int, seen map[int]struct{}, rnd RandSource) (int, bool) {
	remaining := make([]int, 0, len(scope))
	for _, id := range scope {
		if _, ok := seen[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		return 0, false
	}
	return remaining[rnd.Intn(len(remaining))], true
}
