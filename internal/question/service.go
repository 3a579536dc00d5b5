package question

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// CategoryCache defines cache behavior for the category listing (implemented
// by the Redis-backed Cache). Get returns nil, nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// OutcomeRecorder observes quiz selection outcomes.
type OutcomeRecorder interface {
	QuizOutcome(outcome string)
}

// Quiz outcomes reported to the OutcomeRecorder.
const (
	OutcomeSelected  = "selected"
	OutcomeExhausted = "exhausted"
	OutcomeNotFound  = "not_found"
)

// Service orchestrates validation results, the store and the quiz selector.
type Service struct {
	store    Store
	cache    CategoryCache
	selector *Selector
	pageSize int
	outcomes OutcomeRecorder
	logger   zerolog.Logger
}

type ServiceOptions struct {
	PageSize int
	Rand     RandSource
	Outcomes OutcomeRecorder
	Logger   zerolog.Logger
}

// NewService wires a service. cache may be nil.
func NewService(store Store, cache CategoryCache, opts ServiceOptions) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		cache:    cache,
		selector: NewSelector(store, opts.Rand),
		pageSize: opts.PageSize,
		outcomes: opts.Outcomes,
		logger:   opts.Logger.With().Str("component", "question_service").Logger(),
	}
}

// PageSize reports the configured listing page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Categories lists every category. An empty listing is NotFound.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.categoryList(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, notFound("no categories")
	}
	return categories, nil
}

// QuestionsPage returns one page of the id-ordered question listing.
func (s *Service) QuestionsPage(ctx context.Context, page int) (Page, error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Page{}, storeFailure("list questions", err)
	}
	paged := Paginate(all, page, s.pageSize)
	if len(paged) == 0 {
		return Page{}, notFound("page %d is empty", page)
	}
	categories, err := s.categoryList(ctx)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Questions:  paged,
		Total:      len(all),
		Categories: categories,
	}, nil
}

// DeleteQuestion removes a question by id.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if _, err := s.store.GetQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return notFound("question %d", id)
		}
		return storeFailure("get question", err)
	}
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return notFound("question %d", id)
		}
		return storeFailure("delete question", err)
	}
	return nil
}

// CreateQuestion inserts a validated question. The category id is not
// checked against existing categories.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion) (Question, error) {
	created, err := s.store.InsertQuestion(ctx, q)
	if err != nil {
		return Question{}, storeFailure("insert question", err)
	}
	return created, nil
}

// Search returns questions whose text contains term. No match is not an error.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	if term == "" {
		return nil, invalid("searchTerm", "must not be empty")
	}
	found, err := s.store.SearchQuestions(ctx, term)
	if err != nil {
		return nil, storeFailure("search questions", err)
	}
	if found == nil {
		found = []Question{}
	}
	return found, nil
}

// QuestionsInCategory lists a category's questions. An empty listing is NotFound.
func (s *Service) QuestionsInCategory(ctx context.Context, categoryID int) ([]Question, error) {
	found, err := s.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, storeFailure("list category questions", err)
	}
	if len(found) == 0 {
		return nil, notFound("no questions in category %d", categoryID)
	}
	return found, nil
}

// NextQuizQuestion selects the next quiz question. nil means the round is over.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	q, err := s.selector.SelectNext(ctx, req.CategoryID, req.PreviousQuestions)
	switch {
	case err != nil && KindOf(err) == KindNotFound:
		s.record(OutcomeNotFound)
	case err != nil:
	case q == nil:
		s.record(OutcomeExhausted)
	default:
		s.record(OutcomeSelected)
	}
	return q, err
}

// RefreshCategoryCache reloads categories from the store into the cache.
func (s *Service) RefreshCategoryCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, storeFailure("list categories", err)
	}
	if err := s.cache.Set(ctx, categories); err != nil {
		return 0, err
	}
	return len(categories), nil
}

func (s *Service) categoryList(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeFailure("list categories", err)
	}

	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *Service) record(outcome string) {
	if s.outcomes != nil {
		s.outcomes.QuizOutcome(outcome)
	}
}
