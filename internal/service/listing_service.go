package service

import (
	"context"
	"strings"

	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/ranking"
)

// ListingService assembles ranked, paginated listings.
type ListingService struct {
	questions        QuestionRepository
	tags             TagRepository
	questionsPerPage int
	answersPerPage   int
}

func NewListingService(questions QuestionRepository, tags TagRepository, questionsPerPage, answersPerPage int) *ListingService {
	return &ListingService{
		questions:        questions,
		tags:             tags,
		questionsPerPage: questionsPerPage,
		answersPerPage:   answersPerPage,
	}
}

// QuestionDetail is a question with one page of its hot-ranked answers.
type QuestionDetail struct {
	Question *models.Question
	Answers  Page[*models.Answer]
}

// Recent lists every question newest first.
func (s *ListingService) Recent(ctx context.Context, page string) (Page[*models.Question], error) {
	return s.list(ctx, QuestionFilter{}, true, page)
}

// Hot lists every question by vote score.
func (s *ListingService) Hot(ctx context.Context, page string) (Page[*models.Question], error) {
	return s.list(ctx, QuestionFilter{}, false, page)
}

// Tagged lists questions carrying the tag, by vote score.
func (s *ListingService) Tagged(ctx context.Context, tag, page string) (Page[*models.Question], error) {
	if _, err := s.tags.FindTag(ctx, strings.ToLower(tag)); err != nil {
		return Page[*models.Question]{}, err
	}
	return s.list(ctx, QuestionFilter{Tag: strings.ToLower(tag)}, false, page)
}

// Search lists questions whose title or text contains phrase.
func (s *ListingService) Search(ctx context.Context, phrase, page string) (Page[*models.Question], error) {
	if strings.TrimSpace(phrase) == "" {
		return Page[*models.Question]{}, ErrEmptySearch
	}
	return s.list(ctx, QuestionFilter{Search: strings.TrimSpace(phrase)}, false, page)
}

// Detail loads a question and one page of its answers.
func (s *ListingService) Detail(ctx context.Context, id int, page string) (*QuestionDetail, error) {
	q, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := s.questions.ListAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &QuestionDetail{
		Question: q,
		Answers:  Paginate(ranking.Rank(answers, false), page, s.answersPerPage),
	}, nil
}

func (s *ListingService) list(ctx context.Context, filter QuestionFilter, byDate bool, page string) (Page[*models.Question], error) {
	qs, err := s.questions.ListQuestions(ctx, filter)
	if err != nil {
		return Page[*models.Question]{}, err
	}
	return Paginate(ranking.Rank(qs, byDate), page, s.questionsPerPage), nil
}

// ParseSearch splits a raw search query. A "tag:" prefix names a tag
// listing instead of a text search.
func ParseSearch(q string) (tag string, phrase string, err error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "", ErrEmptySearch
	}
	if name, ok := strings.CutPrefix(q, "tag:"); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", "", ErrEmptyTag
		}
		return name, "", nil
	}
	return "", q, nil
}
