package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/emilythestrangee/hasker/backend/internal/models"
)

const maxTagLength = 64

// QuestionService covers question and answer authoring.
type QuestionService struct {
	questions QuestionRepository
	tags      TagRepository
}

func NewQuestionService(questions QuestionRepository, tags TagRepository) *QuestionService {
	return &QuestionService{questions: questions, tags: tags}
}

// Ask creates a question authored by authorID.
func (s *QuestionService) Ask(ctx context.Context, authorID int, req models.CreateQuestionRequest) (*models.Question, error) {
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}

	q := &models.Question{
		Title:    req.Title,
		Text:     req.Text,
		AuthorID: authorID,
	}
	if err := s.questions.CreateQuestion(ctx, q, NormalizeTags(req.Tags)); err != nil {
		return nil, err
	}
	return q, nil
}

// Edit replaces the title, text and tags of a question. Only the author may
// edit; publication time and votes are kept.
func (s *QuestionService) Edit(ctx context.Context, callerID, questionID int, req models.UpdateQuestionRequest) (*models.Question, error) {
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}

	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.AuthorID != callerID {
		return nil, ErrNotOwner
	}

	q.Title, q.Text = req.Title, req.Text
	if err := s.questions.UpdateQuestion(ctx, q, NormalizeTags(req.Tags)); err != nil {
		return nil, err
	}
	return s.questions.GetQuestion(ctx, q.ID)
}

// Answer adds an answer to a question. Authors cannot answer their own
// questions.
func (s *QuestionService) Answer(ctx context.Context, authorID, questionID int, req models.CreateAnswerRequest) (*models.Answer, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := validation.ValidateStruct(&req, validation.Field(&req.Text, validation.Required)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.AuthorID == authorID {
		return nil, ErrOwnQuestion
	}

	a := &models.Answer{Text: req.Text, AuthorID: authorID, QuestionID: q.ID}
	if err := s.questions.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ChooseCorrect marks answerID as the correct answer of its question and
// returns the question id.
func (s *QuestionService) ChooseCorrect(ctx context.Context, callerID, answerID int) (int, error) {
	a, err := s.questions.GetAnswer(ctx, answerID)
	if err != nil {
		return 0, err
	}
	q, err := s.questions.GetQuestion(ctx, a.QuestionID)
	if err != nil {
		return 0, err
	}
	if q.AuthorID != callerID {
		return 0, ErrNotAuthor
	}
	if err := s.questions.SetCorrectAnswer(ctx, q.ID, a.ID); err != nil {
		return 0, err
	}
	return q.ID, nil
}

// Delete removes a question and its answers. Only the author may delete.
func (s *QuestionService) Delete(ctx context.Context, callerID, questionID int) error {
	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.AuthorID != callerID {
		return ErrNotOwner
	}
	return s.questions.DeleteQuestion(ctx, q.ID)
}

// AddTag returns the tag named name, creating it if needed.
func (s *QuestionService) AddTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrEmptyTag
	}
	if len(name) > maxTagLength {
		return nil, fmt.Errorf("%w: tag longer than %d characters", ErrValidation, maxTagLength)
	}
	return s.tags.GetOrCreateTag(ctx, name)
}

// validateQuestion trims req in place and checks it.
func validateQuestion(req *models.CreateQuestionRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Text = strings.TrimSpace(req.Text)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Text, validation.Required),
		validation.Field(&req.Tags, validation.Each(validation.Length(0, maxTagLength))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// NormalizeTags lower-cases, trims and de-duplicates tag names, keeping
// first-seen order.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
