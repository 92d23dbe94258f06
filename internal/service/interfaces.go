package service

import (
	"context"

	"github.com/emilythestrangee/hasker/backend/internal/models"
)

// VoteRepository resolves votable entities and persists votes on them.
// CastVote must apply the toggle/switch transition atomically per entity
// and return the count after the change is durable.
type VoteRepository interface {
	FindVotable(ctx context.Context, ref models.Ref) (models.Votable, error)
	CastVote(ctx context.Context, ref models.Ref, userID int, like bool) (int, error)
}

// QuestionFilter narrows a question listing. Zero value lists everything.
type QuestionFilter struct {
	Tag    string
	Search string
}

// QuestionRepository loads and stores questions and answers. Listings are
// returned with voters loaded and in no particular order.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]*models.Question, error)
	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	ListAnswers(ctx context.Context, questionID int) ([]*models.Answer, error)
	GetAnswer(ctx context.Context, id int) (*models.Answer, error)
	CreateQuestion(ctx context.Context, q *models.Question, tags []string) error
	UpdateQuestion(ctx context.Context, q *models.Question, tags []string) error
	CreateAnswer(ctx context.Context, a *models.Answer) error
	SetCorrectAnswer(ctx context.Context, questionID, answerID int) error
	DeleteQuestion(ctx context.Context, id int) error
}

type TagRepository interface {
	FindTag(ctx context.Context, name string) (*models.Tag, error)
	GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}
