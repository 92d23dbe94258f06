// Package memory implements in-memory storage for development and testing.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
	"github.com/emilythestrangee/hasker/backend/internal/voting"
)

// tally guards the voters of one entity. Votes on different entities never
// share a lock. target holds only ids and voters; its Vote method applies
// every transition.
type tally struct {
	mu      sync.Mutex
	target  models.Votable
	removed bool
}

func newTally(target models.Votable) *tally {
	return &tally{target: target}
}

// cast applies one vote unless the entity was deleted after the tally was
// looked up.
func (t *tally) cast(userID int, like bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.removed {
		return 0, service.ErrNotFound
	}
	return t.target.Vote(userID, like), nil
}

func (t *tally) remove() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removed = true
}

func (t *tally) snapshot() voting.Ballot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.Ballot(t.target.Voters())
}

type questionRecord struct {
	question models.Question
	tagIDs   []int
	votes    *tally
}

type answerRecord struct {
	answer models.Answer
	votes  *tally
}

// Store is a mutex-guarded in-memory implementation of every repository
// the services need.
type Store struct {
	mu        sync.RWMutex
	users     map[int]*models.User
	questions map[int]*questionRecord
	answers   map[int]*answerRecord
	tags      map[string]*models.Tag

	userIDCounter     int
	questionIDCounter int
	answerIDCounter   int
	tagIDCounter      int

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:     make(map[int]*models.User),
		questions: make(map[int]*questionRecord),
		answers:   make(map[int]*answerRecord),
		tags:      make(map[string]*models.Tag),
		now:       time.Now,
	}
}

// Ensure interfaces are met.
var (
	_ service.VoteRepository     = (*Store)(nil)
	_ service.QuestionRepository = (*Store)(nil)
	_ service.TagRepository      = (*Store)(nil)
	_ service.UserRepository     = (*Store)(nil)
)

// Health always reports up.
func (s *Store) Health() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]string{"status": "up", "storage": "memory"}
}

// --- VoteRepository ---

func (s *Store) FindVotable(ctx context.Context, ref models.Ref) (models.Votable, error) {
	switch ref.Kind {
	case models.KindQuestion:
		return s.GetQuestion(ctx, ref.ID)
	case models.KindAnswer:
		return s.GetAnswer(ctx, ref.ID)
	}
	return nil, service.ErrNotFound
}

func (s *Store) CastVote(ctx context.Context, ref models.Ref, userID int, like bool) (int, error) {
	t, err := s.tallyFor(ref)
	if err != nil {
		return 0, err
	}
	return t.cast(userID, like)
}

func (s *Store) tallyFor(ref models.Ref) (*tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch ref.Kind {
	case models.KindQuestion:
		if rec, ok := s.questions[ref.ID]; ok {
			return rec.votes, nil
		}
	case models.KindAnswer:
		if rec, ok := s.answers[ref.ID]; ok {
			return rec.votes, nil
		}
	}
	return nil, service.ErrNotFound
}

// --- QuestionRepository ---

func (s *Store) ListQuestions(ctx context.Context, filter service.QuestionFilter) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tagID int
	if filter.Tag != "" {
		tag, ok := s.tags[filter.Tag]
		if !ok {
			return []*models.Question{}, nil
		}
		tagID = tag.ID
	}
	phrase := strings.ToLower(filter.Search)

	out := []*models.Question{}
	for _, rec := range s.questions {
		if tagID != 0 && !slices.Contains(rec.tagIDs, tagID) {
			continue
		}
		if phrase != "" &&
			!strings.Contains(strings.ToLower(rec.question.Title), phrase) &&
			!strings.Contains(strings.ToLower(rec.question.Text), phrase) {
			continue
		}
		out = append(out, s.hydrateQuestion(rec))
	}
	return out, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.questions[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return s.hydrateQuestion(rec), nil
}

func (s *Store) ListAnswers(ctx context.Context, questionID int) ([]*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Answer{}
	for _, rec := range s.answers {
		if rec.answer.QuestionID == questionID {
			out = append(out, s.hydrateAnswer(rec))
		}
	}
	return out, nil
}

func (s *Store) GetAnswer(ctx context.Context, id int) (*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.answers[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return s.hydrateAnswer(rec), nil
}

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[q.AuthorID]; !ok {
		return service.ErrNotFound
	}

	s.questionIDCounter++
	q.ID = s.questionIDCounter
	if q.Published.IsZero() {
		q.Published = s.now().UTC()
	}
	q.UpdatedAt = q.Published

	rec := &questionRecord{question: *q, votes: newTally(&models.Question{ID: q.ID, AuthorID: q.AuthorID})}
	rec.question.Likers, rec.question.Dislikers, rec.question.Tags, rec.question.Answers = nil, nil, nil, nil
	q.Tags = nil
	for _, name := range tags {
		tag := s.getOrCreateTagLocked(name)
		rec.tagIDs = append(rec.tagIDs, tag.ID)
		q.Tags = append(q.Tags, *tag)
	}
	s.questions[q.ID] = rec
	return nil
}

// UpdateQuestion rewrites title, text and tags. Published and the voters
// stay as they were.
func (s *Store) UpdateQuestion(ctx context.Context, q *models.Question, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.questions[q.ID]
	if !ok {
		return service.ErrNotFound
	}
	rec.question.Title = q.Title
	rec.question.Text = q.Text
	rec.question.UpdatedAt = s.now().UTC()
	rec.tagIDs = nil
	for _, name := range tags {
		rec.tagIDs = append(rec.tagIDs, s.getOrCreateTagLocked(name).ID)
	}
	return nil
}

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[a.QuestionID]; !ok {
		return service.ErrNotFound
	}
	if _, ok := s.users[a.AuthorID]; !ok {
		return service.ErrNotFound
	}

	s.answerIDCounter++
	a.ID = s.answerIDCounter
	if a.Published.IsZero() {
		a.Published = s.now().UTC()
	}
	a.UpdatedAt = a.Published

	rec := &answerRecord{answer: *a, votes: newTally(&models.Answer{ID: a.ID, AuthorID: a.AuthorID, QuestionID: a.QuestionID})}
	rec.answer.Likers, rec.answer.Dislikers = nil, nil
	s.answers[a.ID] = rec
	return nil
}

func (s *Store) SetCorrectAnswer(ctx context.Context, questionID, answerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.questions[questionID]
	if !ok {
		return service.ErrNotFound
	}
	ans, ok := s.answers[answerID]
	if !ok || ans.answer.QuestionID != questionID {
		return service.ErrNotFound
	}
	id := answerID
	rec.question.CorrectAnswerID = &id
	return nil
}

// DeleteQuestion removes a question together with its answers.
func (s *Store) DeleteQuestion(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.questions[id]
	if !ok {
		return service.ErrNotFound
	}
	rec.votes.remove()
	delete(s.questions, id)
	for aid, ans := range s.answers {
		if ans.answer.QuestionID == id {
			ans.votes.remove()
			delete(s.answers, aid)
		}
	}
	return nil
}

// --- TagRepository ---

func (s *Store) FindTag(ctx context.Context, name string) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag, ok := s.tags[name]
	if !ok {
		return nil, service.ErrNotFound
	}
	cp := *tag
	return &cp, nil
}

func (s *Store) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *s.getOrCreateTagLocked(name)
	return &cp, nil
}

func (s *Store) getOrCreateTagLocked(name string) *models.Tag {
	if tag, ok := s.tags[name]; ok {
		return tag
	}
	s.tagIDCounter++
	tag := &models.Tag{ID: s.tagIDCounter, Name: name}
	s.tags[name] = tag
	return tag
}

// --- UserRepository ---

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return service.ErrConflict
		}
	}

	s.userIDCounter++
	u.ID = s.userIDCounter
	u.CreatedAt = s.now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- hydration (callers hold s.mu) ---

func (s *Store) hydrateQuestion(rec *questionRecord) *models.Question {
	q := rec.question
	if rec.question.CorrectAnswerID != nil {
		id := *rec.question.CorrectAnswerID
		q.CorrectAnswerID = &id
	}
	q.Author = s.userLocked(q.AuthorID)
	for _, tag := range s.tags {
		if slices.Contains(rec.tagIDs, tag.ID) {
			q.Tags = append(q.Tags, *tag)
		}
	}
	slices.SortFunc(q.Tags, func(a, b models.Tag) int { return a.ID - b.ID })
	b := rec.votes.snapshot()
	q.Likers, q.Dislikers = s.usersLocked(b.Likers), s.usersLocked(b.Dislikers)
	return &q
}

func (s *Store) hydrateAnswer(rec *answerRecord) *models.Answer {
	a := rec.answer
	a.Author = s.userLocked(a.AuthorID)
	b := rec.votes.snapshot()
	a.Likers, a.Dislikers = s.usersLocked(b.Likers), s.usersLocked(b.Dislikers)
	return &a
}

func (s *Store) userLocked(id int) models.User {
	if u, ok := s.users[id]; ok {
		return *u
	}
	return models.User{ID: id}
}

func (s *Store) usersLocked(ids []int) []models.User {
	out := make([]models.User, len(ids))
	for i, id := range ids {
		out[i] = s.userLocked(id)
	}
	return out
}
