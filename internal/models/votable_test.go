package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/hasker/backend/internal/models"
)

func TestQuestionVote_Toggle(t *testing.T) {
	q := &models.Question{ID: 1, AuthorID: 2}
	start := q.Votes()

	assert.Equal(t, start+1, q.Vote(5, true))
	assert.Equal(t, start, q.Vote(5, true))
	assert.Empty(t, q.Likers)
	assert.Empty(t, q.Dislikers)
}

func TestAnswerVote_Switch(t *testing.T) {
	a := &models.Answer{ID: 1, AuthorID: 2, Likers: []models.User{{ID: 9}}}

	liked := a.Vote(5, true)
	assert.Equal(t, 2, liked)

	disliked := a.Vote(5, false)
	assert.Equal(t, liked-2, disliked)
	assert.Equal(t, 1, a.Likes())
	assert.Equal(t, 1, a.Dislikes())
	assert.Equal(t, 5, a.Dislikers[0].ID)
}

func TestVote_KeepsOtherVoters(t *testing.T) {
	q := &models.Question{Likers: []models.User{{ID: 1, Username: "ann"}}, Dislikers: []models.User{{ID: 2}}}
	q.Vote(3, false)
	q.Vote(2, true)

	assert.Equal(t, []models.User{{ID: 1, Username: "ann"}, {ID: 2}}, q.Likers)
	assert.Equal(t, []models.User{{ID: 3}}, q.Dislikers)
}

func TestParseKind(t *testing.T) {
	k, ok := models.ParseKind("q")
	assert.True(t, ok)
	assert.Equal(t, models.KindQuestion, k)

	k, ok = models.ParseKind("a")
	assert.True(t, ok)
	assert.Equal(t, models.KindAnswer, k)

	_, ok = models.ParseKind("x")
	assert.False(t, ok)
}
