package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hasker/backend/internal/database/memory"
	"github.com/emilythestrangee/hasker/backend/internal/models"
)

var epoch = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newUsers(t *testing.T, st *memory.Store, n int) []int {
	t.Helper()
	ids := make([]int, n)
	for i := range n {
		u := &models.User{Username: fmt.Sprintf("user%d", i), Email: fmt.Sprintf("user%d@example.com", i)}
		require.NoError(t, st.CreateUser(context.Background(), u))
		ids[i] = u.ID
	}
	return ids
}

func newQuestion(t *testing.T, st *memory.Store, author int, title string, published time.Time, tags ...string) *models.Question {
	t.Helper()
	q := &models.Question{Title: title, Text: "text of " + title, AuthorID: author, Published: published}
	require.NoError(t, st.CreateQuestion(context.Background(), q, tags))
	return q
}

func newAnswer(t *testing.T, st *memory.Store, author, questionID int, published time.Time) *models.Answer {
	t.Helper()
	a := &models.Answer{Text: "answer", AuthorID: author, QuestionID: questionID, Published: published}
	require.NoError(t, st.CreateAnswer(context.Background(), a))
	return a
}

func vote(t *testing.T, st *memory.Store, ref models.Ref, user int, like bool) {
	t.Helper()
	_, err := st.CastVote(context.Background(), ref, user, like)
	require.NoError(t, err)
}

func titles(qs []*models.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Title
	}
	return out
}
