package ranking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/hasker/backend/internal/ranking"
)

type entry struct {
	name      string
	likes     int
	dislikes  int
	published time.Time
}

func (e entry) Likes() int             { return e.likes }
func (e entry) Dislikes() int          { return e.dislikes }
func (e entry) PublishedAt() time.Time { return e.published }

func names(es []entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.name
	}
	return out
}

func fixture() []entry {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return []entry{
		{name: "q1", likes: 1, published: now.AddDate(0, 0, -2)},
		{name: "q2", likes: 1, published: now.AddDate(0, 0, -1)},
		{name: "q3", published: now},
	}
}

func TestRank_ByDate(t *testing.T) {
	assert.Equal(t, []string{"q3", "q2", "q1"}, names(ranking.Rank(fixture(), true)))
}

func TestRank_Hot(t *testing.T) {
	assert.Equal(t, []string{"q2", "q1", "q3"}, names(ranking.Rank(fixture(), false)))
}

func TestRank_HotNegativeScoresSortLast(t *testing.T) {
	now := time.Now()
	in := []entry{
		{name: "bad", dislikes: 3, published: now},
		{name: "good", likes: 5, dislikes: 1, published: now.Add(-time.Hour)},
		{name: "meh", likes: 1, dislikes: 1, published: now.Add(-2 * time.Hour)},
	}
	assert.Equal(t, []string{"good", "meh", "bad"}, names(ranking.Rank(in, false)))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := names(in)
	_ = ranking.Rank(in, false)
	assert.Equal(t, before, names(in))
}

func TestRank_Deterministic(t *testing.T) {
	in := fixture()
	assert.Equal(t, ranking.Rank(in, false), ranking.Rank(in, false))
	assert.Equal(t, ranking.Rank(in, true), ranking.Rank(in, true))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, ranking.Rank([]entry{}, false))
	assert.Empty(t, ranking.Rank[entry](nil, true))
}
