package voting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/hasker/backend/internal/voting"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		prev voting.Stance
		like bool
		want voting.Stance
	}{
		{"like from none", voting.None, true, voting.Liked},
		{"dislike from none", voting.None, false, voting.Disliked},
		{"like toggles off", voting.Liked, true, voting.None},
		{"dislike toggles off", voting.Disliked, false, voting.None},
		{"like switches dislike", voting.Disliked, true, voting.Liked},
		{"dislike switches like", voting.Liked, false, voting.Disliked},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, voting.Next(tc.prev, tc.like))
		})
	}
}

func TestBallot_ToggleReturnsToOriginal(t *testing.T) {
	start := voting.Ballot{Likers: []int{7}, Dislikers: []int{8}}

	once := start.Cast(1, true)
	assert.Equal(t, start.Score()+1, once.Score())

	twice := once.Cast(1, true)
	assert.Equal(t, start.Score(), twice.Score())
	assert.ElementsMatch(t, start.Likers, twice.Likers)
	assert.ElementsMatch(t, start.Dislikers, twice.Dislikers)
}

func TestBallot_Switch(t *testing.T) {
	var b voting.Ballot
	liked := b.Cast(1, true)
	disliked := liked.Cast(1, false)

	assert.Equal(t, voting.Disliked, disliked.StanceOf(1))
	assert.NotContains(t, disliked.Likers, 1)
	assert.Equal(t, liked.Score()-2, disliked.Score())
	assert.Equal(t, b.Score()-1, disliked.Score())
}

func TestBallot_CastDoesNotMutateReceiver(t *testing.T) {
	b := voting.Ballot{Likers: []int{1, 2}, Dislikers: []int{3}}
	_ = b.Cast(3, true)
	_ = b.Cast(1, true)

	assert.Equal(t, []int{1, 2}, b.Likers)
	assert.Equal(t, []int{3}, b.Dislikers)
}

func TestBallot_NeverHoldsUserTwice(t *testing.T) {
	actions := []bool{true, false, false, true, true, false, true, true, false}
	var b voting.Ballot
	for i, like := range actions {
		user := i % 3
		b = b.Cast(user, like)
		for u := 0; u < 3; u++ {
			inLikers := countOf(b.Likers, u)
			inDislikers := countOf(b.Dislikers, u)
			assert.LessOrEqual(t, inLikers+inDislikers, 1, "user %d after step %d", u, i)
		}
	}
}

func countOf(ids []int, id int) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}
