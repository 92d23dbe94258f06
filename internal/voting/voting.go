// Package voting implements the like/dislike state machine shared by
// questions and answers.
package voting

import "slices"

// Stance is a single user's position on one votable entity.
type Stance int

const (
	None Stance = iota
	Liked
	Disliked
)

func (s Stance) String() string {
	switch s {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "none"
	}
}

// Next returns the stance after a user casts a like (like == true) or a
// dislike. Repeating the current stance clears it, the opposite stance
// replaces it.
func Next(prev Stance, like bool) Stance {
	want := Disliked
	if like {
		want = Liked
	}
	if prev == want {
		return None
	}
	return want
}

// Ballot holds the voters of one entity. A user id appears in at most one
// of the two slices.
type Ballot struct {
	Likers    []int
	Dislikers []int
}

// StanceOf reports where userID currently sits.
func (b Ballot) StanceOf(userID int) Stance {
	switch {
	case slices.Contains(b.Likers, userID):
		return Liked
	case slices.Contains(b.Dislikers, userID):
		return Disliked
	default:
		return None
	}
}

// Score is likes minus dislikes.
func (b Ballot) Score() int {
	return len(b.Likers) - len(b.Dislikers)
}

// Cast applies one vote and returns the resulting ballot. The receiver is
// left untouched; the returned ballot never shares backing arrays with it.
func (b Ballot) Cast(userID int, like bool) Ballot {
	next := Next(b.StanceOf(userID), like)
	return Ballot{
		Likers:    withMember(b.Likers, userID, next == Liked),
		Dislikers: withMember(b.Dislikers, userID, next == Disliked),
	}
}

func withMember(ids []int, id int, present bool) []int {
	out := make([]int, 0, len(ids)+1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	if present {
		out = append(out, id)
	}
	return out
}
