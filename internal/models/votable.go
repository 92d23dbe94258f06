package models

import (
	"slices"
	"time"

	"github.com/emilythestrangee/hasker/backend/internal/voting"
)

// Kind tags which table a votable entity lives in.
type Kind string

const (
	KindQuestion Kind = "q"
	KindAnswer   Kind = "a"
)

// ParseKind maps the wire vote_type onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindQuestion, KindAnswer:
		return k, true
	}
	return "", false
}

// Ref identifies one votable entity.
type Ref struct {
	Kind Kind
	ID   int
}

// Votable is implemented by *Question and *Answer.
type Votable interface {
	Ref() Ref
	Owner() int
	PublishedAt() time.Time
	Likes() int
	Dislikes() int
	Votes() int
	Vote(userID int, like bool) int
	Voters() (likers, dislikers []User)
}

var (
	_ Votable = (*Question)(nil)
	_ Votable = (*Answer)(nil)
)

// Ballot converts loaded voter associations into the id form used by the
// vote engine.
func Ballot(likers, dislikers []User) voting.Ballot {
	return voting.Ballot{Likers: userIDs(likers), Dislikers: userIDs(dislikers)}
}

// castVote routes a vote through the ballot engine. Voters other than
// userID keep their loaded details.
func castVote(likers, dislikers *[]User, userID int, like bool) {
	known := make(map[int]User, len(*likers)+len(*dislikers))
	for _, u := range slices.Concat(*likers, *dislikers) {
		known[u.ID] = u
	}
	b := Ballot(*likers, *dislikers).Cast(userID, like)
	*likers = usersFor(b.Likers, known)
	*dislikers = usersFor(b.Dislikers, known)
}

func usersFor(ids []int, known map[int]User) []User {
	out := make([]User, len(ids))
	for i, id := range ids {
		if u, ok := known[id]; ok {
			out[i] = u
		} else {
			out[i] = User{ID: id}
		}
	}
	return out
}

func userIDs(users []User) []int {
	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
