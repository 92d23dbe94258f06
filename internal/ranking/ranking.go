// Package ranking orders votable entities for listing pages.
package ranking

import (
	"slices"
	"time"
)

// Rankable is anything with a vote tally and a publication time.
type Rankable interface {
	Likes() int
	Dislikes() int
	PublishedAt() time.Time
}

type keyed[T Rankable] struct {
	item      T
	score     int
	published time.Time
}

// Rank returns a new slice ordered for display. With byDate set the order is
// newest first. Otherwise entities are ordered by dislikes minus likes
// ascending (best score first), ties going to the newer entity. The input
// slice is not modified.
func Rank[T Rankable](items []T, byDate bool) []T {
	ks := make([]keyed[T], len(items))
	for i, it := range items {
		ks[i] = keyed[T]{item: it, score: it.Dislikes() - it.Likes(), published: it.PublishedAt()}
	}

	slices.SortStableFunc(ks, func(a, b keyed[T]) int {
		if !byDate && a.score != b.score {
			if a.score < b.score {
				return -1
			}
			return 1
		}
		return b.published.Compare(a.published)
	})

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}
