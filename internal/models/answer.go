package models

import "time"

// Answer is a votable reply to a question.
type Answer struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"not null" json:"text"`
	AuthorID   int       `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	QuestionID int       `gorm:"not null;index" json:"question_id"`
	Likers     []User    `gorm:"many2many:answer_likers;constraint:OnDelete:CASCADE" json:"-"`
	Dislikers  []User    `gorm:"many2many:answer_dislikers;constraint:OnDelete:CASCADE" json:"-"`
	Published  time.Time `gorm:"autoCreateTime;not null;index" json:"published"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Answer) Ref() Ref               { return Ref{Kind: KindAnswer, ID: a.ID} }
func (a *Answer) Owner() int             { return a.AuthorID }
func (a *Answer) PublishedAt() time.Time { return a.Published }
func (a *Answer) Likes() int             { return len(a.Likers) }
func (a *Answer) Dislikes() int          { return len(a.Dislikers) }
func (a *Answer) Votes() int             { return a.Likes() - a.Dislikes() }

// AuthorUser returns the preloaded author.
func (a *Answer) AuthorUser() User { return a.Author }

// Voters returns the preloaded likers and dislikers.
func (a *Answer) Voters() (likers, dislikers []User) { return a.Likers, a.Dislikers }

// Vote applies a like or dislike from userID and returns the new vote count.
// Self-votes must be rejected by the caller.
func (a *Answer) Vote(userID int, like bool) int {
	castVote(&a.Likers, &a.Dislikers, userID, like)
	return a.Votes()
}

type CreateAnswerRequest struct {
	Text string `json:"text"`
}
