package models

import "time"

// Question is a votable post that owns its answers.
type Question struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Text            string    `gorm:"not null" json:"text"`
	AuthorID        int       `gorm:"not null;index" json:"author_id"`
	Author          User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags            []Tag     `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Answers         []Answer  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CorrectAnswerID *int      `json:"correct_answer_id,omitempty"`
	Likers          []User    `gorm:"many2many:question_likers;constraint:OnDelete:CASCADE" json:"-"`
	Dislikers       []User    `gorm:"many2many:question_dislikers;constraint:OnDelete:CASCADE" json:"-"`
	Published       time.Time `gorm:"autoCreateTime;not null;index" json:"published"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (q *Question) Ref() Ref               { return Ref{Kind: KindQuestion, ID: q.ID} }
func (q *Question) Owner() int             { return q.AuthorID }
func (q *Question) PublishedAt() time.Time { return q.Published }
func (q *Question) Likes() int             { return len(q.Likers) }
func (q *Question) Dislikes() int          { return len(q.Dislikers) }
func (q *Question) Votes() int             { return q.Likes() - q.Dislikes() }

// AuthorUser returns the preloaded author.
func (q *Question) AuthorUser() User { return q.Author }

// Voters returns the preloaded likers and dislikers.
func (q *Question) Voters() (likers, dislikers []User) { return q.Likers, q.Dislikers }

// Vote applies a like or dislike from userID and returns the new vote count.
// Self-votes must be rejected by the caller.
func (q *Question) Vote(userID int, like bool) int {
	castVote(&q.Likers, &q.Dislikers, userID, like)
	return q.Votes()
}

// IsCorrect reports whether a is the answer chosen by the question's author.
func (q *Question) IsCorrect(a *Answer) bool {
	return q.CorrectAnswerID != nil && *q.CorrectAnswerID == a.ID
}

type CreateQuestionRequest struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
}

// UpdateQuestionRequest carries the editable fields of a question.
type UpdateQuestionRequest = CreateQuestionRequest
