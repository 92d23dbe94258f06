package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
	"github.com/emilythestrangee/hasker/backend/internal/voting"
)

// voterTables names the entity table and its two join tables. These match
// the many2many tags on models.Question and models.Answer.
type voterTables struct {
	entity    string
	likers    string
	dislikers string
	fk        string
	load      func(id int, likers, dislikers []models.User) models.Votable
}

var tablesByKind = map[models.Kind]voterTables{
	models.KindQuestion: {
		entity: "questions", likers: "question_likers", dislikers: "question_dislikers", fk: "question_id",
		load: func(id int, likers, dislikers []models.User) models.Votable {
			return &models.Question{ID: id, Likers: likers, Dislikers: dislikers}
		},
	},
	models.KindAnswer: {
		entity: "answers", likers: "answer_likers", dislikers: "answer_dislikers", fk: "answer_id",
		load: func(id int, likers, dislikers []models.User) models.Votable {
			return &models.Answer{ID: id, Likers: likers, Dislikers: dislikers}
		},
	},
}

func (s *Store) FindVotable(ctx context.Context, ref models.Ref) (models.Votable, error) {
	switch ref.Kind {
	case models.KindQuestion:
		return s.GetQuestion(ctx, ref.ID)
	case models.KindAnswer:
		return s.GetAnswer(ctx, ref.ID)
	}
	return nil, service.ErrNotFound
}

// CastVote locks the entity row for the length of one transaction, applies
// the vote through the entity and writes back the join rows that changed.
// Votes on other entities are not blocked.
func (s *Store) CastVote(ctx context.Context, ref models.Ref, userID int, like bool) (int, error) {
	t, ok := tablesByKind[ref.Kind]
	if !ok {
		return 0, service.ErrNotFound
	}

	var votes int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct{ ID int }
		err := tx.Table(t.entity).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", ref.ID).
			Take(&row).Error
		if err != nil {
			return notFound(err)
		}

		likers, err := voters(tx, t.likers, t.fk, ref.ID)
		if err != nil {
			return err
		}
		dislikers, err := voters(tx, t.dislikers, t.fk, ref.ID)
		if err != nil {
			return err
		}

		target := t.load(ref.ID, likers, dislikers)
		prev := models.Ballot(target.Voters()).StanceOf(userID)
		votes = target.Vote(userID, like)
		next := models.Ballot(target.Voters()).StanceOf(userID)

		if err := writeMembership(tx, t.likers, t.fk, ref.ID, userID, prev == voting.Liked, next == voting.Liked); err != nil {
			return err
		}
		return writeMembership(tx, t.dislikers, t.fk, ref.ID, userID, prev == voting.Disliked, next == voting.Disliked)
	})
	if err != nil {
		return 0, err
	}
	return votes, nil
}

func voters(tx *gorm.DB, table, fk string, id int) ([]models.User, error) {
	var ids []int
	if err := tx.Table(table).Where(fk+" = ?", id).Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, len(ids))
	for i, uid := range ids {
		users[i] = models.User{ID: uid}
	}
	return users, nil
}

func writeMembership(tx *gorm.DB, table, fk string, id, userID int, was, want bool) error {
	switch {
	case was && !want:
		return tx.Exec("DELETE FROM "+table+" WHERE "+fk+" = ? AND user_id = ?", id, userID).Error
	case !was && want:
		return tx.Exec("INSERT INTO "+table+" ("+fk+", user_id) VALUES (?, ?)", id, userID).Error
	}
	return nil
}
