package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Store) questions(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Question{}).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Likers").
		Preload("Dislikers")
}

func (s *Store) answers(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Answer{}).
		Preload("Author").
		Preload("Likers").
		Preload("Dislikers")
}

func (s *Store) ListQuestions(ctx context.Context, filter service.QuestionFilter) ([]*models.Question, error) {
	q := s.questions(ctx)

	if filter.Tag != "" {
		tagged := s.db.WithContext(ctx).
			Table("question_tags").
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
		q = q.Where("questions.id IN (?)", tagged)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		q = q.Where("(questions.title ILIKE ? OR questions.text ILIKE ?)", pattern, pattern)
	}

	out := []*models.Question{}
	if err := q.Order("questions.published desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	var q models.Question
	if err := s.questions(ctx).First(&q, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

func (s *Store) ListAnswers(ctx context.Context, questionID int) ([]*models.Answer, error) {
	out := []*models.Answer{}
	err := s.answers(ctx).
		Where("question_id = ?", questionID).
		Order("published desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetAnswer(ctx context.Context, id int) (*models.Answer, error) {
	var a models.Answer
	if err := s.answers(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// CreateQuestion inserts q and links it to the named tags, creating any
// that do not exist yet.
func (s *Store) CreateQuestion(ctx context.Context, q *models.Question, tags []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q.Tags = nil
		for _, name := range tags {
			tag, err := getOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			q.Tags = append(q.Tags, *tag)
		}
		return tx.Omit("Author", "Likers", "Dislikers", "Answers", "Tags.*").Create(q).Error
	})
}

// UpdateQuestion rewrites title, text and tags. Published and the voter
// tables are left alone.
func (s *Store) UpdateQuestion(ctx context.Context, q *models.Question, tags []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Question{}).
			Where("id = ?", q.ID).
			Updates(map[string]any{"title": q.Title, "text": q.Text})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return service.ErrNotFound
		}

		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", q.ID).Error; err != nil {
			return err
		}
		for _, name := range tags {
			tag, err := getOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			if err := tx.Exec("INSERT INTO question_tags (question_id, tag_id) VALUES (?, ?)", q.ID, tag.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) error {
	return s.db.WithContext(ctx).Omit("Author", "Likers", "Dislikers").Create(a).Error
}

// SetCorrectAnswer points the question at one of its own answers.
func (s *Store) SetCorrectAnswer(ctx context.Context, questionID, answerID int) error {
	res := s.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ? AND EXISTS (SELECT 1 FROM answers WHERE answers.id = ? AND answers.question_id = questions.id)", questionID, answerID).
		Update("correct_answer_id", answerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// DeleteQuestion removes the question; answers and voter rows go with it
// through ON DELETE CASCADE.
func (s *Store) DeleteQuestion(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *Store) FindTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, notFound(err)
	}
	return &tag, nil
}

func (s *Store) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	return getOrCreateTag(s.db.WithContext(ctx), name)
}

func getOrCreateTag(db *gorm.DB, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag).Error
	if err != nil {
		return nil, err
	}
	if tag.ID == 0 {
		if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, err
		}
	}
	return &tag, nil
}
