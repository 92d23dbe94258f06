package models

type Tag struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Questions []Question `gorm:"many2many:question_tags" json:"-"`
}
