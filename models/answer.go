package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Answer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ResponseID uuid.UUID `gorm:"column:response_id;type:uuid;not null;index" json:"response_id"`
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;not null;index" json:"question_id"`
	AnswerText string    `gorm:"column:answer_text;type:text" json:"answer_text"`

	SelectedOptions []AnswerOption `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"selected_options"`
}

func (Answer) TableName() string {
	return "answers"
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
