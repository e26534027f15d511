package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerOption struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AnswerID         uuid.UUID `gorm:"column:answer_id;type:uuid;not null;index" json:"answer_id"`
	QuestionOptionID uuid.UUID `gorm:"column:question_option_id;type:uuid;not null" json:"question_option_id"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}

func (o *AnswerOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
