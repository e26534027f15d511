package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionOption struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuestionID   uuid.UUID `gorm:"column:question_id;type:uuid;not null;index" json:"question_id"`
	OptionText   string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}

func (o *QuestionOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
