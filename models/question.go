package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeText           = "text"
	QuestionTypeCheckbox       = "checkbox"
	QuestionTypeRating         = "rating"
	QuestionTypeYesNo          = "yes_no"
	QuestionTypeDropdown       = "dropdown"
	QuestionTypeScale          = "scale"
)

type Question struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SurveyID     uuid.UUID `gorm:"column:survey_id;type:uuid;not null;index" json:"survey_id"`
	QuestionText string    `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Type         string    `gorm:"column:type;size:50;not null;index" json:"type"`
	IsRequired   bool      `gorm:"column:is_required;not null;default:false" json:"is_required"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// IsKnownQuestionType reports whether t is one of the supported question types.
func IsKnownQuestionType(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeText, QuestionTypeCheckbox,
		QuestionTypeRating, QuestionTypeYesNo, QuestionTypeDropdown, QuestionTypeScale:
		return true
	}
	return false
}

// QuestionTypeHasOptions reports whether the type carries answer options.
func QuestionTypeHasOptions(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCheckbox, QuestionTypeDropdown, QuestionTypeScale:
		return true
	}
	return false
}
