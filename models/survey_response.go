package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyResponse struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SurveyID    uuid.UUID  `gorm:"column:survey_id;type:uuid;not null;index" json:"survey_id"`
	TokenID     uuid.UUID  `gorm:"column:token_id;type:uuid;not null;uniqueIndex" json:"token_id"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false;index" json:"is_completed"`
	StartedAt   time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
