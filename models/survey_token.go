package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyToken struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID  `gorm:"column:survey_id;type:uuid;not null;index" json:"survey_id"`
	Token     string     `gorm:"column:token;size:64;uniqueIndex;not null" json:"token"`
	IsUsed    bool       `gorm:"column:is_used;not null;default:false;index" json:"is_used"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyToken) TableName() string {
	return "survey_tokens"
}

func (t *SurveyToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
