package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MohamedBenMassouda/Survey/models"
	"github.com/MohamedBenMassouda/Survey/services"
)

// Store is the GORM-backed implementation of every store interface the
// services consume. Multi-row writes run inside a single transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSurvey(id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *Store) GetSurveyDetail(id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.
		Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// CreateSurvey persists the survey graph (questions and their options) in one
// transaction; a failure anywhere rolls everything back.
func (s *Store) CreateSurvey(survey *models.Survey) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(survey).Error
	})
}

func (s *Store) UpdateSurvey(survey *models.Survey) error {
	return s.db.Model(&models.Survey{}).
		Where("id = ?", survey.ID).
		Updates(map[string]interface{}{
			"title":       survey.Title,
			"description": survey.Description,
			"status":      survey.Status,
			"start_date":  survey.StartDate,
			"end_date":    survey.EndDate,
			"updated_at":  survey.UpdatedAt,
		}).Error
}

func (s *Store) DeleteSurvey(id uuid.UUID) error {
	return s.db.Delete(&models.Survey{}, "id = ?", id).Error
}

const surveySummarySelect = `surveys.id, surveys.title, surveys.status, surveys.created_at,
	admins.full_name AS created_by_name,
	(SELECT COUNT(*) FROM questions WHERE questions.survey_id = surveys.id) AS question_count,
	(SELECT COUNT(*) FROM survey_responses WHERE survey_responses.survey_id = surveys.id AND survey_responses.is_completed) AS response_count`

// ListSurveys applies the normalized query: conjunctive optional filters,
// case-insensitive search over title/description, allow-listed ordering, and
// the total count taken before pagination.
func (s *Store) ListSurveys(q services.SurveyQuery) ([]services.SurveySummary, int64, error) {
	filtered := func() *gorm.DB {
		db := s.db.Model(&models.Survey{})
		if q.Status != nil {
			db = db.Where("surveys.status = ?", *q.Status)
		}
		if q.CreatorID != nil {
			db = db.Where("surveys.creator_id = ?", *q.CreatorID)
		}
		if q.StartDateFrom != nil {
			db = db.Where("surveys.start_date >= ?", *q.StartDateFrom)
		}
		if q.StartDateTo != nil {
			db = db.Where("surveys.start_date <= ?", *q.StartDateTo)
		}
		if q.Search != "" {
			pattern := "%" + q.Search + "%"
			db = db.Where("surveys.title ILIKE ? OR surveys.description ILIKE ?", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if q.SortAscending {
		direction = "ASC"
	}

	var items []services.SurveySummary
	err := filtered().
		Select(surveySummarySelect).
		Joins("LEFT JOIN admins ON admins.id = surveys.creator_id").
		Order("surveys." + q.SortBy + " " + direction).
		Limit(q.PageSize).
		Offset(q.Offset()).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListPublishedSurveys returns the public listing of published surveys whose
// active window contains now.
func (s *Store) ListPublishedSurveys(now time.Time, page, size int) ([]services.SurveySummary, int64, error) {
	filtered := func() *gorm.DB {
		return s.db.Model(&models.Survey{}).
			Where("surveys.status = ?", models.SurveyStatusPublished).
			Where("surveys.start_date IS NULL OR surveys.start_date <= ?", now).
			Where("surveys.end_date IS NULL OR surveys.end_date >= ?", now)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []services.SurveySummary
	err := filtered().
		Select(surveySummarySelect).
		Joins("LEFT JOIN admins ON admins.id = surveys.creator_id").
		Order("surveys.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) CreateTokens(tokens []*models.SurveyToken) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tokens).Error
	})
}

func (s *Store) GetTokenByValue(token string) (*models.SurveyToken, error) {
	var t models.SurveyToken
	err := s.db.First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CountTokens(surveyID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.SurveyToken{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (s *Store) CountQuestions(surveyID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Question{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (s *Store) GetResponseByToken(tokenID uuid.UUID) (*models.SurveyResponse, error) {
	var r models.SurveyResponse
	err := s.db.First(&r, "token_id = ?", tokenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateResponse(response *models.SurveyResponse) error {
	return s.db.Create(response).Error
}

// CompleteResponse writes the completed response, its answers with their
// selected options, and the token used-flag in one transaction. The token
// update is guarded on is_used so a concurrent redemption loses cleanly.
func (s *Store) CompleteResponse(response *models.SurveyResponse, answers []*models.Answer, token *models.SurveyToken) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if response.ID == uuid.Nil {
			if err := tx.Create(response).Error; err != nil {
				return err
			}
		} else {
			err := tx.Model(&models.SurveyResponse{}).
				Where("id = ?", response.ID).
				Updates(map[string]interface{}{
					"is_completed": response.IsCompleted,
					"completed_at": response.CompletedAt,
				}).Error
			if err != nil {
				return err
			}
		}

		for _, answer := range answers {
			answer.ResponseID = response.ID
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.SurveyToken{}).
			Where("id = ? AND is_used = ?", token.ID, false).
			Updates(map[string]interface{}{
				"is_used": true,
				"used_at": token.UsedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrTokenAlreadyConsumed
		}
		return nil
	})
}

func (s *Store) ListCompletedResponses(surveyID uuid.UUID) ([]models.SurveyResponse, error) {
	var responses []models.SurveyResponse
	err := s.db.
		Where("survey_id = ? AND is_completed = ?", surveyID, true).
		Find(&responses).Error
	return responses, err
}

func (s *Store) GetAdmin(id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Store) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Store) CreateAdmin(admin *models.Admin) error {
	return s.db.Create(admin).Error
}
