package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
)

type CreateOptionRequest struct {
	OptionText   string `json:"option_text"`
	DisplayOrder *int   `json:"display_order"`
}

type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text"`
	Type         string                `json:"type"`
	IsRequired   bool                  `json:"is_required"`
	DisplayOrder *int                  `json:"display_order"`
	Options      []CreateOptionRequest `json:"options"`
}

type CreateSurveyRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	StartDate   *time.Time              `json:"start_date"`
	EndDate     *time.Time              `json:"end_date"`
	Questions   []CreateQuestionRequest `json:"questions"`
}

type UpdateSurveyRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// SurveyService owns survey CRUD and the draft/published/closed state machine.
type SurveyService struct {
	store SurveyStore
	now   func() time.Time
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a draft survey with its nested questions and options as one
// atomic unit. Display order defaults to the 1-based input position; options
// are only kept for choice-based question types.
func (s *SurveyService) Create(req CreateSurveyRequest, creatorID uuid.UUID) (*SurveySummary, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, Validation("survey title is required")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, Validation("end date must be after start date")
	}

	survey := &models.Survey{
		Title:       title,
		Description: req.Description,
		Status:      models.SurveyStatusDraft,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatorID:   creatorID,
	}

	for i, qr := range req.Questions {
		if strings.TrimSpace(qr.QuestionText) == "" {
			return nil, Validation("question %d is missing its text", i+1)
		}
		if !models.IsKnownQuestionType(qr.Type) {
			return nil, Validation("question %d has unknown type %q", i+1, qr.Type)
		}

		question := models.Question{
			QuestionText: qr.QuestionText,
			Type:         qr.Type,
			IsRequired:   qr.IsRequired,
			DisplayOrder: orderOrIndex(qr.DisplayOrder, i),
		}
		if models.QuestionTypeHasOptions(qr.Type) {
			for j, or := range qr.Options {
				question.Options = append(question.Options, models.QuestionOption{
					OptionText:   or.OptionText,
					DisplayOrder: orderOrIndex(or.DisplayOrder, j),
				})
			}
		}
		survey.Questions = append(survey.Questions, question)
	}

	if err := s.store.CreateSurvey(survey); err != nil {
		return nil, Internal("failed to create survey", err)
	}
	return s.summarize(survey, len(req.Questions), 0)
}

// Get loads a survey with its creator and ordered questions/options.
func (s *SurveyService) Get(id uuid.UUID) (*models.Survey, error) {
	survey, err := s.store.GetSurveyDetail(id)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", id)
	}
	return survey, nil
}

// Update applies a partial update; only provided fields mutate.
func (s *SurveyService) Update(id uuid.UUID, req UpdateSurveyRequest) (*SurveySummary, error) {
	survey, err := s.store.GetSurveyDetail(id)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", id)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, Validation("survey title is required")
		}
		survey.Title = title
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}
	if req.StartDate != nil {
		survey.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		survey.EndDate = req.EndDate
	}
	if survey.StartDate != nil && survey.EndDate != nil && survey.EndDate.Before(*survey.StartDate) {
		return nil, Validation("end date must be after start date")
	}
	survey.UpdatedAt = s.now()

	if err := s.store.UpdateSurvey(survey); err != nil {
		return nil, Internal("failed to update survey", err)
	}
	return s.summarize(survey, len(survey.Questions), 0)
}

// Delete removes the survey; owned questions, options, tokens and responses
// go with it via cascade.
func (s *SurveyService) Delete(id uuid.UUID) error {
	survey, err := s.store.GetSurvey(id)
	if err != nil {
		return Internal("failed to load survey", err)
	}
	if survey == nil {
		return NotFound("survey %s not found", id)
	}
	if err := s.store.DeleteSurvey(id); err != nil {
		return Internal("failed to delete survey", err)
	}
	return nil
}

// Publish moves a draft survey to published. The survey needs at least one
// question; the start date is stamped only when unset.
func (s *SurveyService) Publish(id uuid.UUID) (*SurveySummary, error) {
	survey, err := s.store.GetSurveyDetail(id)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", id)
	}
	if survey.Status != models.SurveyStatusDraft {
		return nil, Conflict("only draft surveys can be published")
	}
	if len(survey.Questions) == 0 {
		return nil, Validation("survey must have at least one question to be published")
	}

	now := s.now()
	survey.Status = models.SurveyStatusPublished
	if survey.StartDate == nil {
		survey.StartDate = &now
	}
	survey.UpdatedAt = now

	if err := s.store.UpdateSurvey(survey); err != nil {
		return nil, Internal("failed to publish survey", err)
	}
	return s.summarize(survey, len(survey.Questions), 0)
}

// Close moves a published survey to closed. Closed is terminal.
func (s *SurveyService) Close(id uuid.UUID) (*SurveySummary, error) {
	survey, err := s.store.GetSurveyDetail(id)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", id)
	}
	if survey.Status != models.SurveyStatusPublished {
		return nil, Conflict("only published surveys can be closed")
	}

	survey.Status = models.SurveyStatusClosed
	survey.UpdatedAt = s.now()

	if err := s.store.UpdateSurvey(survey); err != nil {
		return nil, Internal("failed to close survey", err)
	}
	return s.summarize(survey, len(survey.Questions), 0)
}

// List returns a bounded page of survey summaries for the admin listing.
func (s *SurveyService) List(q SurveyQuery) (*SurveyPage, error) {
	q.Normalize()
	items, total, err := s.store.ListSurveys(q)
	if err != nil {
		return nil, Internal("failed to list surveys", err)
	}
	return NewSurveyPage(items, total, q.Page, q.PageSize), nil
}

// ListPublished returns the public page of currently active published surveys.
func (s *SurveyService) ListPublished(page, size int) (*SurveyPage, error) {
	q := SurveyQuery{Page: page, PageSize: size}
	q.Normalize()
	items, total, err := s.store.ListPublishedSurveys(s.now(), q.Page, q.PageSize)
	if err != nil {
		return nil, Internal("failed to list published surveys", err)
	}
	return NewSurveyPage(items, total, q.Page, q.PageSize), nil
}

func (s *SurveyService) summarize(survey *models.Survey, questionCount, responseCount int) (*SurveySummary, error) {
	name := ""
	if survey.Creator != nil {
		name = survey.Creator.FullName
	} else if admin, err := s.store.GetAdmin(survey.CreatorID); err == nil && admin != nil {
		name = admin.FullName
	}
	return &SurveySummary{
		ID:            survey.ID,
		Title:         survey.Title,
		Status:        survey.Status,
		CreatedByName: name,
		QuestionCount: questionCount,
		ResponseCount: responseCount,
		CreatedAt:     survey.CreatedAt,
	}, nil
}

func orderOrIndex(order *int, index int) int {
	if order != nil {
		return *order
	}
	return index + 1
}
