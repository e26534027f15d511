package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
)

type SubmitAnswerRequest struct {
	QuestionID        uuid.UUID   `json:"question_id"`
	AnswerText        string      `json:"answer_text"`
	SelectedOptionIDs []uuid.UUID `json:"selected_option_ids"`
}

type SubmitResponseRequest struct {
	Token   string                `json:"token"`
	Answers []SubmitAnswerRequest `json:"answers"`
}

type ResponseReceipt struct {
	ResponseID  uuid.UUID `json:"response_id"`
	SurveyID    uuid.UUID `json:"survey_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// ResponseService redeems single-use tokens and collects anonymous responses.
// A token is consumed only when a completed submission commits; starting a
// response leaves it redeemable.
type ResponseService struct {
	store ResponseStore
	now   func() time.Time
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Start validates the token and returns the survey the respondent may answer,
// recording when they began. Repeated calls with the same unused token reuse
// the existing response row.
func (s *ResponseService) Start(tokenValue string) (*models.Survey, error) {
	token, survey, err := s.validateToken(tokenValue)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetResponseByToken(token.ID)
	if err != nil {
		return nil, Internal("failed to load response", err)
	}
	if existing == nil {
		response := &models.SurveyResponse{
			SurveyID:  survey.ID,
			TokenID:   token.ID,
			StartedAt: s.now(),
		}
		if err := s.store.CreateResponse(response); err != nil {
			return nil, Internal("failed to start response", err)
		}
	}
	return survey, nil
}

// Submit validates the token and the answer set, persists the completed
// response with its answers, and consumes the token — all in one transaction.
func (s *ResponseService) Submit(req SubmitResponseRequest) (*ResponseReceipt, error) {
	token, survey, err := s.validateToken(req.Token)
	if err != nil {
		return nil, err
	}

	questions := make(map[uuid.UUID]*models.Question, len(survey.Questions))
	optionSets := make(map[uuid.UUID]map[uuid.UUID]bool, len(survey.Questions))
	for i := range survey.Questions {
		q := &survey.Questions[i]
		questions[q.ID] = q
		set := make(map[uuid.UUID]bool, len(q.Options))
		for _, opt := range q.Options {
			set[opt.ID] = true
		}
		optionSets[q.ID] = set
	}

	byQuestion := make(map[uuid.UUID]SubmitAnswerRequest, len(req.Answers))
	for _, a := range req.Answers {
		if _, ok := questions[a.QuestionID]; !ok {
			return nil, Validation("question %s does not belong to this survey", a.QuestionID)
		}
		for _, optID := range a.SelectedOptionIDs {
			if !optionSets[a.QuestionID][optID] {
				return nil, Validation("option %s does not belong to question %s", optID, a.QuestionID)
			}
		}
		byQuestion[a.QuestionID] = a
	}

	var missing []string
	for i := range survey.Questions {
		q := &survey.Questions[i]
		if !q.IsRequired {
			continue
		}
		a, ok := byQuestion[q.ID]
		if !ok || !answerHasContent(a) {
			missing = append(missing, q.ID.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &Error{
			Kind:    KindValidation,
			Message: "required questions are missing answers",
			Details: missing,
		}
	}

	now := s.now()
	response, err := s.store.GetResponseByToken(token.ID)
	if err != nil {
		return nil, Internal("failed to load response", err)
	}
	if response == nil {
		response = &models.SurveyResponse{
			SurveyID:  survey.ID,
			TokenID:   token.ID,
			StartedAt: now,
		}
	}
	response.IsCompleted = true
	response.CompletedAt = &now

	answers := make([]*models.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answer := &models.Answer{
			QuestionID: a.QuestionID,
			AnswerText: a.AnswerText,
		}
		for _, optID := range a.SelectedOptionIDs {
			answer.SelectedOptions = append(answer.SelectedOptions, models.AnswerOption{QuestionOptionID: optID})
		}
		answers = append(answers, answer)
	}

	token.IsUsed = true
	token.UsedAt = &now

	if err := s.store.CompleteResponse(response, answers, token); err != nil {
		if errors.Is(err, ErrTokenAlreadyConsumed) {
			return nil, Conflict("token has already been used")
		}
		return nil, Internal("failed to save response", err)
	}

	return &ResponseReceipt{
		ResponseID:  response.ID,
		SurveyID:    survey.ID,
		CompletedAt: now,
	}, nil
}

// validateToken enforces the redemption preconditions with a distinct error
// per condition: unknown token, consumed token, survey outside its window.
func (s *ResponseService) validateToken(tokenValue string) (*models.SurveyToken, *models.Survey, error) {
	if strings.TrimSpace(tokenValue) == "" {
		return nil, nil, Validation("token is required")
	}
	token, err := s.store.GetTokenByValue(tokenValue)
	if err != nil {
		return nil, nil, Internal("failed to look up token", err)
	}
	if token == nil {
		return nil, nil, NotFound("token not found")
	}
	if token.IsUsed {
		return nil, nil, Conflict("token has already been used")
	}

	survey, err := s.store.GetSurveyDetail(token.SurveyID)
	if err != nil {
		return nil, nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, nil, NotFound("survey %s not found", token.SurveyID)
	}
	if !survey.ActiveAt(s.now()) {
		return nil, nil, Conflict("survey is not accepting responses")
	}
	return token, survey, nil
}

func answerHasContent(a SubmitAnswerRequest) bool {
	return strings.TrimSpace(a.AnswerText) != "" || len(a.SelectedOptionIDs) > 0
}
