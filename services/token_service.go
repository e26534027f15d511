package services

import (
	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
	"github.com/MohamedBenMassouda/Survey/utils"
)

// TokenService issues single-use access tokens for published surveys.
type TokenService struct {
	store TokenStore
}

func NewTokenService(store TokenStore) *TokenService {
	return &TokenService{store: store}
}

// Generate creates count cryptographically random tokens for the survey and
// persists the batch in one transaction. Uniqueness rides on the entropy
// source; collisions are not retried.
func (s *TokenService) Generate(surveyID uuid.UUID, count int) ([]string, error) {
	if count < 1 {
		return nil, Validation("token count must be at least 1")
	}

	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", surveyID)
	}
	if survey.Status != models.SurveyStatusPublished {
		return nil, Validation("survey must be published to generate tokens")
	}

	values := make([]string, 0, count)
	tokens := make([]*models.SurveyToken, 0, count)
	for i := 0; i < count; i++ {
		value, err := utils.GenerateSecureToken()
		if err != nil {
			return nil, Internal("failed to generate token", err)
		}
		values = append(values, value)
		tokens = append(tokens, &models.SurveyToken{SurveyID: surveyID, Token: value})
	}

	if err := s.store.CreateTokens(tokens); err != nil {
		return nil, Internal("failed to save tokens", err)
	}
	return values, nil
}
