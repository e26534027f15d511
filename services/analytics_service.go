package services

import (
	"github.com/google/uuid"
)

type SurveyAnalytics struct {
	SurveyID              uuid.UUID `json:"survey_id"`
	SurveyTitle           string    `json:"survey_title"`
	TotalQuestions        int       `json:"total_questions"`
	TokensGenerated       int       `json:"tokens_generated"`
	TotalResponses        int       `json:"total_responses"`
	ResponseRate          float64   `json:"response_rate"`
	AverageCompletionTime float64   `json:"average_completion_time"`
}

// AnalyticsService computes response-rate and completion-time aggregates.
type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Get returns the survey's aggregate numbers. Response rate is completed
// responses over tokens generated as a percentage, 0 when no tokens exist;
// average completion time is in minutes, 0 when nothing has completed.
func (s *AnalyticsService) Get(surveyID uuid.UUID) (*SurveyAnalytics, error) {
	survey, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", surveyID)
	}

	questionCount, err := s.store.CountQuestions(surveyID)
	if err != nil {
		return nil, Internal("failed to count questions", err)
	}
	tokenCount, err := s.store.CountTokens(surveyID)
	if err != nil {
		return nil, Internal("failed to count tokens", err)
	}
	completed, err := s.store.ListCompletedResponses(surveyID)
	if err != nil {
		return nil, Internal("failed to load responses", err)
	}

	rate := 0.0
	if tokenCount > 0 {
		rate = float64(len(completed)) / float64(tokenCount) * 100
	}

	totalMinutes := 0.0
	timed := 0
	for _, r := range completed {
		if r.CompletedAt == nil {
			continue
		}
		totalMinutes += r.CompletedAt.Sub(r.StartedAt).Minutes()
		timed++
	}
	avg := 0.0
	if timed > 0 {
		avg = totalMinutes / float64(timed)
	}

	return &SurveyAnalytics{
		SurveyID:              survey.ID,
		SurveyTitle:           survey.Title,
		TotalQuestions:        int(questionCount),
		TokensGenerated:       int(tokenCount),
		TotalResponses:        len(completed),
		ResponseRate:          rate,
		AverageCompletionTime: avg,
	}, nil
}
