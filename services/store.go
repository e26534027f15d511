package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
)

// ErrTokenAlreadyConsumed is returned by store implementations when a
// completed submission races another redemption of the same token.
var ErrTokenAlreadyConsumed = errors.New("token already consumed")

// Store methods that look up a single record return (nil, nil) when no record
// exists; services translate that into their typed not-found failures.

// SurveyStore is the persistence surface of the survey lifecycle manager.
// CreateSurvey persists the survey together with its nested questions and
// options as one atomic unit.
type SurveyStore interface {
	GetSurvey(id uuid.UUID) (*models.Survey, error)
	GetSurveyDetail(id uuid.UUID) (*models.Survey, error)
	CreateSurvey(survey *models.Survey) error
	UpdateSurvey(survey *models.Survey) error
	DeleteSurvey(id uuid.UUID) error
	ListSurveys(q SurveyQuery) ([]SurveySummary, int64, error)
	ListPublishedSurveys(now time.Time, page, size int) ([]SurveySummary, int64, error)
	GetAdmin(id uuid.UUID) (*models.Admin, error)
}

// TokenStore backs token issuance and invitation dispatch. CreateTokens
// persists the whole batch in one transaction.
type TokenStore interface {
	GetSurvey(id uuid.UUID) (*models.Survey, error)
	CreateTokens(tokens []*models.SurveyToken) error
}

// ResponseStore backs token redemption and answer submission.
// CompleteResponse persists the response, its answers (with selected
// options), and the token used-flag update in one transaction; it returns
// ErrTokenAlreadyConsumed when the token was used concurrently.
type ResponseStore interface {
	GetTokenByValue(token string) (*models.SurveyToken, error)
	GetSurveyDetail(id uuid.UUID) (*models.Survey, error)
	GetResponseByToken(tokenID uuid.UUID) (*models.SurveyResponse, error)
	CreateResponse(response *models.SurveyResponse) error
	CompleteResponse(response *models.SurveyResponse, answers []*models.Answer, token *models.SurveyToken) error
}

// AnalyticsStore provides the aggregates the analytics service reads.
type AnalyticsStore interface {
	GetSurvey(id uuid.UUID) (*models.Survey, error)
	CountQuestions(surveyID uuid.UUID) (int64, error)
	CountTokens(surveyID uuid.UUID) (int64, error)
	ListCompletedResponses(surveyID uuid.UUID) ([]models.SurveyResponse, error)
}

// AdminStore backs admin provisioning and authentication.
type AdminStore interface {
	GetAdmin(id uuid.UUID) (*models.Admin, error)
	GetAdminByEmail(email string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
}

// Mailer is the outbound email capability. Send failures surface
// per-recipient and never abort an invitation batch.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
