package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
)

// stubStore is an in-memory implementation of every store interface. Reads
// return copies so services mutate rows only through explicit writes, the way
// a real database would behave.
type stubStore struct {
	surveys   map[uuid.UUID]*models.Survey
	admins    map[uuid.UUID]*models.Admin
	tokens    map[string]*models.SurveyToken
	responses map[uuid.UUID]*models.SurveyResponse // keyed by token id
	answers   []*models.Answer

	createSurveyErr error
	createTokensErr error
}

func newStubStore() *stubStore {
	return &stubStore{
		surveys:   make(map[uuid.UUID]*models.Survey),
		admins:    make(map[uuid.UUID]*models.Admin),
		tokens:    make(map[string]*models.SurveyToken),
		responses: make(map[uuid.UUID]*models.SurveyResponse),
	}
}

func (s *stubStore) addAdmin(name, email string) *models.Admin {
	admin := &models.Admin{ID: uuid.New(), Email: email, FullName: name, IsActive: true}
	s.admins[admin.ID] = admin
	return admin
}

func (s *stubStore) GetSurvey(id uuid.UUID) (*models.Survey, error) {
	survey, ok := s.surveys[id]
	if !ok {
		return nil, nil
	}
	cp := *survey
	return &cp, nil
}

func (s *stubStore) GetSurveyDetail(id uuid.UUID) (*models.Survey, error) {
	return s.GetSurvey(id)
}

func (s *stubStore) CreateSurvey(survey *models.Survey) error {
	if s.createSurveyErr != nil {
		return s.createSurveyErr
	}
	if survey.ID == uuid.Nil {
		survey.ID = uuid.New()
	}
	for i := range survey.Questions {
		q := &survey.Questions[i]
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		q.SurveyID = survey.ID
		for j := range q.Options {
			opt := &q.Options[j]
			if opt.ID == uuid.Nil {
				opt.ID = uuid.New()
			}
			opt.QuestionID = q.ID
		}
	}
	cp := *survey
	s.surveys[survey.ID] = &cp
	return nil
}

func (s *stubStore) UpdateSurvey(survey *models.Survey) error {
	cp := *survey
	s.surveys[survey.ID] = &cp
	return nil
}

func (s *stubStore) DeleteSurvey(id uuid.UUID) error {
	delete(s.surveys, id)
	return nil
}

func (s *stubStore) ListSurveys(q SurveyQuery) ([]SurveySummary, int64, error) {
	summaries := s.summaries()
	return pageOf(summaries, q.Offset(), q.PageSize), int64(len(summaries)), nil
}

func (s *stubStore) ListPublishedSurveys(now time.Time, page, size int) ([]SurveySummary, int64, error) {
	var summaries []SurveySummary
	for _, survey := range s.surveys {
		if survey.ActiveAt(now) {
			summaries = append(summaries, SurveySummary{ID: survey.ID, Title: survey.Title, Status: survey.Status})
		}
	}
	return pageOf(summaries, (page-1)*size, size), int64(len(summaries)), nil
}

func (s *stubStore) summaries() []SurveySummary {
	var out []SurveySummary
	for _, survey := range s.surveys {
		out = append(out, SurveySummary{
			ID:            survey.ID,
			Title:         survey.Title,
			Status:        survey.Status,
			QuestionCount: len(survey.Questions),
			CreatedAt:     survey.CreatedAt,
		})
	}
	return out
}

func pageOf(items []SurveySummary, offset, size int) []SurveySummary {
	if offset >= len(items) {
		return nil
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *stubStore) GetAdmin(id uuid.UUID) (*models.Admin, error) {
	admin, ok := s.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *admin
	return &cp, nil
}

func (s *stubStore) GetAdminByEmail(email string) (*models.Admin, error) {
	for _, admin := range s.admins {
		if admin.Email == email {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) CreateAdmin(admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

func (s *stubStore) CreateTokens(tokens []*models.SurveyToken) error {
	if s.createTokensErr != nil {
		return s.createTokensErr
	}
	for _, t := range tokens {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		cp := *t
		s.tokens[t.Token] = &cp
	}
	return nil
}

func (s *stubStore) GetTokenByValue(token string) (*models.SurveyToken, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *stubStore) CountTokens(surveyID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range s.tokens {
		if t.SurveyID == surveyID {
			count++
		}
	}
	return count, nil
}

func (s *stubStore) CountQuestions(surveyID uuid.UUID) (int64, error) {
	survey, ok := s.surveys[surveyID]
	if !ok {
		return 0, nil
	}
	return int64(len(survey.Questions)), nil
}

func (s *stubStore) GetResponseByToken(tokenID uuid.UUID) (*models.SurveyResponse, error) {
	r, ok := s.responses[tokenID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *stubStore) CreateResponse(response *models.SurveyResponse) error {
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	cp := *response
	s.responses[response.TokenID] = &cp
	return nil
}

func (s *stubStore) CompleteResponse(response *models.SurveyResponse, answers []*models.Answer, token *models.SurveyToken) error {
	stored := s.tokens[token.Token]
	if stored == nil {
		return ErrTokenAlreadyConsumed
	}
	if stored.IsUsed {
		return ErrTokenAlreadyConsumed
	}

	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	cp := *response
	s.responses[response.TokenID] = &cp

	for _, a := range answers {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.ResponseID = response.ID
		s.answers = append(s.answers, a)
	}

	stored.IsUsed = true
	stored.UsedAt = token.UsedAt
	return nil
}

func (s *stubStore) ListCompletedResponses(surveyID uuid.UUID) ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	for _, r := range s.responses {
		if r.SurveyID == surveyID && r.IsCompleted {
			out = append(out, *r)
		}
	}
	return out, nil
}

// stubMailer records sends; the invitation service fans out concurrently, so
// it is mutex-guarded.
type stubMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
