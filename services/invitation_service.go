package services

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MohamedBenMassouda/Survey/models"
	"github.com/MohamedBenMassouda/Survey/utils"
)

// maxConcurrentSends caps the invitation fan-out so a large recipient list
// cannot open an unbounded number of SMTP conversations at once.
const maxConcurrentSends = 8

type SendInvitationsRequest struct {
	SurveyID        uuid.UUID `json:"survey_id"`
	RecipientEmails []string  `json:"recipient_emails"`
	CustomMessage   string    `json:"custom_message"`
}

type InvitationError struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type InvitationResult struct {
	TotalInvitations int               `json:"total_invitations"`
	Successful       []string          `json:"successful_invitations"`
	Failed           []InvitationError `json:"failed_invitations"`
}

// InvitationService generates one token per valid recipient and emails each
// an invitation link. One bad recipient never blocks the others: syntax and
// send failures are recorded per recipient, and the batch itself fails only
// when nothing can proceed at all.
type InvitationService struct {
	store  TokenStore
	mailer Mailer
}

func NewInvitationService(store TokenStore, mailer Mailer) *InvitationService {
	return &InvitationService{store: store, mailer: mailer}
}

// Send dispatches the invitation batch. Tokens for all valid recipients are
// committed in one transaction before any email leaves, so a send failure
// never orphans the batch; an unsent token simply stays redeemable.
func (s *InvitationService) Send(req SendInvitationsRequest, baseURL string) (*InvitationResult, error) {
	survey, err := s.store.GetSurvey(req.SurveyID)
	if err != nil {
		return nil, Internal("failed to load survey", err)
	}
	if survey == nil {
		return nil, NotFound("survey %s not found", req.SurveyID)
	}
	if survey.Status != models.SurveyStatusPublished {
		return nil, Validation("survey must be published to send invitations")
	}
	if len(req.RecipientEmails) == 0 {
		return nil, Validation("at least one recipient email is required")
	}

	result := &InvitationResult{
		TotalInvitations: len(req.RecipientEmails),
		Successful:       []string{},
		Failed:           []InvitationError{},
	}

	type pendingSend struct {
		email string
		token string
	}
	var pending []pendingSend
	var tokens []*models.SurveyToken

	for _, email := range req.RecipientEmails {
		if !isValidEmail(email) {
			result.Failed = append(result.Failed, InvitationError{Email: email, Reason: "Invalid email format"})
			continue
		}
		value, err := utils.GenerateSecureToken()
		if err != nil {
			result.Failed = append(result.Failed, InvitationError{Email: email, Reason: "Token generation failed"})
			continue
		}
		tokens = append(tokens, &models.SurveyToken{SurveyID: req.SurveyID, Token: value})
		pending = append(pending, pendingSend{email: email, token: value})
	}

	if len(pending) == 0 {
		return nil, Validation("failed to generate tokens for any recipient")
	}
	if err := s.store.CreateTokens(tokens); err != nil {
		return nil, Internal("failed to save invitation tokens", err)
	}

	surveyLink := fmt.Sprintf("%s/surveys/%s", strings.TrimRight(baseURL, "/"), survey.ID)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentSends)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			subject, body, err := BuildInvitationEmail(survey.Title, surveyLink, p.token, req.CustomMessage)
			if err == nil {
				err = s.mailer.Send(p.email, subject, body)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("invitation send to %s failed: %v", p.email, err)
				result.Failed = append(result.Failed, InvitationError{Email: p.email, Reason: categorizeSendError(err)})
			} else {
				result.Successful = append(result.Successful, p.email)
			}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// categorizeSendError maps provider failures that only an administrator can
// fix to actionable messages; anything else passes through as-is.
func categorizeSendError(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "key not found") || strings.Contains(lower, "configuration"):
		return "Email service configuration error. Please contact administrator."
	case strings.Contains(lower, "unauthorized") || strings.Contains(lower, "authentication"):
		return "Email service authentication failed. Please contact administrator."
	case strings.Contains(lower, "invalid sender") || strings.Contains(lower, "sender not verified"):
		return "Sender email not verified. Please contact administrator."
	}
	return msg
}
