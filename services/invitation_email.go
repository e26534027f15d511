package services

import (
	"fmt"
	"html/template"
	"strings"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; }
        .button {
            display: inline-block;
            padding: 12px 30px;
            background-color: #4CAF50;
            color: white;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Survey Invitation</h1>
        </div>
        <div class="content">
            <h2>{{.SurveyTitle}}</h2>
            <p>Hello,</p>
            <p>You have been invited to participate in our survey. Your feedback is valuable to us and will help improve our services.</p>
{{- if .CustomMessage}}
            <p>{{.CustomMessage}}</p>
{{- end}}
            <p>Click the button below to get started:</p>
            <div style="text-align: center;">
                <a href="{{.Link}}" class="button">Take Survey</a>
            </div>
            <p>Or copy and paste this link into your browser:</p>
            <p style="word-break: break-all; background-color: #eee; padding: 10px;">{{.Link}}</p>
            <p>Thank you for your time!</p>
        </div>
        <div class="footer">
            <p>This is an automated email. Please do not reply to this message.</p>
        </div>
    </div>
</body>
</html>`))

// BuildInvitationEmail renders the invitation subject and HTML body. The
// personalized link carries the recipient's single-use token as a query
// parameter.
func BuildInvitationEmail(surveyTitle, surveyLink, token, customMessage string) (subject, body string, err error) {
	subject = fmt.Sprintf("You're invited to participate: %s", surveyTitle)

	data := struct {
		SurveyTitle   string
		CustomMessage string
		Link          string
	}{
		SurveyTitle:   surveyTitle,
		CustomMessage: strings.TrimSpace(customMessage),
		Link:          fmt.Sprintf("%s?token=%s", surveyLink, token),
	}

	var sb strings.Builder
	if err := invitationTemplate.Execute(&sb, data); err != nil {
		return "", "", err
	}
	return subject, sb.String(), nil
}
