package mail

import (
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers HTML email over SMTP. It satisfies services.Mailer.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewSMTPMailer(host string, port int, username, password, senderEmail, senderName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.senderEmail, m.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
