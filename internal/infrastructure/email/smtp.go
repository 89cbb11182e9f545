package email

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/supportdesk/supportdesk/internal/shared/config"
)

// ReplyNotice describes a support reply the ticket owner should hear about.
type ReplyNotice struct {
	TicketID    string
	TicketTitle string
	OwnerName   string
	OwnerEmail  string
	AgentName   string
	Content     string
}

// HTMLRenderer turns message markdown into sanitized HTML.
type HTMLRenderer interface {
	Render(markdown string) string
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config   config.EmailConfig
	sender   mailSender
	renderer HTMLRenderer
}

func NewSMTPEmailService(cfg config.EmailConfig, renderer HTMLRenderer) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		config:   cfg,
		sender:   dialer,
		renderer: renderer,
	}
}

// SendReplyNotification mails the ticket owner a copy of a support reply.
func (s *SMTPEmailService) SendReplyNotification(notice ReplyNotice) error {
	if notice.OwnerEmail == "" {
		return fmt.Errorf("ticket %s has no owner email", notice.TicketID)
	}

	subject := fmt.Sprintf("New reply on \"%s\"", notice.TicketTitle)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>%s from the support team replied to your ticket <strong>%s</strong>:</p>
			<blockquote>%s</blockquote>
			<p>Ticket reference: %s</p>
		</body>
		</html>
	`,
		html.EscapeString(notice.OwnerName),
		html.EscapeString(notice.AgentName),
		html.EscapeString(notice.TicketTitle),
		s.renderer.Render(notice.Content),
		html.EscapeString(notice.TicketID),
	)

	plainBody := fmt.Sprintf(`
Hi %s,

%s from the support team replied to your ticket "%s":

%s

Ticket reference: %s
	`, notice.OwnerName, notice.AgentName, notice.TicketTitle, notice.Content, notice.TicketID)

	return s.sendEmail(notice.OwnerEmail, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
